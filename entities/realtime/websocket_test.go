package realtime

import (
	"context"
	"crm/database"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func dial(t *testing.T, server *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Clients() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHubStreamsChangesOfTheSubscribedEntity(t *testing.T) {
	feed := database.NewChangeFeed(nil)
	hub := NewHub(feed)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/{entity}", hub.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	conn := dial(t, server, "/ws/"+database.COLLECTION_MEETING_CONFIRMATIONS)
	waitForClients(t, hub, 1)

	ctx := context.Background()
	id := bson.NewObjectID()
	feed.Publish(ctx, database.Change{Entity: database.COLLECTION_LEADS, Kind: database.CHANGE_CREATED, ID: bson.NewObjectID()})
	feed.Publish(ctx, database.Change{Entity: database.COLLECTION_MEETING_CONFIRMATIONS, Kind: database.CHANGE_UPDATED, ID: id, Fields: []string{"stage"}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	message := ChangeMessage{}
	require.NoError(t, conn.ReadJSON(&message))

	assert.Equal(t, "updated", message.Action)
	assert.Equal(t, database.COLLECTION_MEETING_CONFIRMATIONS, message.Change.Entity)
	assert.Equal(t, id, message.Change.ID)
	assert.Equal(t, []string{"stage"}, message.Change.Fields)
}

func TestHubForgetsClientsThatHangUp(t *testing.T) {
	hub := NewHub(database.NewChangeFeed(nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", hub.ServeWS)
	server := httptest.NewServer(mux)
	defer server.Close()

	conn := dial(t, server, "/ws")
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}

func TestServeWSRejectsPlainHTTP(t *testing.T) {
	hub := NewHub(database.NewChangeFeed(nil))
	rec := httptest.NewRecorder()

	hub.ServeWS(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, hub.Clients())
}
