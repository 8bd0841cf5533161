// Package realtime pushes repository changes to the kanban boards over
// websockets.
package realtime

import (
	"crm/database"
	"crm/utils"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	CLIENT_BUFFER_SIZE = 64
	WRITE_TIMEOUT      = 10 * time.Second
	PING_INTERVAL      = 30 * time.Second
	PONG_TIMEOUT       = 2 * PING_INTERVAL
)

type ChangeMessage struct {
	Action string          `json:"action"`
	Change database.Change `json:"change"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
	Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
		log.Warn().Err(reason).Int("status", status).Msg("websocket upgrade failed")
		utils.SendResponse(w, status, "", nil, utils.CANNOT_UPGRADE_WEBSOCKET)
	},
}

// Hub owns the websocket clients of this instance. Each client gets its own
// buffered queue so a slow board never stalls the publisher.
type Hub struct {
	feed *database.ChangeFeed

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan database.Change
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
	})
}

func NewHub(feed *database.ChangeFeed) *Hub {
	return &Hub{feed: feed, clients: map[*client]struct{}{}}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS streams the changes of {entity}, or of every entity when the path
// has none.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	entity := r.PathValue("entity")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{
		conn: conn,
		send: make(chan database.Change, CLIENT_BUFFER_SIZE),
		done: make(chan struct{}),
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	unsubscribe := h.feed.Subscribe(entity, func(change database.Change) {
		select {
		case <-c.done:
			return
		default:
		}
		select {
		case c.send <- change:
		default:
			log.Warn().Str("entity", change.Entity).Msg("websocket client too slow, dropping it")
			c.close()
		}
	})

	defer func() {
		unsubscribe()
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.close()
		conn.Close()
	}()

	go h.readPump(c)
	h.writePump(c)
}

// readPump discards client messages and notices when the peer goes away.
func (h *Hub) readPump(c *client) {
	c.conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			c.close()
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(PING_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(WRITE_TIMEOUT))
			return
		case change := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
			if err := c.conn.WriteJSON(ChangeMessage{Action: string(change.Kind), Change: change}); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WRITE_TIMEOUT)); err != nil {
				return
			}
		}
	}
}
