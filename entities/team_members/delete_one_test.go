package teammembers

import (
	"context"
	"crm/database"
	"crm/schemas"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestDeleteOneDeactivatesMember(t *testing.T) {
	store := database.NewMemoryStore(nil)
	handler := NewHandler(store)
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /v1/team-members/{id}", handler.DeleteOne)

	ctx := context.Background()
	member := &schemas.TeamMember{Name: "Bia", Email: "bia@example.com", Role: schemas.ROLE_CLOSER, Active: true}
	require.NoError(t, store.TeamMembers.Create(ctx, member))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/team-members/"+member.ID.Hex(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := struct {
		Data schemas.TeamMember `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Active)

	stored, err := store.TeamMembers.Get(ctx, member.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
	assert.Equal(t, "Bia", stored.Name)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/team-members/"+bson.NewObjectID().Hex(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
