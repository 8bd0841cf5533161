package upsell

import (
	"bytes"
	"context"
	"crm/database"
	"crm/middlewares"
	"crm/pipeline"
	"crm/schemas"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type upsellFixture struct {
	server http.Handler
	store  *database.Store
	events *[]pipeline.TransitionEvent
}

func newUpsellFixture(t *testing.T) upsellFixture {
	t.Helper()
	store := database.NewMemoryStore(nil)
	events := &[]pipeline.TransitionEvent{}
	hooks := pipeline.Hooks{{
		Name: "record",
		Run: func(_ context.Context, event pipeline.TransitionEvent) error {
			*events = append(*events, event)
			return nil
		},
	}}
	handler := NewHandler(store, hooks)

	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /v1/upsell/clients/{id}/stage", handler.UpdateOneClientStage)
	mux.HandleFunc("POST /v1/upsell/campaigns/{id}/clients", handler.AttachClients)
	return upsellFixture{server: middlewares.Actor(mux), store: store, events: events}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers ...string) (int, envelope) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	resp := envelope{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp
}

func (f upsellFixture) client(t *testing.T, name string, stage schemas.UpsellStage) schemas.UpsellClient {
	t.Helper()
	client := &schemas.UpsellClient{LeadID: bson.NewObjectID(), Name: name, ContractValue: 1000, Stage: stage}
	require.NoError(t, f.store.UpsellClients.Create(context.Background(), client))
	return *client
}

func (f upsellFixture) campaign(t *testing.T, clientIDs ...bson.ObjectID) schemas.UpsellCampaign {
	t.Helper()
	starts := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	campaign := &schemas.UpsellCampaign{
		Name:        "Pacote anual",
		TargetStage: schemas.STAGE_UPSELL_OPPORTUNITY,
		StartsAt:    starts,
		EndsAt:      starts.AddDate(0, 1, 0),
		ClientIDs:   clientIDs,
	}
	require.NoError(t, f.store.UpsellCampaigns.Create(context.Background(), campaign))
	return *campaign
}

func TestAttachClientsSkipsClientsAlreadyAttached(t *testing.T) {
	f := newUpsellFixture(t)
	ana := f.client(t, "Ana", schemas.STAGE_UPSELL_ACTIVE)
	bia := f.client(t, "Bia", schemas.STAGE_UPSELL_ACTIVE)
	campaign := f.campaign(t, ana.ID)

	code, resp := doJSON(t, f.server, http.MethodPost, "/v1/upsell/campaigns/"+campaign.ID.Hex()+"/clients",
		map[string]any{"client_ids": []string{ana.ID.Hex(), bia.ID.Hex(), bia.ID.Hex()}})
	require.Equal(t, http.StatusOK, code)

	updated := schemas.UpsellCampaign{}
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, []bson.ObjectID{ana.ID, bia.ID}, updated.ClientIDs)
}

func TestAttachClientsRejectsUnknownClientWithoutWriting(t *testing.T) {
	f := newUpsellFixture(t)
	ana := f.client(t, "Ana", schemas.STAGE_UPSELL_ACTIVE)
	bia := f.client(t, "Bia", schemas.STAGE_UPSELL_ACTIVE)
	campaign := f.campaign(t, ana.ID)

	code, _ := doJSON(t, f.server, http.MethodPost, "/v1/upsell/campaigns/"+campaign.ID.Hex()+"/clients",
		map[string]any{"client_ids": []string{bia.ID.Hex(), bson.NewObjectID().Hex()}})
	assert.Equal(t, http.StatusBadRequest, code)

	stored, err := f.store.UpsellCampaigns.Get(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{ana.ID}, stored.ClientIDs)
	assert.True(t, campaign.UpdatedAt.Equal(stored.UpdatedAt))

	code, _ = doJSON(t, f.server, http.MethodPost, "/v1/upsell/campaigns/"+bson.NewObjectID().Hex()+"/clients",
		map[string]any{"client_ids": []string{bia.ID.Hex()}})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doJSON(t, f.server, http.MethodPost, "/v1/upsell/campaigns/"+campaign.ID.Hex()+"/clients",
		map[string]any{"client_ids": []string{}})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUpdateOneClientStage(t *testing.T) {
	f := newUpsellFixture(t)
	client := f.client(t, "Ana", schemas.STAGE_UPSELL_ACTIVE)
	path := "/v1/upsell/clients/" + client.ID.Hex() + "/stage"
	actor := bson.NewObjectID()

	code, _ := doJSON(t, f.server, http.MethodPatch, path, map[string]any{"stage": "won"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, f.server, http.MethodPatch, path, map[string]any{"stage": "active"})
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, *f.events)

	code, resp := doJSON(t, f.server, http.MethodPatch, path, map[string]any{"stage": "opportunity"}, middlewares.ACTOR_HEADER, actor.Hex())
	require.Equal(t, http.StatusOK, code)
	moved := schemas.UpsellClient{}
	require.NoError(t, json.Unmarshal(resp.Data, &moved))
	assert.Equal(t, schemas.STAGE_UPSELL_OPPORTUNITY, moved.Stage)

	require.Len(t, *f.events, 1)
	event := (*f.events)[0]
	assert.Equal(t, schemas.PIPE_UPSELL, event.PipeType)
	assert.Equal(t, client.ID, event.RecordID)
	assert.Equal(t, client.LeadID, event.LeadID)
	assert.Equal(t, "active", event.FromStage)
	assert.Equal(t, "opportunity", event.ToStage)
	assert.Equal(t, &actor, event.ActorID)

	code, _ = doJSON(t, f.server, http.MethodPatch, "/v1/upsell/clients/"+bson.NewObjectID().Hex()+"/stage", map[string]any{"stage": "churned"})
	assert.Equal(t, http.StatusNotFound, code)
}
