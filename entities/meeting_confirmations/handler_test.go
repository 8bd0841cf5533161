package meetingconfirmations

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

func newTestServer(t *testing.T) (http.Handler, *database.Store) {
	t.Helper()
	loc := saoPaulo(t)
	now := func() time.Time { return time.Date(2024, time.March, 10, 14, 0, 0, 0, loc) }

	store := database.NewMemoryStore(nil)
	hooks := pipeline.Hooks{pipeline.HistoryHook(store.StageHistory)}
	handler := NewHandler(
		store,
		NewTransitions(store.MeetingConfirmations, store.Proposals, hooks, now),
		NewReconciler(store.MeetingConfirmations, nil, now, loc),
		now,
		loc,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/meeting-confirmations", handler.GetAll)
	mux.HandleFunc("GET /v1/meeting-confirmations/{id}", handler.GetOne)
	mux.HandleFunc("POST /v1/meeting-confirmations", handler.CreateOne)
	mux.HandleFunc("POST /v1/meeting-confirmations/reconcile", handler.ReconcileAll)
	mux.HandleFunc("PATCH /v1/meeting-confirmations/{id}", handler.UpdateOne)
	mux.HandleFunc("PATCH /v1/meeting-confirmations/{id}/stage", handler.UpdateOneStage)
	return middlewares.Actor(mux), store
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
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
	return rec, resp
}

func TestCreateOnePlacesTheCardInItsDerivedColumn(t *testing.T) {
	server, store := newTestServer(t)
	lead := &schemas.Lead{Name: "Maria", Phone: "5511988887777", Stage: schemas.STAGE_QUALIFIED_MEETING_SCHEDULED}
	require.NoError(t, store.Leads.Create(context.Background(), lead))

	rec, resp := doJSON(t, server, http.MethodPost, "/v1/meeting-confirmations", map[string]any{
		"lead_id":      lead.ID.Hex(),
		"meeting_date": "2024-03-11T09:00:00-03:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, resp.Message)

	created := schemas.MeetingConfirmation{}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, schemas.STAGE_CONFIRM_D1, created.Stage)
	assert.Equal(t, lead.ID, created.LeadID)
}

func TestCreateOneRejectsUnknownLead(t *testing.T) {
	server, _ := newTestServer(t)

	rec, _ := doJSON(t, server, http.MethodPost, "/v1/meeting-confirmations", map[string]any{
		"lead_id": bson.NewObjectID().Hex(),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOneStageToAttended(t *testing.T) {
	server, store := newTestServer(t)
	ctx := context.Background()
	confirmation := seedConfirmation(t, store.MeetingConfirmations, schemas.STAGE_CONFIRM_SAME_DAY, nil)
	closer, actor := bson.NewObjectID(), bson.NewObjectID()
	path := "/v1/meeting-confirmations/" + confirmation.ID.Hex() + "/stage"

	rec, resp := doJSON(t, server, http.MethodPatch, path, map[string]any{"stage": "attended", "closer_id": closer.Hex()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCreditRequired.Error(), resp.Message)

	rec, resp = doJSON(t, server, http.MethodPatch, path, map[string]any{
		"stage":     "attended",
		"closer_id": closer.Hex(),
		"confirmed": true,
	}, middlewares.ACTOR_HEADER, actor.Hex())
	require.Equal(t, http.StatusOK, rec.Code, resp.Message)

	result := struct {
		Confirmation schemas.MeetingConfirmation `json:"confirmation"`
		Proposal     *schemas.Proposal           `json:"proposal"`
	}{}
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, schemas.STAGE_ATTENDED, result.Confirmation.Stage)
	require.NotNil(t, result.Proposal)
	assert.Equal(t, schemas.STAGE_PROPOSAL_NEW, result.Proposal.Stage)

	history, err := store.StageHistory.List(ctx, database.Filter{"record_id": confirmation.ID})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, &actor, history[0].ActorID)
	assert.Equal(t, schemas.HISTORY_ORIGIN_MANUAL, history[0].Origin)
}

func TestUpdateOneMeetingDateKeepClearAndMove(t *testing.T) {
	server, store := newTestServer(t)
	ctx := context.Background()
	loc := saoPaulo(t)
	confirmation := seedConfirmation(t, store.MeetingConfirmations, schemas.STAGE_CONFIRM_D3, at(loc, 2024, time.March, 13, 10, 0))
	path := "/v1/meeting-confirmations/" + confirmation.ID.Hex()

	rec, resp := doJSON(t, server, http.MethodPatch, path, map[string]any{"is_confirmed": true})
	require.Equal(t, http.StatusOK, rec.Code, resp.Message)
	stored, err := store.MeetingConfirmations.Get(ctx, confirmation.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.MeetingDate)
	assert.True(t, at(loc, 2024, time.March, 13, 10, 0).Equal(*stored.MeetingDate))
	assert.True(t, stored.IsConfirmed)

	rec, resp = doJSON(t, server, http.MethodPatch, path, map[string]any{"meeting_date": nil})
	require.Equal(t, http.StatusOK, rec.Code, resp.Message)
	stored, err = store.MeetingConfirmations.Get(ctx, confirmation.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.MeetingDate)
	assert.Equal(t, schemas.STAGE_CONFIRM_D3, stored.Stage)

	rec, resp = doJSON(t, server, http.MethodPatch, path, map[string]any{"meeting_date": "2024-03-20T09:00:00-03:00"})
	require.Equal(t, http.StatusOK, rec.Code, resp.Message)
	stored, err = store.MeetingConfirmations.Get(ctx, confirmation.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.MeetingDate)
	assert.True(t, at(loc, 2024, time.March, 20, 9, 0).Equal(*stored.MeetingDate))

	rec, _ = doJSON(t, server, http.MethodPatch, path, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOneStageRejectsBadIDs(t *testing.T) {
	server, _ := newTestServer(t)

	rec, _ := doJSON(t, server, http.MethodPatch, "/v1/meeting-confirmations/not-an-id/stage", map[string]any{"stage": "lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, server, http.MethodPatch, "/v1/meeting-confirmations/"+bson.NewObjectID().Hex()+"/stage", map[string]any{"stage": "lost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReconcileAllEndpointReportsTheSweep(t *testing.T) {
	server, store := newTestServer(t)
	loc := saoPaulo(t)
	seedConfirmation(t, store.MeetingConfirmations, schemas.STAGE_MEETING_SCHEDULED, at(loc, 2024, time.March, 10, 18, 0))
	seedConfirmation(t, store.MeetingConfirmations, schemas.STAGE_LOST, at(loc, 2024, time.March, 10, 18, 0))

	rec, resp := doJSON(t, server, http.MethodPost, "/v1/meeting-confirmations/reconcile", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	report := ReconcileReport{}
	require.NoError(t, json.Unmarshal(resp.Data, &report))
	assert.Equal(t, ReconcileReport{Scanned: 1, Updated: 1}, report)

	rec, resp = doJSON(t, server, http.MethodGet, "/v1/meeting-confirmations?stage=confirm_same_day", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := []schemas.MeetingConfirmation{}
	require.NoError(t, json.Unmarshal(resp.Data, &listed))
	assert.Len(t, listed, 1)
}
