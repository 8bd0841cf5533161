package followups

import (
	"crm/database"
	"crm/entities"
	"crm/schemas"
	"crm/utils"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Handler struct {
	store *database.Store
}

func NewHandler(store *database.Store) *Handler {
	return &Handler{store: store}
}

// GetAll lists follow-ups. ?due_before= narrows it to the ones due up to a
// date, which is how the "my tasks today" view is built.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := database.Filter{}
	entities.QueryObjectIDs(r, filter, "lead_id", "assignee_id", "automation_id", "source_id")
	entities.QueryStrings(r, filter, "pipe_type", "stage")
	entities.QueryBool(r, filter, "done")

	if value := r.URL.Query().Get("due_before"); value != "" {
		dueBefore, ok := utils.ParseDate(value)
		if !ok {
			utils.SendResponse(w, http.StatusBadRequest, "Data inválida", nil, 0)
			return
		}
		filter["due_date"] = database.Filter{"$lte": dueBefore}
	}

	followUps, err := h.store.FollowUps.List(r.Context(), filter)
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", followUps, 0)
}

type createRequest struct {
	LeadID      bson.ObjectID  `json:"lead_id" validate:"required"`
	AssigneeID  *bson.ObjectID `json:"assignee_id"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	DueDate     time.Time      `json:"due_date" validate:"required"`
}

func (h *Handler) CreateOne(w http.ResponseWriter, r *http.Request) {
	input := createRequest{}
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	if _, err := h.store.Leads.Get(r.Context(), input.LeadID); err != nil {
		entities.SendStoreError(w, r, err, "Lead não encontrado", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	followUp := &schemas.FollowUp{
		LeadID:      input.LeadID,
		AssigneeID:  input.AssigneeID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
	}
	if err := h.store.FollowUps.Create(r.Context(), followUp); err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_INSERT_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", followUp, 0)
}

type doneRequest struct {
	Done bool `json:"done"`
}

func (h *Handler) UpdateOneDone(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	input := doneRequest{}
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	followUp, err := h.store.FollowUps.Update(r.Context(), id, database.Fields{"done": input.Done})
	if err != nil {
		entities.SendStoreError(w, r, err, "Follow-up não encontrado", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", followUp, 0)
}

func (h *Handler) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.FollowUps.Delete(r.Context(), id); err != nil {
		entities.SendStoreError(w, r, err, "Follow-up não encontrado", utils.CANNOT_DELETE_FROM_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}
