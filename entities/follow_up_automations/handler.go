package followupautomations

import (
	"crm/database"
	"crm/entities"
	"crm/schemas"
	"crm/utils"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Handler struct {
	store *database.Store
}

func NewHandler(store *database.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := database.Filter{}
	entities.QueryStrings(r, filter, "pipe_type", "stage")
	entities.QueryBool(r, filter, "active")

	rules, err := h.store.FollowUpAutomations.List(r.Context(), filter)
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", rules, 0)
}

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	rule, err := h.store.FollowUpAutomations.Get(r.Context(), id)
	if err != nil {
		entities.SendStoreError(w, r, err, "Automação não encontrada", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", rule, 0)
}

func (h *Handler) CreateOne(w http.ResponseWriter, r *http.Request) {
	rule := &schemas.FollowUpAutomation{}
	if err := utils.DecodeAndValidate(r, rule); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}
	rule.ID = bson.ObjectID{}

	if err := validateRule(*rule); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	if err := h.store.FollowUpAutomations.Create(r.Context(), rule); err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_INSERT_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", rule, 0)
}

type updateRequest struct {
	Name                *string `json:"name" validate:"omitempty,min=1"`
	DaysOffset          *int    `json:"days_offset" validate:"omitempty,gte=0"`
	TitleTemplate       *string `json:"title_template" validate:"omitempty,min=1"`
	DescriptionTemplate *string `json:"description_template"`
	Active              *bool   `json:"active"`
}

// UpdateOne edits a rule. Moving it to another pipe or stage is a new rule.
func (h *Handler) UpdateOne(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	input := updateRequest{}
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	fields := database.Fields{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.DaysOffset != nil {
		fields["days_offset"] = *input.DaysOffset
	}
	if input.TitleTemplate != nil {
		fields["title_template"] = *input.TitleTemplate
	}
	if input.DescriptionTemplate != nil {
		fields["description_template"] = *input.DescriptionTemplate
	}
	if input.Active != nil {
		fields["active"] = *input.Active
	}

	if len(fields) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Nenhum campo para atualizar foi fornecido", nil, 0)
		return
	}

	rule, err := h.store.FollowUpAutomations.Update(r.Context(), id, fields)
	if err != nil {
		entities.SendStoreError(w, r, err, "Automação não encontrada", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", rule, 0)
}

func (h *Handler) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.FollowUpAutomations.Delete(r.Context(), id); err != nil {
		entities.SendStoreError(w, r, err, "Automação não encontrada", utils.CANNOT_DELETE_FROM_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}
