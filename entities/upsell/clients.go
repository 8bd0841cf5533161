package upsell

import (
	"crm/database"
	"crm/entities"
	"crm/middlewares"
	"crm/pipeline"
	"crm/schemas"
	"crm/utils"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (h *Handler) GetAllClients(w http.ResponseWriter, r *http.Request) {
	filter := database.Filter{}
	entities.QueryStrings(r, filter, "stage")
	entities.QueryObjectIDs(r, filter, "lead_id", "owner_id")

	clients, err := h.store.UpsellClients.List(r.Context(), filter)
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", clients, 0)
}

func (h *Handler) GetOneClient(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	client, err := h.store.UpsellClients.Get(r.Context(), id)
	if err != nil {
		entities.SendStoreError(w, r, err, "Cliente não encontrado", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", client, 0)
}

func (h *Handler) CreateOneClient(w http.ResponseWriter, r *http.Request) {
	client := &schemas.UpsellClient{}
	if err := utils.DecodeAndValidate(r, client); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}
	client.ID = bson.ObjectID{}

	if client.Stage == "" {
		client.Stage = schemas.STAGE_UPSELL_ACTIVE
	}
	if !client.Stage.Valid() {
		utils.SendResponse(w, http.StatusBadRequest, "Etapa inválida para o pipe de upsell", nil, 0)
		return
	}

	if _, err := h.store.Leads.Get(r.Context(), client.LeadID); err != nil {
		entities.SendStoreError(w, r, err, "Lead não encontrado", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	if err := h.store.UpsellClients.Create(r.Context(), client); err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_INSERT_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", client, 0)
}

type updateClientRequest struct {
	Name          *string        `json:"name" validate:"omitempty,min=1"`
	ContractValue *float64       `json:"contract_value" validate:"omitempty,gte=0"`
	OwnerID       *bson.ObjectID `json:"owner_id"`
}

func (h *Handler) UpdateOneClient(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	input := updateClientRequest{}
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	fields := database.Fields{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.ContractValue != nil {
		fields["contract_value"] = *input.ContractValue
	}
	if input.OwnerID != nil {
		fields["owner_id"] = input.OwnerID
	}

	if len(fields) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Nenhum campo para atualizar foi fornecido", nil, 0)
		return
	}

	client, err := h.store.UpsellClients.Update(r.Context(), id, fields)
	if err != nil {
		entities.SendStoreError(w, r, err, "Cliente não encontrado", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", client, 0)
}

func (h *Handler) DeleteOneClient(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.UpsellClients.Delete(r.Context(), id); err != nil {
		entities.SendStoreError(w, r, err, "Cliente não encontrado", utils.CANNOT_DELETE_FROM_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}

type stageRequest struct {
	Stage schemas.UpsellStage `json:"stage" validate:"required"`
}

func (h *Handler) UpdateOneClientStage(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	input := stageRequest{}
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}
	if !input.Stage.Valid() {
		utils.SendResponse(w, http.StatusBadRequest, "Etapa inválida para o pipe de upsell", nil, 0)
		return
	}

	current, err := h.store.UpsellClients.Get(r.Context(), id)
	if err != nil {
		entities.SendStoreError(w, r, err, "Cliente não encontrado", utils.CANNOT_FIND_IN_MONGODB)
		return
	}
	if current.Stage == input.Stage {
		utils.SendResponse(w, http.StatusOK, "", current, 0)
		return
	}

	client, err := h.store.UpsellClients.Update(r.Context(), id, database.Fields{"stage": input.Stage})
	if err != nil {
		entities.SendStoreError(w, r, err, "Cliente não encontrado", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	h.hooks.Run(r.Context(), pipeline.TransitionEvent{
		PipeType:   schemas.PIPE_UPSELL,
		RecordID:   client.ID,
		LeadID:     client.LeadID,
		FromStage:  string(current.Stage),
		ToStage:    string(client.Stage),
		AssigneeID: client.OwnerID,
		ActorID:    middlewares.ActorFromContext(r.Context()),
	})

	utils.SendResponse(w, http.StatusOK, "", client, 0)
}
