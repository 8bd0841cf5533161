package upsell

import (
	"crm/database"
	"crm/entities"
	"crm/schemas"
	"crm/utils"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (h *Handler) GetAllCampaigns(w http.ResponseWriter, r *http.Request) {
	filter := database.Filter{}
	entities.QueryStrings(r, filter, "target_stage")
	if r.URL.Query().Get("running") == "true" {
		now := time.Now()
		filter["starts_at"] = database.Filter{"$lte": now}
		filter["ends_at"] = database.Filter{"$gte": now}
	}

	campaigns, err := h.store.UpsellCampaigns.List(r.Context(), filter)
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", campaigns, 0)
}

func (h *Handler) GetOneCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	campaign, err := h.store.UpsellCampaigns.Get(r.Context(), id)
	if err != nil {
		entities.SendStoreError(w, r, err, "Campanha não encontrada", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", campaign, 0)
}

func (h *Handler) CreateOneCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := &schemas.UpsellCampaign{}
	if err := utils.DecodeAndValidate(r, campaign); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}
	campaign.ID = bson.ObjectID{}

	if !campaign.TargetStage.Valid() {
		utils.SendResponse(w, http.StatusBadRequest, "Etapa inválida para o pipe de upsell", nil, 0)
		return
	}
	if campaign.ClientIDs == nil {
		campaign.ClientIDs = []bson.ObjectID{}
	}

	if err := h.store.UpsellCampaigns.Create(r.Context(), campaign); err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_INSERT_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", campaign, 0)
}

type updateCampaignRequest struct {
	Name        *string              `json:"name" validate:"omitempty,min=1"`
	TargetStage *schemas.UpsellStage `json:"target_stage"`
	StartsAt    *time.Time           `json:"starts_at"`
	EndsAt      *time.Time           `json:"ends_at"`
}

func (h *Handler) UpdateOneCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	input := updateCampaignRequest{}
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	current, err := h.store.UpsellCampaigns.Get(r.Context(), id)
	if err != nil {
		entities.SendStoreError(w, r, err, "Campanha não encontrada", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	fields := database.Fields{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.TargetStage != nil {
		if !input.TargetStage.Valid() {
			utils.SendResponse(w, http.StatusBadRequest, "Etapa inválida para o pipe de upsell", nil, 0)
			return
		}
		fields["target_stage"] = *input.TargetStage
	}
	startsAt, endsAt := current.StartsAt, current.EndsAt
	if input.StartsAt != nil {
		startsAt = *input.StartsAt
		fields["starts_at"] = startsAt
	}
	if input.EndsAt != nil {
		endsAt = *input.EndsAt
		fields["ends_at"] = endsAt
	}
	if !endsAt.After(startsAt) {
		utils.SendResponse(w, http.StatusBadRequest, "A data de término deve ser posterior à de início", nil, 0)
		return
	}

	if len(fields) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Nenhum campo para atualizar foi fornecido", nil, 0)
		return
	}

	campaign, err := h.store.UpsellCampaigns.Update(r.Context(), id, fields)
	if err != nil {
		entities.SendStoreError(w, r, err, "Campanha não encontrada", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", campaign, 0)
}

func (h *Handler) DeleteOneCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.UpsellCampaigns.Delete(r.Context(), id); err != nil {
		entities.SendStoreError(w, r, err, "Campanha não encontrada", utils.CANNOT_DELETE_FROM_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}

type attachRequest struct {
	ClientIDs []bson.ObjectID `json:"client_ids" validate:"required,min=1"`
}

// AttachClients adds clients to a campaign. Ids already attached are
// ignored; unknown ids fail the whole request.
func (h *Handler) AttachClients(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	input := attachRequest{}
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	campaign, err := h.store.UpsellCampaigns.Get(r.Context(), id)
	if err != nil {
		entities.SendStoreError(w, r, err, "Campanha não encontrada", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	found, err := h.store.UpsellClients.List(r.Context(), database.Filter{"_id": database.Filter{"$in": input.ClientIDs}})
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}
	known := map[bson.ObjectID]bool{}
	for _, client := range found {
		known[client.ID] = true
	}

	attached := map[bson.ObjectID]bool{}
	clientIDs := append([]bson.ObjectID{}, campaign.ClientIDs...)
	for _, clientID := range clientIDs {
		attached[clientID] = true
	}
	for _, clientID := range input.ClientIDs {
		if !known[clientID] {
			utils.SendResponse(w, http.StatusBadRequest, "Cliente não encontrado: "+clientID.Hex(), nil, 0)
			return
		}
		if !attached[clientID] {
			attached[clientID] = true
			clientIDs = append(clientIDs, clientID)
		}
	}

	updated, err := h.store.UpsellCampaigns.Update(r.Context(), id, database.Fields{"client_ids": clientIDs})
	if err != nil {
		entities.SendStoreError(w, r, err, "Campanha não encontrada", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", updated, 0)
}
