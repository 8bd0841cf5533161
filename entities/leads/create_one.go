package leads

import (
	"crm/database"
	"crm/entities"
	"crm/schemas"
	"crm/utils"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (h *Handler) CreateOne(w http.ResponseWriter, r *http.Request) {
	lead := &schemas.Lead{}
	if err := utils.DecodeAndValidate(r, lead); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	lead.ID = bson.ObjectID{}
	lead.Phone = NormalizePhone(lead.Phone)
	if lead.Stage == "" {
		lead.Stage = schemas.STAGE_NEW_LEAD
	}
	if !lead.Stage.Valid() {
		utils.SendResponse(w, http.StatusBadRequest, "Etapa inválida para o pipe de qualificação", nil, 0)
		return
	}

	existing, err := h.store.Leads.List(r.Context(), database.Filter{"phone": lead.Phone})
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}
	if len(existing) > 0 {
		utils.SendResponse(w, http.StatusConflict, "Já existe um lead com este telefone", existing[0], 0)
		return
	}

	if err := h.store.Leads.Create(r.Context(), lead); err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_INSERT_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", lead, 0)
}
