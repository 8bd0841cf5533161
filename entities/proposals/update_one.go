package proposals

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type updateRequest struct {
	Value    *float64       `json:"value" validate:"omitempty,gte=0"`
	SdrID    *bson.ObjectID `json:"sdr_id"`
	CloserID *bson.ObjectID `json:"closer_id"`
	Notes    *string        `json:"notes"`
}

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
	if input.Value != nil {
		fields["value"] = *input.Value
	}
	if input.SdrID != nil {
		fields["sdr_id"] = input.SdrID
	}
	if input.CloserID != nil {
		fields["closer_id"] = input.CloserID
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}

	if len(fields) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Nenhum campo para atualizar foi fornecido", nil, 0)
		return
	}

	proposal, err := h.store.Proposals.Update(r.Context(), id, fields)
	if err != nil {
		entities.SendStoreError(w, r, err, "Proposta não encontrada", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", proposal, 0)
}
