package proposals

import (
	"crm/entities"
	"crm/middlewares"
	"crm/schemas"
	"crm/utils"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type stageRequest struct {
	Stage    schemas.ProposalStage `json:"stage" validate:"required"`
	Value    *float64              `json:"value" validate:"omitempty,gte=0"`
	CloserID *bson.ObjectID        `json:"closer_id"`
}

func (h *Handler) UpdateOneStage(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	input := stageRequest{}
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	result, err := h.transitions.ApplyManualTransition(r.Context(), id, input.Stage, TransitionContext{
		Value:    input.Value,
		CloserID: input.CloserID,
		ActorID:  middlewares.ActorFromContext(r.Context()),
	})
	if errors.Is(err, ErrInvalidStage) || errors.Is(err, ErrValueRequired) {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}
	if err != nil {
		entities.SendStoreError(w, r, err, "Proposta não encontrada", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", result, 0)
}
