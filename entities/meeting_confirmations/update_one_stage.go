package meetingconfirmations

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
	Stage     schemas.ConfirmationStage `json:"stage" validate:"required"`
	SdrID     *bson.ObjectID            `json:"sdr_id"`
	CloserID  *bson.ObjectID            `json:"closer_id"`
	Confirmed bool                      `json:"confirmed"`
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
		SdrID:     input.SdrID,
		CloserID:  input.CloserID,
		Confirmed: input.Confirmed,
		ActorID:   middlewares.ActorFromContext(r.Context()),
	})
	if errors.Is(err, ErrInvalidStage) || errors.Is(err, ErrCreditRequired) {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}
	if err != nil {
		entities.SendStoreError(w, r, err, "Confirmação não encontrada", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	if result.ProposalErr != nil {
		utils.SendResponse(w, http.StatusOK, "Reunião marcada como realizada, mas não foi possível criar a proposta. Crie-a manualmente no pipe de propostas.", result, 0)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", result, 0)
}
