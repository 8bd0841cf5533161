package leads

import (
	"crm/entities"
	"crm/middlewares"
	"crm/schemas"
	"crm/utils"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type stageRequest struct {
	Stage       schemas.QualificationStage `json:"stage" validate:"required"`
	MeetingDate *time.Time                 `json:"meeting_date"`
	SdrID       *bson.ObjectID             `json:"sdr_id"`
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
		MeetingDate: input.MeetingDate,
		SdrID:       input.SdrID,
		ActorID:     middlewares.ActorFromContext(r.Context()),
	})
	if errors.Is(err, ErrInvalidStage) || errors.Is(err, ErrMeetingDateRequired) {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}
	if err != nil {
		entities.SendStoreError(w, r, err, "Lead não encontrado", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	if result.ConfirmationErr != nil {
		utils.SendResponse(w, http.StatusOK, "Lead movido, mas não foi possível registrar a reunião no pipe de confirmação.", result, 0)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", result, 0)
}
