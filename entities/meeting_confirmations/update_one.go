package meetingconfirmations

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type updateRequest struct {
	MeetingDate utils.NullableTime `json:"meeting_date"`
	IsConfirmed *bool              `json:"is_confirmed"`
	SdrID       *bson.ObjectID     `json:"sdr_id"`
	CloserID    *bson.ObjectID     `json:"closer_id"`
}

// UpdateOne edits everything but the stage. A new meeting date is picked up
// by the reconciler through the change feed; "meeting_date": null clears it
// and leaves the card where it is until someone moves it.
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
	if input.MeetingDate.Present {
		fields["meeting_date"] = input.MeetingDate.Time
	}
	if input.IsConfirmed != nil {
		fields["is_confirmed"] = *input.IsConfirmed
	}
	if input.SdrID != nil {
		fields["sdr_id"] = input.SdrID
	}
	if input.CloserID != nil {
		fields["closer_id"] = input.CloserID
	}

	if len(fields) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Nenhum campo para atualizar foi fornecido", nil, 0)
		return
	}

	confirmation, err := h.store.MeetingConfirmations.Update(r.Context(), id, fields)
	if err != nil {
		entities.SendStoreError(w, r, err, "Confirmação não encontrada", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", confirmation, 0)
}
