package meetingconfirmations

import (
	"crm/entities"
	"crm/schemas"
	"crm/utils"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type createRequest struct {
	LeadID      bson.ObjectID  `json:"lead_id" validate:"required"`
	MeetingDate *time.Time     `json:"meeting_date"`
	IsConfirmed bool           `json:"is_confirmed"`
	SdrID       *bson.ObjectID `json:"sdr_id"`
	CloserID    *bson.ObjectID `json:"closer_id"`
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

	confirmation := NewConfirmation(input.LeadID, input.MeetingDate, input.SdrID, h.now(), h.loc)
	confirmation.IsConfirmed = input.IsConfirmed
	confirmation.CloserID = input.CloserID

	if err := h.store.MeetingConfirmations.Create(r.Context(), confirmation); err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_INSERT_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", confirmation, 0)
}

// NewConfirmation builds a confirmation already placed in the stage its
// meeting date calls for, so the card lands in the right column before the
// next sweep.
func NewConfirmation(leadID bson.ObjectID, meetingDate *time.Time, sdrID *bson.ObjectID, now time.Time, loc *time.Location) *schemas.MeetingConfirmation {
	stage := schemas.STAGE_MEETING_SCHEDULED
	if derived, ok := DeriveStage(meetingDate, stage, now, loc); ok {
		stage = derived
	}

	return &schemas.MeetingConfirmation{
		LeadID:      leadID,
		Stage:       stage,
		MeetingDate: meetingDate,
		SdrID:       sdrID,
	}
}
