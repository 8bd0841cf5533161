package proposals

import (
	"crm/entities"
	"crm/schemas"
	"crm/utils"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type createRequest struct {
	LeadID   bson.ObjectID  `json:"lead_id" validate:"required"`
	Value    float64        `json:"value" validate:"gte=0"`
	SdrID    *bson.ObjectID `json:"sdr_id"`
	CloserID *bson.ObjectID `json:"closer_id"`
	Notes    string         `json:"notes"`
}

// CreateOne opens a proposal outside the meeting flow, e.g. for a returning
// client. It always starts in the first column.
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

	proposal := &schemas.Proposal{
		LeadID:   input.LeadID,
		Stage:    schemas.PROPOSAL_INITIAL_STAGE,
		Value:    input.Value,
		SdrID:    input.SdrID,
		CloserID: input.CloserID,
		Notes:    input.Notes,
	}
	if err := h.store.Proposals.Create(r.Context(), proposal); err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_INSERT_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", proposal, 0)
}
