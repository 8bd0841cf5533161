package leads

import (
	"crm/database"
	"crm/entities"
	"crm/schemas"
	"crm/utils"
	"net/http"
)

type leadDetails struct {
	schemas.Lead
	Confirmations []schemas.MeetingConfirmation `json:"confirmations"`
	Proposals     []schemas.Proposal            `json:"proposals"`
	FollowUps     []schemas.FollowUp            `json:"follow_ups"`
}

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	lead, err := h.store.Leads.Get(r.Context(), id)
	if err != nil {
		entities.SendStoreError(w, r, err, "Lead não encontrado", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	details := leadDetails{Lead: lead}
	byLead := database.Filter{"lead_id": id}

	if details.Confirmations, err = h.store.MeetingConfirmations.List(r.Context(), byLead); err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}
	if details.Proposals, err = h.store.Proposals.List(r.Context(), byLead); err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}
	if details.FollowUps, err = h.store.FollowUps.List(r.Context(), byLead); err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", details, 0)
}
