package meetingconfirmations

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"
)

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := database.Filter{}
	entities.QueryStrings(r, filter, "stage")
	entities.QueryObjectIDs(r, filter, "lead_id", "sdr_id", "closer_id")
	entities.QueryBool(r, filter, "is_confirmed")

	confirmations, err := h.store.MeetingConfirmations.List(r.Context(), filter)
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", confirmations, 0)
}
