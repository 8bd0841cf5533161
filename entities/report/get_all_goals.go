package report

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"
)

func (h *Handler) GetAllGoals(w http.ResponseWriter, r *http.Request) {
	filter := database.Filter{}
	entities.QueryStrings(r, filter, "metric", "period")
	entities.QueryObjectIDs(r, filter, "member_id")

	goals, err := h.store.Goals.List(r.Context(), filter)
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", goals, 0)
}
