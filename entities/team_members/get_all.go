package teammembers

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"
)

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := database.Filter{}
	entities.QueryStrings(r, filter, "role")
	entities.QueryBool(r, filter, "active")

	members, err := h.store.TeamMembers.List(r.Context(), filter)
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", members, 0)
}
