package stagehistory

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"
)

type Handler struct {
	store *database.Store
}

func NewHandler(store *database.Store) *Handler {
	return &Handler{store: store}
}

// GetAll lists the recorded stage moves matching the query.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := database.Filter{}
	entities.QueryStrings(r, filter, "pipe_type", "origin")
	entities.QueryObjectIDs(r, filter, "record_id", "lead_id", "actor_id")

	history, err := h.store.StageHistory.List(r.Context(), filter)
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", history, 0)
}
