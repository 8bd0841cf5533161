package report

import (
	"crm/entities"
	"crm/utils"
	"net/http"
)

func (h *Handler) GetOneGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	goal, err := h.store.Goals.Get(r.Context(), id)
	if err != nil {
		entities.SendStoreError(w, r, err, "Meta não encontrada", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", goal, 0)
}
