package report

import (
	"crm/entities"
	"crm/utils"
	"net/http"
)

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.Goals.Delete(r.Context(), id); err != nil {
		entities.SendStoreError(w, r, err, "Meta não encontrada", utils.CANNOT_DELETE_FROM_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "Meta removida com sucesso", nil, 0)
}
