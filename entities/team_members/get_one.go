package teammembers

import (
	"crm/entities"
	"crm/utils"
	"net/http"
)

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	member, err := h.store.TeamMembers.Get(r.Context(), id)
	if err != nil {
		entities.SendStoreError(w, r, err, "Membro da equipe não encontrado", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", member, 0)
}
