package teammembers

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"
)

// DeleteOne deactivates the member. Past meetings and deals keep pointing at
// it, so the document is never removed.
func (h *Handler) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	member, err := h.store.TeamMembers.Update(r.Context(), id, database.Fields{"active": false})
	if err != nil {
		entities.SendStoreError(w, r, err, "Membro da equipe não encontrado", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "Membro desativado", member, 0)
}
