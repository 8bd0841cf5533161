package teammembers

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"
	"strconv"
)

// GetOneByLegacyID resolves a seller id of the legacy sales database.
func (h *Handler) GetOneByLegacyID(w http.ResponseWriter, r *http.Request) {
	legacyID, err := strconv.ParseUint(r.PathValue("legacy_id"), 10, 64)
	if err != nil || legacyID == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "ID inválido, deve ser um número inteiro.", nil, 0)
		return
	}

	members, err := h.store.TeamMembers.List(r.Context(), database.Filter{"legacy_id": int64(legacyID)})
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	if len(members) == 0 {
		utils.SendResponse(w, http.StatusNotFound, "Membro da equipe não encontrado", nil, 0)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", members[0], 0)
}
