package meetingconfirmations

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

	confirmation, err := h.store.MeetingConfirmations.Get(r.Context(), id)
	if err != nil {
		entities.SendStoreError(w, r, err, "Confirmação não encontrada", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", confirmation, 0)
}
