package meetingconfirmations

import (
	"crm/entities"
	"crm/utils"
	"net/http"
)

func (h *Handler) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.store.MeetingConfirmations.Delete(r.Context(), id); err != nil {
		entities.SendStoreError(w, r, err, "Confirmação não encontrada", utils.CANNOT_DELETE_FROM_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", nil, 0)
}
