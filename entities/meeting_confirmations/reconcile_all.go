package meetingconfirmations

import (
	"crm/utils"
	"net/http"

	"github.com/rs/zerolog/log"
)

func (h *Handler) ReconcileAll(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciler.ReconcileAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("manual reconcile failed")
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_RECONCILE_CONFIRMATIONS)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", report, 0)
}
