package report

import (
	"crm/utils"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

func (h *Handler) GetCommissions(w http.ResponseWriter, r *http.Request) {
	from, until, ok := ParsePeriod(r, h.reports.now(), h.reports.loc)
	if !ok {
		utils.SendResponse(w, http.StatusBadRequest, "Período inválido", nil, 0)
		return
	}

	commissions, err := h.reports.Commissions(r.Context(), from, until)
	if errors.Is(err, ErrCommissionPeriod) {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}
	if err != nil {
		log.Error().Err(err).Time("from", from).Time("until", until).Msg("commission report failed")
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_CALCULATE_COMMISSIONS)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", commissions, 0)
}
