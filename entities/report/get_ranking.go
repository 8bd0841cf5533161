package report

import (
	"crm/utils"
	"net/http"

	"github.com/rs/zerolog/log"
)

func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	from, until, ok := ParsePeriod(r, h.reports.now(), h.reports.loc)
	if !ok {
		utils.SendResponse(w, http.StatusBadRequest, "Período inválido", nil, 0)
		return
	}

	ranking, err := h.reports.Ranking(r.Context(), from, until)
	if err != nil {
		log.Error().Err(err).Time("from", from).Time("until", until).Msg("ranking failed")
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_CALCULATE_RANKING)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", ranking, 0)
}
