package report

import (
	"crm/entities"
	"crm/utils"
	"net/http"

	"github.com/rs/zerolog/log"
)

func (h *Handler) GetGoalProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	goal, err := h.store.Goals.Get(r.Context(), id)
	if err != nil {
		entities.SendStoreError(w, r, err, "Meta não encontrada", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	progress, err := h.reports.GoalProgress(r.Context(), goal)
	if err != nil {
		log.Error().Err(err).Str("goal_id", id.Hex()).Msg("goal progress failed")
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_CALCULATE_GOAL_PROGRESS)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", progress, 0)
}
