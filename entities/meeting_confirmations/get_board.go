package meetingconfirmations

import (
	"crm/database"
	"crm/entities"
	"crm/schemas"
	"crm/utils"
	"net/http"
)

type BoardColumn struct {
	schemas.StageInfo
	Cards []schemas.MeetingConfirmation `json:"cards"`
}

// GetBoard groups confirmations into the kanban columns of the catalog.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	filter := database.Filter{}
	entities.QueryObjectIDs(r, filter, "sdr_id", "closer_id")

	confirmations, err := h.store.MeetingConfirmations.List(r.Context(), filter)
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", BuildBoard(confirmations), 0)
}

func BuildBoard(confirmations []schemas.MeetingConfirmation) []BoardColumn {
	columns := make([]BoardColumn, len(schemas.ConfirmationCatalog))
	index := map[schemas.ConfirmationStage]int{}
	for i, info := range schemas.ConfirmationCatalog {
		columns[i] = BoardColumn{StageInfo: info, Cards: []schemas.MeetingConfirmation{}}
		index[schemas.ConfirmationStage(info.ID)] = i
	}

	for _, confirmation := range confirmations {
		i, ok := index[confirmation.Stage.Column()]
		if !ok {
			continue
		}
		columns[i].Cards = append(columns[i].Cards, confirmation)
	}
	return columns
}
