package report

import (
	"crm/entities"
	"crm/schemas"
	"crm/utils"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	goal := &schemas.Goal{}
	if err := utils.DecodeAndValidate(r, goal); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}
	goal.ID = bson.ObjectID{}

	if goal.MemberID != nil {
		if _, err := h.store.TeamMembers.Get(r.Context(), *goal.MemberID); err != nil {
			entities.SendStoreError(w, r, err, "Membro da equipe não encontrado", utils.CANNOT_FIND_IN_MONGODB)
			return
		}
	}

	if err := h.store.Goals.Create(r.Context(), goal); err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_INSERT_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "Meta criada com sucesso", goal, 0)
}
