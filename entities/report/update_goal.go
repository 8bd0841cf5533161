package report

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type updateGoalRequest struct {
	Name        *string        `json:"name" validate:"omitempty,min=1"`
	Metric      *string        `json:"metric" validate:"omitempty,oneof=meetings_attended proposals_won revenue"`
	Period      *string        `json:"period" validate:"omitempty,oneof=daily monthly yearly"`
	TargetValue *float64       `json:"target_value" validate:"omitempty,gt=0"`
	MemberID    *bson.ObjectID `json:"member_id"`
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	input := updateGoalRequest{}
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	update := database.Fields{}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Metric != nil {
		update["metric"] = *input.Metric
	}
	if input.Period != nil {
		update["period"] = *input.Period
	}
	if input.TargetValue != nil {
		update["target_value"] = *input.TargetValue
	}
	if input.MemberID != nil {
		update["member_id"] = input.MemberID
	}

	if len(update) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Nenhum dado para atualizar", nil, 0)
		return
	}

	goal, err := h.store.Goals.Update(r.Context(), id, update)
	if err != nil {
		entities.SendStoreError(w, r, err, "Meta não encontrada", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "Meta atualizada com sucesso", goal, 0)
}
