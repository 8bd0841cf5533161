package teammembers

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"
	"strings"
)

type updateRequest struct {
	LegacyID       *uint64  `json:"legacy_id"`
	Name           *string  `json:"name" validate:"omitempty,min=1"`
	Email          *string  `json:"email" validate:"omitempty,email"`
	Role           *string  `json:"role" validate:"omitempty,oneof=sdr closer manager"`
	BaseSalary     *float64 `json:"base_salary" validate:"omitempty,gte=0"`
	VariableTarget *float64 `json:"variable_target" validate:"omitempty,gte=0"`
	CommissionRate *float64 `json:"commission_rate" validate:"omitempty,gte=0,lte=1"`
	Active         *bool    `json:"active"`
}

func (h *Handler) UpdateOne(w http.ResponseWriter, r *http.Request) {
	id, ok := entities.PathObjectID(w, r, "id")
	if !ok {
		return
	}

	input := updateRequest{}
	if err := utils.DecodeAndValidate(r, &input); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	updateDoc := database.Fields{}
	if input.LegacyID != nil {
		updateDoc["legacy_id"] = int64(*input.LegacyID)
	}
	if input.Name != nil {
		updateDoc["name"] = *input.Name
	}
	if input.Email != nil {
		updateDoc["email"] = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Role != nil {
		updateDoc["role"] = *input.Role
	}
	if input.BaseSalary != nil {
		updateDoc["base_salary"] = *input.BaseSalary
	}
	if input.VariableTarget != nil {
		updateDoc["variable_target"] = *input.VariableTarget
	}
	if input.CommissionRate != nil {
		updateDoc["commission_rate"] = *input.CommissionRate
	}
	if input.Active != nil {
		updateDoc["active"] = *input.Active
	}

	if len(updateDoc) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Nenhum campo para atualizar foi fornecido", nil, 0)
		return
	}

	member, err := h.store.TeamMembers.Update(r.Context(), id, updateDoc)
	if err != nil {
		entities.SendStoreError(w, r, err, "Membro da equipe não encontrado", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", member, 0)
}
