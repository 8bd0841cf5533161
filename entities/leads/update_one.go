package leads

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type updateRequest struct {
	Name    *string        `json:"name" validate:"omitempty,min=1"`
	Company *string        `json:"company"`
	Phone   *string        `json:"phone" validate:"omitempty,min=8"`
	Email   *string        `json:"email" validate:"omitempty,email"`
	Source  *string        `json:"source"`
	Segment *string        `json:"segment"`
	Notes   *string        `json:"notes"`
	SdrID   *bson.ObjectID `json:"sdr_id"`
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

	fields := database.Fields{}
	setIfPresent := func(key string, value *string) {
		if value != nil {
			fields[key] = *value
		}
	}
	setIfPresent("name", input.Name)
	setIfPresent("company", input.Company)
	setIfPresent("email", input.Email)
	setIfPresent("source", input.Source)
	setIfPresent("segment", input.Segment)
	setIfPresent("notes", input.Notes)
	if input.Phone != nil {
		phone := NormalizePhone(*input.Phone)
		existing, err := h.store.Leads.List(r.Context(), database.Filter{"phone": phone, "_id": bson.M{"$ne": id}})
		if err != nil {
			entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
			return
		}
		if len(existing) > 0 {
			utils.SendResponse(w, http.StatusConflict, "Já existe um lead com este telefone", existing[0], 0)
			return
		}
		fields["phone"] = phone
	}
	if input.SdrID != nil {
		fields["sdr_id"] = input.SdrID
	}

	if len(fields) == 0 {
		utils.SendResponse(w, http.StatusBadRequest, "Nenhum campo para atualizar foi fornecido", nil, 0)
		return
	}

	lead, err := h.store.Leads.Update(r.Context(), id, fields)
	if err != nil {
		entities.SendStoreError(w, r, err, "Lead não encontrado", utils.CANNOT_UPDATE_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", lead, 0)
}
