package teammembers

import (
	"crm/database"
	"crm/entities"
	"crm/schemas"
	"crm/utils"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func (h *Handler) CreateOne(w http.ResponseWriter, r *http.Request) {
	member := &schemas.TeamMember{Active: true}
	if err := utils.DecodeAndValidate(r, member); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}
	member.ID = bson.ObjectID{}
	member.Email = strings.ToLower(strings.TrimSpace(member.Email))

	existing, err := h.store.TeamMembers.List(r.Context(), database.Filter{"email": member.Email})
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}
	if len(existing) > 0 {
		utils.SendResponse(w, http.StatusConflict, "Já existe um membro com este e-mail", nil, 0)
		return
	}

	if err := h.store.TeamMembers.Create(r.Context(), member); err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_INSERT_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusCreated, "", member, 0)
}
