package leads

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"
	"strings"
)

// GetOneByPhone finds the lead behind a WhatsApp conversation.
func (h *Handler) GetOneByPhone(w http.ResponseWriter, r *http.Request) {
	phone := NormalizePhone(r.PathValue("phone"))
	if phone == "" {
		utils.SendResponse(w, http.StatusBadRequest, "Telefone inválido", nil, 0)
		return
	}

	leads, err := h.store.Leads.List(r.Context(), database.Filter{"phone": phone})
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	if len(leads) == 0 {
		utils.SendResponse(w, http.StatusNotFound, "Lead não encontrado", nil, 0)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", leads[0], 0)
}

// NormalizePhone keeps digits only, so "+55 (11) 98888-7777" and
// "5511988887777" are the same lead.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
