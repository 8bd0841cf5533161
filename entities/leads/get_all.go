package leads

import (
	"crm/database"
	"crm/entities"
	"crm/utils"
	"net/http"
	"regexp"
	"strings"
	"time"
)

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	leads, err := h.store.Leads.List(r.Context(), buildFilterFromQueryParams(r))
	if err != nil {
		entities.SendStoreError(w, r, err, "", utils.CANNOT_FIND_IN_MONGODB)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", leads, 0)
}

func buildFilterFromQueryParams(r *http.Request) database.Filter {
	filter := database.Filter{}
	queryParams := r.URL.Query()

	textFields := []string{"name", "company", "phone", "email", "source", "segment"}
	for _, field := range textFields {
		if value := queryParams.Get(field); value != "" {
			if queryParams.Get(field+"_exact") == "true" {
				filter[field] = value
			} else {
				filter[field] = database.Filter{"$regex": regexp.QuoteMeta(value), "$options": "i"}
			}
		}
	}

	if values := queryParams.Get("stage_in"); values != "" {
		stages := []string{}
		for _, stage := range strings.Split(values, ",") {
			stages = append(stages, strings.TrimSpace(stage))
		}
		filter["stage"] = database.Filter{"$in": stages}
	} else if stage := queryParams.Get("stage"); stage != "" {
		filter["stage"] = stage
	}

	createdAt := database.Filter{}
	if start := queryParams.Get("created_at_start"); start != "" {
		if parsedDate, err := time.Parse(time.RFC3339, start); err == nil {
			createdAt["$gte"] = parsedDate
		}
	}
	if end := queryParams.Get("created_at_end"); end != "" {
		if parsedDate, err := time.Parse(time.RFC3339, end); err == nil {
			createdAt["$lte"] = parsedDate
		}
	}
	if len(createdAt) > 0 {
		filter["created_at"] = createdAt
	}

	entities.QueryObjectIDs(r, filter, "sdr_id")

	return filter
}
