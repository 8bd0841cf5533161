package report

import "crm/database"

type Handler struct {
	store   *database.Store
	reports *Reports
}

func NewHandler(store *database.Store, reports *Reports) *Handler {
	return &Handler{store: store, reports: reports}
}
