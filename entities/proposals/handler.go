package proposals

import "crm/database"

type Handler struct {
	store       *database.Store
	transitions *Transitions
}

func NewHandler(store *database.Store, transitions *Transitions) *Handler {
	return &Handler{store: store, transitions: transitions}
}
