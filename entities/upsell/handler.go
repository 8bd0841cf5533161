package upsell

import (
	"crm/database"
	"crm/pipeline"
)

type Handler struct {
	store *database.Store
	hooks pipeline.Hooks
}

func NewHandler(store *database.Store, hooks pipeline.Hooks) *Handler {
	return &Handler{store: store, hooks: hooks}
}
