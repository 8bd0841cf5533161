package meetingconfirmations

import (
	"crm/database"
	"time"
)

type Handler struct {
	store       *database.Store
	transitions *Transitions
	reconciler  *Reconciler
	now         func() time.Time
	loc         *time.Location
}

func NewHandler(store *database.Store, transitions *Transitions, reconciler *Reconciler, now func() time.Time, loc *time.Location) *Handler {
	return &Handler{store: store, transitions: transitions, reconciler: reconciler, now: now, loc: loc}
}
