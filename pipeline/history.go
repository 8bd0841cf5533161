package pipeline

import (
	"context"
	"crm/database"
	"crm/schemas"
)

// HistoryHook appends a stage_history entry for every manual transition.
func HistoryHook(history database.Repository[schemas.StageHistory]) Hook {
	return Hook{
		Name: "stage_history",
		Run: func(ctx context.Context, event TransitionEvent) error {
			entry := &schemas.StageHistory{
				PipeType:  event.PipeType,
				RecordID:  event.RecordID,
				LeadID:    event.LeadID,
				FromStage: event.FromStage,
				ToStage:   event.ToStage,
				Origin:    schemas.HISTORY_ORIGIN_MANUAL,
				ActorID:   event.ActorID,
			}
			return history.Create(ctx, entry)
		},
	}
}
