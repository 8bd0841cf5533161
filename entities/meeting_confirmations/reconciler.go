package meetingconfirmations

import (
	"context"
	"crm/database"
	"crm/schemas"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	RECONCILE_LOCK_KEY = "crm:reconcile:lock"
	RECONCILE_LOCK_TTL = time.Minute
)

type ReconcileReport struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Reconciler moves confirmations to the stage their meeting date calls for.
// A sweep only ever updates the stage field, so running it again right away
// changes nothing.
type Reconciler struct {
	confirmations database.Repository[schemas.MeetingConfirmation]
	cache         *database.Cache
	now           func() time.Time
	loc           *time.Location

	mu      sync.Mutex
	pending chan struct{}
}

func NewReconciler(
	confirmations database.Repository[schemas.MeetingConfirmation],
	cache *database.Cache,
	now func() time.Time,
	loc *time.Location,
) *Reconciler {
	return &Reconciler{
		confirmations: confirmations,
		cache:         cache,
		now:           now,
		loc:           loc,
		pending:       make(chan struct{}, 1),
	}
}

// Reconcile applies DeriveStage to every record and persists the ones that
// changed. A failed write is logged and the sweep carries on.
func (r *Reconciler) Reconcile(ctx context.Context, records []schemas.MeetingConfirmation) ReconcileReport {
	report := ReconcileReport{}
	now := r.now()

	for _, record := range records {
		report.Scanned++

		next, ok := DeriveStage(record.MeetingDate, record.Stage, now, r.loc)
		if !ok || next == record.Stage {
			report.Skipped++
			continue
		}

		_, err := r.confirmations.Update(ctx, record.ID, database.Fields{"stage": next})
		if err != nil {
			report.Failed++
			log.Error().
				Err(err).
				Str("confirmation_id", record.ID.Hex()).
				Str("from_stage", string(record.Stage)).
				Str("to_stage", string(next)).
				Msg("failed to reconcile meeting confirmation")
			continue
		}

		report.Updated++
		log.Debug().
			Str("confirmation_id", record.ID.Hex()).
			Str("from_stage", string(record.Stage)).
			Str("to_stage", string(next)).
			Msg("meeting confirmation reconciled")
	}

	return report
}

// ReconcileAll sweeps every non-terminal confirmation. Sweeps are serialized
// in-process and, with Redis, across instances; a sweep that finds the lock
// taken returns an empty report.
func (r *Reconciler) ReconcileAll(ctx context.Context) (ReconcileReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	release, acquired, err := r.cache.TryLock(ctx, RECONCILE_LOCK_KEY, RECONCILE_LOCK_TTL)
	if err != nil {
		log.Warn().Err(err).Msg("reconcile lock unavailable, sweeping without it")
	} else if !acquired {
		log.Debug().Msg("reconcile already running on another instance")
		return ReconcileReport{}, nil
	}
	defer release()

	filter := database.Filter{"stage": database.Filter{"$nin": []schemas.ConfirmationStage{schemas.STAGE_ATTENDED, schemas.STAGE_LOST}}}
	records, err := r.confirmations.List(ctx, filter)
	if err != nil {
		return ReconcileReport{}, fmt.Errorf("list meeting confirmations: %w", err)
	}

	report := r.Reconcile(ctx, records)
	if report.Updated > 0 || report.Failed > 0 {
		log.Info().
			Int("scanned", report.Scanned).
			Int("updated", report.Updated).
			Int("failed", report.Failed).
			Msg("meeting confirmation sweep finished")
	}
	return report, nil
}

// Trigger asks Run for a sweep. Triggers that arrive while one is pending
// collapse into it.
func (r *Reconciler) Trigger() {
	select {
	case r.pending <- struct{}{}:
	default:
	}
}

// OnChange is the change feed subscriber: new or removed confirmations and
// edited meeting dates call for a sweep. The sweep's own stage writes do not.
func (r *Reconciler) OnChange(change database.Change) {
	if change.Kind == database.CHANGE_UPDATED && !change.Touches("meeting_date") {
		return
	}
	r.Trigger()
}

// Run sweeps once at start, on every trigger and every interval so records
// move when the calendar day turns even if nobody edits anything.
func (r *Reconciler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.Trigger()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-r.pending:
		}

		if _, err := r.ReconcileAll(ctx); err != nil {
			log.Error().Err(err).Msg("meeting confirmation sweep failed")
		}
	}
}
