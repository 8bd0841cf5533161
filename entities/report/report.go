// Package report aggregates attended meetings and won deals into the
// numbers the sales team is paid and ranked by: commissions, the ranking
// leaderboard and goal progress.
package report

import (
	"context"
	"crm/database"
	"crm/schemas"
	"crm/utils"
	"database/sql"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Reports struct {
	store  *database.Store
	legacy *sql.DB
	cache  *database.Cache
	tiers  []utils.BonusTier
	now    func() time.Time
	loc    *time.Location
}

// NewReports builds the report service. legacy and cache may be nil.
func NewReports(store *database.Store, legacy *sql.DB, cache *database.Cache, now func() time.Time, loc *time.Location) *Reports {
	return &Reports{
		store:  store,
		legacy: legacy,
		cache:  cache,
		tiers:  utils.DefaultBonusTiers,
		now:    now,
		loc:    loc,
	}
}

// MemberTotals is what a member produced in a period: meetings attended are
// credited to the SDR, won proposals to the closer.
type MemberTotals struct {
	MeetingsAttended int64
	ProposalsWon     int64
	WonValue         float64
}

// Collect totals attended meetings and won proposals per member in
// [from, until).
func (rp *Reports) Collect(ctx context.Context, from, until time.Time) (map[bson.ObjectID]*MemberTotals, error) {
	totals := map[bson.ObjectID]*MemberTotals{}
	get := func(id bson.ObjectID) *MemberTotals {
		if totals[id] == nil {
			totals[id] = &MemberTotals{}
		}
		return totals[id]
	}

	attended, err := rp.store.MeetingConfirmations.List(ctx, database.Filter{
		"stage":       schemas.STAGE_ATTENDED,
		"attended_at": database.Filter{"$gte": from, "$lt": until},
	})
	if err != nil {
		return nil, fmt.Errorf("list attended meetings: %w", err)
	}
	for _, confirmation := range attended {
		if confirmation.SdrID != nil {
			get(*confirmation.SdrID).MeetingsAttended++
		}
	}

	won, err := rp.store.Proposals.List(ctx, database.Filter{
		"stage":  schemas.STAGE_WON,
		"won_at": database.Filter{"$gte": from, "$lt": until},
	})
	if err != nil {
		return nil, fmt.Errorf("list won proposals: %w", err)
	}
	for _, proposal := range won {
		if proposal.CloserID != nil {
			member := get(*proposal.CloserID)
			member.ProposalsWon++
			member.WonValue += proposal.Value
		}
	}

	return totals, nil
}
