package report

import (
	"context"
	"crm/database"
	"crm/schemas"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	RANKING_CACHE_PREFIX = "crm:ranking:"
	RANKING_CACHE_TTL    = 5 * time.Minute

	POINTS_PER_ATTENDED_MEETING = 10
	POINTS_PER_WON_PROPOSAL     = 50
	WON_VALUE_PER_POINT         = 1000
)

func rankingCacheKey(from, until time.Time) string {
	return RANKING_CACHE_PREFIX + from.UTC().Format(time.RFC3339) + ":" + until.UTC().Format(time.RFC3339)
}

func Points(member schemas.TeamMember, totals MemberTotals) float64 {
	switch member.Role {
	case schemas.ROLE_SDR:
		return float64(totals.MeetingsAttended * POINTS_PER_ATTENDED_MEETING)
	case schemas.ROLE_CLOSER:
		return float64(totals.ProposalsWon*POINTS_PER_WON_PROPOSAL) + math.Floor(totals.WonValue/WON_VALUE_PER_POINT)
	}
	return 0
}

// Ranking is the leaderboard of SDRs and closers over [from, until), best
// first. Ties are broken by name.
func (rp *Reports) Ranking(ctx context.Context, from, until time.Time) ([]schemas.RankingEntry, error) {
	key := rankingCacheKey(from, until)
	cached := []schemas.RankingEntry{}
	if rp.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	members, err := rp.store.TeamMembers.List(ctx, database.Filter{
		"active": true,
		"role":   database.Filter{"$in": []string{schemas.ROLE_SDR, schemas.ROLE_CLOSER}},
	})
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	totals, err := rp.Collect(ctx, from, until)
	if err != nil {
		return nil, err
	}

	ranking := make([]schemas.RankingEntry, 0, len(members))
	for _, member := range members {
		total := MemberTotals{}
		if t := totals[member.ID]; t != nil {
			total = *t
		}
		ranking = append(ranking, schemas.RankingEntry{
			MemberID:         member.ID,
			MemberName:       member.Name,
			Role:             member.Role,
			Points:           Points(member, total),
			MeetingsAttended: total.MeetingsAttended,
			ProposalsWon:     total.ProposalsWon,
			WonValue:         round2(total.WonValue),
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Points != ranking[j].Points {
			return ranking[i].Points > ranking[j].Points
		}
		return ranking[i].MemberName < ranking[j].MemberName
	})
	for i := range ranking {
		ranking[i].Position = i + 1
	}

	rp.cache.SetJSON(ctx, key, ranking, RANKING_CACHE_TTL)
	return ranking, nil
}

// InvalidateRankingOn drops cached rankings whenever something that scores
// points changes.
func (rp *Reports) InvalidateRankingOn(feed *database.ChangeFeed) (unsubscribe func()) {
	invalidate := func(change database.Change) {
		go func() {
			rp.cache.DeletePrefix(context.Background(), RANKING_CACHE_PREFIX)
			log.Debug().Str("entity", change.Entity).Msg("ranking cache invalidated")
		}()
	}

	unsubscribers := []func(){
		feed.Subscribe(database.COLLECTION_MEETING_CONFIRMATIONS, invalidate),
		feed.Subscribe(database.COLLECTION_PROPOSALS, invalidate),
		feed.Subscribe(database.COLLECTION_TEAM_MEMBERS, invalidate),
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}
