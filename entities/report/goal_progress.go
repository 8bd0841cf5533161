package report

import (
	"context"
	"crm/schemas"
	"crm/utils"
	"math"
)

// GoalProgress measures a goal over the period it is currently in. A team
// goal sums every member.
func (rp *Reports) GoalProgress(ctx context.Context, goal schemas.Goal) (schemas.GoalProgress, error) {
	start, end := utils.PeriodBounds(goal.Period, rp.now(), rp.loc)

	totals, err := rp.Collect(ctx, start, end)
	if err != nil {
		return schemas.GoalProgress{}, err
	}

	current := 0.0
	for memberID, total := range totals {
		if goal.MemberID != nil && memberID != *goal.MemberID {
			continue
		}
		switch goal.Metric {
		case schemas.GOAL_METRIC_MEETINGS_ATTENDED:
			current += float64(total.MeetingsAttended)
		case schemas.GOAL_METRIC_PROPOSALS_WON:
			current += float64(total.ProposalsWon)
		case schemas.GOAL_METRIC_REVENUE:
			current += total.WonValue
		}
	}

	percentage := 0.0
	if goal.TargetValue > 0 {
		percentage = math.Round(current/goal.TargetValue*10000) / 100
	}

	return schemas.GoalProgress{
		GoalID:       goal.ID,
		Name:         goal.Name,
		Metric:       goal.Metric,
		Period:       goal.Period,
		PeriodStart:  start,
		PeriodEnd:    end,
		CurrentValue: round2(current),
		TargetValue:  goal.TargetValue,
		Percentage:   percentage,
		Achieved:     current >= goal.TargetValue,
	}, nil
}
