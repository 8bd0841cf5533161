package report

import (
	"context"
	"crm/schemas"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalProgressForMemberAndTeam(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	bia := f.member(t, "Bia", schemas.ROLE_CLOSER)
	dani := f.member(t, "Dani", schemas.ROLE_CLOSER)
	f.won(t, bia.ID, 3000, time.Date(2024, time.March, 2, 9, 0, 0, 0, f.loc))
	f.won(t, dani.ID, 2000, time.Date(2024, time.March, 14, 9, 0, 0, 0, f.loc))
	f.won(t, bia.ID, 7000, time.Date(2024, time.February, 29, 23, 0, 0, 0, f.loc))

	memberID := bia.ID
	personal, err := f.reports.GoalProgress(ctx, schemas.Goal{
		Name: "Receita Bia", Metric: schemas.GOAL_METRIC_REVENUE, Period: schemas.GOAL_PERIOD_MONTHLY, TargetValue: 4000, MemberID: &memberID,
	})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, personal.CurrentValue)
	assert.Equal(t, 75.0, personal.Percentage)
	assert.False(t, personal.Achieved)
	assert.True(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, f.loc).Equal(personal.PeriodStart))
	assert.True(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, f.loc).Equal(personal.PeriodEnd))

	team, err := f.reports.GoalProgress(ctx, schemas.Goal{
		Name: "Propostas do time", Metric: schemas.GOAL_METRIC_PROPOSALS_WON, Period: schemas.GOAL_PERIOD_MONTHLY, TargetValue: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, team.CurrentValue)
	assert.Equal(t, 100.0, team.Percentage)
	assert.True(t, team.Achieved)
}

func TestDailyGoalOnlyCountsToday(t *testing.T) {
	f := newReportFixture(t)
	sdr := f.member(t, "Caio", schemas.ROLE_SDR)
	f.attended(t, sdr.ID, time.Date(2024, time.March, 15, 8, 0, 0, 0, f.loc))
	f.attended(t, sdr.ID, time.Date(2024, time.March, 14, 23, 59, 0, 0, f.loc))

	progress, err := f.reports.GoalProgress(context.Background(), schemas.Goal{
		Name: "Reuniões do dia", Metric: schemas.GOAL_METRIC_MEETINGS_ATTENDED, Period: schemas.GOAL_PERIOD_DAILY, TargetValue: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, progress.CurrentValue)
	assert.Equal(t, 25.0, progress.Percentage)
}
