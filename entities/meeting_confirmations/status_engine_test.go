package meetingconfirmations

import (
	"crm/schemas"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func at(loc *time.Location, year int, month time.Month, day, hour, minute int) *time.Time {
	tm := time.Date(year, month, day, hour, minute, 0, 0, loc)
	return &tm
}

func TestDeriveStageByCalendarDistance(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2024, time.March, 10, 14, 0, 0, 0, loc)

	tests := []struct {
		name        string
		meetingDate *time.Time
		want        schemas.ConfirmationStage
	}{
		{"yesterday is overdue", at(loc, 2024, time.March, 9, 15, 0), schemas.STAGE_RESCHEDULE},
		{"earlier today is still today", at(loc, 2024, time.March, 10, 8, 0), schemas.STAGE_CONFIRM_SAME_DAY},
		{"later today", at(loc, 2024, time.March, 10, 23, 59), schemas.STAGE_CONFIRM_SAME_DAY},
		{"tomorrow just after midnight", at(loc, 2024, time.March, 11, 0, 5), schemas.STAGE_CONFIRM_D1},
		{"tomorrow late night", at(loc, 2024, time.March, 11, 23, 59), schemas.STAGE_CONFIRM_D1},
		{"two days", at(loc, 2024, time.March, 12, 10, 0), schemas.STAGE_CONFIRM_D2},
		{"three days", at(loc, 2024, time.March, 13, 10, 0), schemas.STAGE_CONFIRM_D3},
		{"four days", at(loc, 2024, time.March, 14, 10, 0), schemas.STAGE_CONFIRM_D5},
		{"five days", at(loc, 2024, time.March, 15, 23, 0), schemas.STAGE_CONFIRM_D5},
		{"six days", at(loc, 2024, time.March, 16, 0, 30), schemas.STAGE_MEETING_SCHEDULED},
		{"next month", at(loc, 2024, time.April, 20, 10, 0), schemas.STAGE_MEETING_SCHEDULED},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DeriveStage(tt.meetingDate, schemas.STAGE_MEETING_SCHEDULED, now, loc)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveStageWithoutMeetingDate(t *testing.T) {
	loc := saoPaulo(t)
	_, ok := DeriveStage(nil, schemas.STAGE_CONFIRM_D1, time.Now(), loc)
	assert.False(t, ok)
}

func TestDeriveStageLeavesTerminalStagesAlone(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2024, time.March, 10, 14, 0, 0, 0, loc)

	for _, stage := range []schemas.ConfirmationStage{schemas.STAGE_ATTENDED, schemas.STAGE_LOST} {
		for _, meetingDate := range []*time.Time{
			at(loc, 2024, time.March, 1, 10, 0),
			at(loc, 2024, time.March, 10, 10, 0),
			at(loc, 2024, time.March, 11, 10, 0),
		} {
			_, ok := DeriveStage(meetingDate, stage, now, loc)
			assert.False(t, ok, "stage %s must never be derived", stage)
		}
	}
}

func TestDeriveStageRescheduleWaitsForNewDate(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2024, time.March, 10, 14, 0, 0, 0, loc)

	_, ok := DeriveStage(at(loc, 2024, time.March, 8, 10, 0), schemas.STAGE_RESCHEDULE, now, loc)
	assert.False(t, ok, "still overdue, stays in reschedule")

	got, ok := DeriveStage(at(loc, 2024, time.March, 11, 9, 0), schemas.STAGE_RESCHEDULE, now, loc)
	assert.True(t, ok)
	assert.Equal(t, schemas.STAGE_CONFIRM_D1, got)
}

func TestDeriveStageSameDayLateInTheEvening(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2024, time.March, 10, 23, 0, 0, 0, loc)

	got, ok := DeriveStage(at(loc, 2024, time.March, 10, 9, 0), schemas.STAGE_MEETING_SCHEDULED, now, loc)
	assert.True(t, ok)
	assert.Equal(t, schemas.STAGE_CONFIRM_SAME_DAY, got)
}

func TestDeriveStageIsIdempotent(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2024, time.March, 10, 14, 0, 0, 0, loc)

	for offset := -3; offset <= 9; offset++ {
		meetingDate := now.AddDate(0, 0, offset)
		first, ok := DeriveStage(&meetingDate, schemas.STAGE_MEETING_SCHEDULED, now, loc)
		require.True(t, ok)

		second, ok := DeriveStage(&meetingDate, first, now, loc)
		if first == schemas.STAGE_RESCHEDULE {
			assert.False(t, ok, "overdue reschedule has no further opinion")
			continue
		}
		assert.True(t, ok)
		assert.Equal(t, first, second, "offset %d", offset)
	}
}

func TestDeriveStageUsesBusinessTimeZone(t *testing.T) {
	loc := saoPaulo(t)
	// 01:30 UTC on the 11th is still the 10th in São Paulo.
	now := time.Date(2024, time.March, 11, 1, 30, 0, 0, time.UTC)
	meetingDate := time.Date(2024, time.March, 11, 10, 0, 0, 0, loc)

	got, ok := DeriveStage(&meetingDate, schemas.STAGE_MEETING_SCHEDULED, now, loc)
	assert.True(t, ok)
	assert.Equal(t, schemas.STAGE_CONFIRM_D1, got)
}

func TestConfirmD2IsShownInTheD3Column(t *testing.T) {
	assert.Equal(t, schemas.STAGE_CONFIRM_D3, schemas.STAGE_CONFIRM_D2.Column())
	assert.Equal(t, schemas.STAGE_CONFIRM_D1, schemas.STAGE_CONFIRM_D1.Column())
}
