package meetingconfirmations

import (
	"crm/schemas"
	"crm/utils"
	"time"
)

// DeriveStage computes the stage a confirmation should be in at now, counted
// in calendar days of loc. ok is false when the engine has no opinion: the
// record is terminal, has no meeting date, or is waiting in reschedule for a
// new date. The returned stage may equal current; callers compare.
func DeriveStage(meetingDate *time.Time, current schemas.ConfirmationStage, now time.Time, loc *time.Location) (stage schemas.ConfirmationStage, ok bool) {
	if meetingDate == nil {
		return "", false
	}

	days := utils.CalendarDayDifference(now, *meetingDate, loc)

	switch current {
	case schemas.STAGE_ATTENDED, schemas.STAGE_LOST:
		return "", false
	case schemas.STAGE_RESCHEDULE:
		if days < 0 {
			return "", false
		}
	case schemas.STAGE_MEETING_SCHEDULED,
		schemas.STAGE_CONFIRM_D5,
		schemas.STAGE_CONFIRM_D3,
		schemas.STAGE_CONFIRM_D2,
		schemas.STAGE_CONFIRM_D1,
		schemas.STAGE_CONFIRM_SAME_DAY:
	default:
		return "", false
	}

	return StageForDays(days), true
}

// StageForDays maps the calendar distance to the meeting onto its stage.
func StageForDays(days int) schemas.ConfirmationStage {
	switch {
	case days < 0:
		return schemas.STAGE_RESCHEDULE
	case days == 0:
		return schemas.STAGE_CONFIRM_SAME_DAY
	case days == 1:
		return schemas.STAGE_CONFIRM_D1
	case days == 2:
		return schemas.STAGE_CONFIRM_D2
	case days == 3:
		return schemas.STAGE_CONFIRM_D3
	case days <= 5:
		return schemas.STAGE_CONFIRM_D5
	default:
		return schemas.STAGE_MEETING_SCHEDULED
	}
}
