package utils

import (
	"encoding/json"
	"os"
	"time"
)

const DAY = 24 * time.Hour

// NullableTime is a request field that tells an explicit null apart from an
// absent key. Present with a nil Time means "clear it".
type NullableTime struct {
	Present bool
	Time    *time.Time
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		n.Time = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	n.Time = &t
	return nil
}

func IsValidDate(dateStr string) bool {
	_, ok := ParseDate(dateStr)
	return ok
}

func ParseDate(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	for _, format := range formats {
		if parsed, err := time.ParseInLocation(format, dateStr, Location()); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}

// Location is the business time zone: calendar days, goal periods and
// follow-up due dates are all counted in it.
func Location() *time.Location {
	name := os.Getenv(TIMEZONE)
	if name == "" {
		name = DEFAULT_TIMEZONE
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// CalendarDayDifference returns how many calendar days `to` lies after
// `from` in loc. Times of day are ignored: 00:05 and 23:59 of the same date
// are the same day. Counting on dates avoids DST days that last 23 or 25 hours.
func CalendarDayDifference(from, to time.Time, loc *time.Location) int {
	a := from.In(loc)
	b := to.In(loc)
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / DAY)
}

// PeriodBounds returns [start, end) of the daily, monthly or yearly period
// containing t.
func PeriodBounds(period string, t time.Time, loc *time.Location) (time.Time, time.Time) {
	day := StartOfDay(t, loc)
	switch period {
	case "daily":
		return day, day.AddDate(0, 0, 1)
	case "yearly":
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	default:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	}
}
