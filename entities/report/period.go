package report

import (
	"crm/utils"
	"net/http"
	"time"
)

const DATE_ONLY_LENGTH = len("2006-01-02")

// ParsePeriod reads ?from=&until= as [from, until). A date-only until covers
// that whole day. Missing bounds default to the current month.
func ParsePeriod(r *http.Request, now time.Time, loc *time.Location) (time.Time, time.Time, bool) {
	from, until := utils.PeriodBounds("monthly", now, loc)

	params := r.URL.Query()
	if value := params.Get("from"); value != "" {
		parsed, ok := utils.ParseDate(value)
		if !ok {
			return from, until, false
		}
		from = parsed
	}
	if value := params.Get("until"); value != "" {
		parsed, ok := utils.ParseDate(value)
		if !ok {
			return from, until, false
		}
		if len(value) == DATE_ONLY_LENGTH {
			parsed = parsed.AddDate(0, 0, 1)
		}
		until = parsed
	}

	return from, until, until.After(from)
}

// IsCalendarMonth reports whether [from, until) is exactly one month starting
// at midnight of the first day in loc.
func IsCalendarMonth(from, until time.Time, loc *time.Location) bool {
	start := from.In(loc)
	if start.Day() != 1 || !start.Equal(utils.StartOfDay(start, loc)) {
		return false
	}
	return until.Equal(start.AddDate(0, 1, 0))
}
