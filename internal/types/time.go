package types

import "time"

// DayBounds returns the UTC [start, end) bounds of the calendar day
// containing t. Used for date-bucketed dashboard counts.
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// DateString formats t as yyyy-mm-dd in UTC.
func DateString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
