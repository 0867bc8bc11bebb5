// Package calendar provides calendar-day helpers for the analytics engine.
//
// All day keys are derived in UTC. Timestamps are stored in UTC and the
// engine groups them by UTC calendar day, so a key computed here always
// matches a key computed by SQL `substr(logged_at, 1, 10)` on the same row.
package calendar

import "time"

// DayFormat is the canonical day-key layout (ISO date).
const DayFormat = "2006-01-02"

// DayKey truncates a timestamp to its UTC calendar day, YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD day key into midnight UTC of that day.
func ParseDay(key string) (time.Time, error) {
	return time.Parse(DayFormat, key)
}

// StartOfDay returns midnight UTC of the day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MondayOf returns midnight UTC of the Monday on or before t.
// Sunday counts as day 7, so a Sunday maps to the Monday six days earlier.
func MondayOf(t time.Time) time.Time {
	day := StartOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

// LastNDays returns n day keys, oldest first, ending at the day containing now.
func LastNDays(n int, now time.Time) []string {
	if n <= 0 {
		return nil
	}
	end := StartOfDay(now)
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = end.AddDate(0, 0, i-n+1).Format(DayFormat)
	}
	return keys
}
