// Package streak maintains the consecutive-day logging streak, a derived
// cache recomputed from food-log dates after every mutation.
package streak

import (
	"time"

	"nutritrack/internal/calendar"
)

// Info holds the computed streak values.
type Info struct {
	Current     int
	Longest     int
	LastLogDate string // YYYY-MM-DD, empty when no logs exist
}

// Compute calculates the current and longest streaks from the distinct
// calendar days with at least one food log, sorted descending (most recent
// first). The current streak stays alive if the most recent log is today or
// yesterday relative to now; otherwise it is 0.
//
// Recomputing from the same date set always yields the same result.
func Compute(datesDesc []string, now time.Time) Info {
	if len(datesDesc) == 0 {
		return Info{}
	}

	info := Info{LastLogDate: datesDesc[0]}

	today := calendar.DayKey(now)
	yesterday := calendar.DayKey(now.UTC().AddDate(0, 0, -1))

	// Current streak: walk from the most recent date with a cursor,
	// stopping at the first missed day.
	if datesDesc[0] == today || datesDesc[0] == yesterday {
		cursor, err := calendar.ParseDay(datesDesc[0])
		if err == nil {
			for _, d := range datesDesc {
				if d != cursor.Format(calendar.DayFormat) {
					break
				}
				info.Current++
				cursor = cursor.AddDate(0, 0, -1)
			}
		}
	}

	// Longest streak: pairwise scan of the descending list, extending a run
	// whenever consecutive entries are exactly one day apart.
	run := 1
	info.Longest = 1
	for i := 1; i < len(datesDesc); i++ {
		prev, err1 := calendar.ParseDay(datesDesc[i-1])
		curr, err2 := calendar.ParseDay(datesDesc[i])
		if err1 != nil || err2 != nil {
			run = 1
			continue
		}
		if prev.AddDate(0, 0, -1).Equal(curr) {
			run++
			if run > info.Longest {
				info.Longest = run
			}
		} else {
			run = 1
		}
	}

	// A streak still in progress can be the record.
	if info.Current > info.Longest {
		info.Longest = info.Current
	}
	return info
}
