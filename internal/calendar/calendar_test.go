package calendar

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	t.Run("TruncatesToUTCDay", func(t *testing.T) {
		ts := time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)
		if got := DayKey(ts); got != "2024-03-15" {
			t.Errorf("Expected '2024-03-15', got '%s'", got)
		}
	})

	t.Run("ConvertsZoneBeforeTruncating", func(t *testing.T) {
		// 23:30 in UTC-5 is already the next day in UTC.
		loc := time.FixedZone("EST", -5*3600)
		ts := time.Date(2024, 3, 15, 23, 30, 0, 0, loc)
		if got := DayKey(ts); got != "2024-03-16" {
			t.Errorf("Expected '2024-03-16', got '%s'", got)
		}
	})
}

func TestMondayOf(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"Monday", time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC), "2024-01-08"},
		{"Wednesday", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "2024-01-08"},
		{"Saturday", time.Date(2024, 1, 13, 23, 0, 0, 0, time.UTC), "2024-01-08"},
		{"SundayBelongsToPreviousMonday", time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC), "2024-01-08"},
		{"AcrossMonthBoundary", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), "2024-02-26"},
		{"AcrossYearBoundary", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2024-12-30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MondayOf(tc.in)
			if got.Format(DayFormat) != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got.Format(DayFormat))
			}
			if got.Weekday() != time.Monday {
				t.Errorf("Expected a Monday, got %s", got.Weekday())
			}
			if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
				t.Errorf("Expected midnight, got %02d:%02d:%02d", h, m, s)
			}
		})
	}
}

func TestLastNDays(t *testing.T) {
	now := time.Date(2024, 1, 5, 18, 30, 0, 0, time.UTC)

	t.Run("OrderedOldestFirst", func(t *testing.T) {
		got := LastNDays(3, now)
		want := []string{"2024-01-03", "2024-01-04", "2024-01-05"}
		if len(got) != len(want) {
			t.Fatalf("Expected %d days, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Day %d: expected %s, got %s", i, want[i], got[i])
			}
		}
	})

	t.Run("SpansMonthBoundary", func(t *testing.T) {
		got := LastNDays(7, now)
		if got[0] != "2023-12-30" {
			t.Errorf("Expected first day '2023-12-30', got '%s'", got[0])
		}
		if got[6] != "2024-01-05" {
			t.Errorf("Expected last day '2024-01-05', got '%s'", got[6])
		}
	})

	t.Run("ZeroOrNegative", func(t *testing.T) {
		if got := LastNDays(0, now); got != nil {
			t.Errorf("Expected nil for n=0, got %v", got)
		}
		if got := LastNDays(-1, now); got != nil {
			t.Errorf("Expected nil for n=-1, got %v", got)
		}
	})
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2024-06-01")
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	if !day.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected midnight UTC 2024-06-01, got %v", day)
	}
	if _, err := ParseDay("not-a-day"); err == nil {
		t.Error("Expected an error for malformed day key, got nil")
	}
}
