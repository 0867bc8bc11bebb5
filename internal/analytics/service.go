package analytics

import (
	"context"
	"fmt"
	"time"

	"nutritrack/internal/calendar"
	"nutritrack/internal/foodlog"
	"nutritrack/internal/profile"
	"nutritrack/internal/weightlog"
)

// MinWindowDays is the smallest analytics window served. Shorter requests
// are widened to this.
const MinWindowDays = 7

// CalorieSource provides per-day calorie totals for a user in [start, end).
type CalorieSource interface {
	CalorieTotalsByDay(ctx context.Context, userID string, start, end time.Time) ([]foodlog.DayCalories, error)
}

// WeightSource provides weight samples for a user whose day falls in
// [startDay, endDay), ordered chronologically.
type WeightSource interface {
	SamplesInRange(ctx context.Context, userID, startDay, endDay string) ([]weightlog.Sample, error)
}

// ProfileSource provides the user's stored goal.
type ProfileSource interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
}

// Result is the combined analytics bundle, computed fresh on every query.
type Result struct {
	Estimate
	TargetWeeklyChange float64               `json:"target_weekly_change_kg"`
	Goal               profile.Goal          `json:"goal"`
	WindowDays         int                   `json:"window_days"`
	WeightSeries       []WeightSample        `json:"weight_series"`
	DailyCalorieSeries []foodlog.DayCalories `json:"daily_calorie_series"`
}

// Service answers "give me this user's analytics for the last D days".
type Service struct {
	calories CalorieSource
	weights  WeightSource
	profiles ProfileSource
	now      func() time.Time
}

// NewService creates a new Service.
func NewService(calories CalorieSource, weights WeightSource, profiles ProfileSource) *Service {
	return &Service{calories: calories, weights: weights, profiles: profiles, now: time.Now}
}

// Summary computes the analytics bundle for the trailing window of days.
// Returns profile.ErrNotFound when the user has no stored goal.
func (s *Service) Summary(ctx context.Context, userID string, days int) (*Result, error) {
	if days < MinWindowDays {
		days = MinWindowDays
	}

	prof, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	end := calendar.StartOfDay(now).AddDate(0, 0, 1) // end of today, exclusive
	start := end.AddDate(0, 0, -days)

	totals, err := s.calories.CalorieTotalsByDay(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load calorie totals: %w", err)
	}

	samples, err := s.weights.SamplesInRange(ctx, userID,
		start.Format(calendar.DayFormat), end.Format(calendar.DayFormat))
	if err != nil {
		return nil, fmt.Errorf("failed to load weight samples: %w", err)
	}

	dailyTotals := make([]DayTotal, len(totals))
	for i, t := range totals {
		dailyTotals[i] = DayTotal{Day: t.Day, Calories: t.Calories}
	}
	weightSeries := make([]WeightSample, len(samples))
	for i, sm := range samples {
		weightSeries[i] = WeightSample{Day: sm.Day, WeightKg: sm.WeightKg}
	}

	target := prof.Goal.TargetWeeklyChange()
	est := ComputeEstimate(EstimateInput{
		DailyCalories:      dailyTotals,
		WeightSamples:      weightSeries,
		TargetWeeklyChange: target,
	})

	return &Result{
		Estimate:           est,
		TargetWeeklyChange: target,
		Goal:               prof.Goal,
		WindowDays:         days,
		WeightSeries:       weightSeries,
		DailyCalorieSeries: totals,
	}, nil
}
