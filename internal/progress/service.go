package progress

import (
	"context"
	"fmt"
	"time"

	"nutritrack/internal/calendar"
	"nutritrack/internal/foodlog"
)

// FoodSource lists a user's food entries in a time window.
type FoodSource interface {
	ListInRange(ctx context.Context, userID string, start, end time.Time) ([]foodlog.Entry, error)
}

// WaterSource sums a user's water intake in a time window.
type WaterSource interface {
	SumInRange(ctx context.Context, userID string, start, end time.Time) (int, error)
}

// RecordStore persists weekly progress rows.
type RecordStore interface {
	Get(ctx context.Context, userID, weekStart string) (*Record, error)
	Upsert(ctx context.Context, rec *Record) error
}

// Service recomputes and serves weekly aggregates.
type Service struct {
	food  FoodSource
	water WaterSource
	store RecordStore
}

// NewService creates a new Service.
func NewService(food FoodSource, water WaterSource, store RecordStore) *Service {
	return &Service{food: food, water: water, store: store}
}

// RecalculateWeek rebuilds the aggregate for the week starting at the given
// Monday (any timestamp inside the week is accepted) entirely from the
// source logs, then upserts it.
func (s *Service) RecalculateWeek(ctx context.Context, userID string, at time.Time) (*Record, error) {
	weekStart := calendar.MondayOf(at)
	weekEnd := weekStart.AddDate(0, 0, 7)

	entries, err := s.food.ListInRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load food logs for week: %w", err)
	}

	rec := &Record{
		UserID:    userID,
		WeekStart: weekStart.Format(calendar.DayFormat),
	}
	seen := make(map[string]struct{})
	for _, e := range entries {
		seen[calendar.DayKey(e.LoggedAt)] = struct{}{}
		rec.TotalCalories += e.Calories
		rec.TotalProtein += e.Protein
		rec.TotalCarbs += e.Carbs
		rec.TotalFats += e.Fats
	}
	rec.DaysLogged = len(seen)

	water, err := s.water.SumInRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum water logs for week: %w", err)
	}
	rec.TotalWaterMl = water

	if err := s.store.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Week returns the stored aggregate for the week containing at.
func (s *Service) Week(ctx context.Context, userID string, at time.Time) (*Record, error) {
	return s.store.Get(ctx, userID, calendar.MondayOf(at).Format(calendar.DayFormat))
}
