package streak

import (
	"context"
	"fmt"
	"time"
)

// LogDateSource provides the distinct calendar days with food logs for a
// user, most recent first.
type LogDateSource interface {
	DistinctLogDates(ctx context.Context, userID string) ([]string, error)
}

// RecordStore persists per-user streak rows.
type RecordStore interface {
	Get(ctx context.Context, userID string) (*Record, error)
	Upsert(ctx context.Context, rec *Record) error
}

// Service recomputes and serves streak records.
type Service struct {
	dates LogDateSource
	store RecordStore
	now   func() time.Time
}

// NewService creates a new Service.
func NewService(dates LogDateSource, store RecordStore) *Service {
	return &Service{dates: dates, store: store, now: time.Now}
}

// Recalculate recomputes the user's streak from the full set of log dates
// and upserts the cached record. Safe to call after any food-log mutation;
// concurrent calls converge because each writes a full recomputation.
func (s *Service) Recalculate(ctx context.Context, userID string) (*Record, error) {
	dates, err := s.dates.DistinctLogDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load log dates: %w", err)
	}

	info := Compute(dates, s.now())
	rec := &Record{
		UserID:        userID,
		CurrentStreak: info.Current,
		LongestStreak: info.Longest,
	}
	if info.LastLogDate != "" {
		rec.LastLogDate = &info.LastLogDate
	}
	if err := s.store.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Current returns the user's cached streak record.
func (s *Service) Current(ctx context.Context, userID string) (*Record, error) {
	return s.store.Get(ctx, userID)
}
