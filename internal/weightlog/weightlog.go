// Package weightlog stores weigh-in samples. The sample's day column, not
// its creation timestamp, is authoritative for analytics grouping.
package weightlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nutritrack/internal/calendar"
)

// Sample is a single weigh-in.
type Sample struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	WeightKg float64   `json:"weight_kg"`
	Day      string    `json:"date"`
	Notes    string    `json:"notes,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

// Repository is a database-backed repository for weight logs.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Create inserts a new sample. The day defaults to the UTC day of LoggedAt.
func (r *Repository) Create(ctx context.Context, s *Sample) error {
	if s.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.WeightKg <= 0 {
		return fmt.Errorf("weight must be > 0 kg")
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.LoggedAt.IsZero() {
		s.LoggedAt = time.Now().UTC()
	}
	if s.Day == "" {
		s.Day = calendar.DayKey(s.LoggedAt)
	} else if _, err := calendar.ParseDay(s.Day); err != nil {
		return fmt.Errorf("invalid date %q: %w", s.Day, err)
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO weight_logs (id, user_id, weight_kg, day, notes, logged_at)
VALUES (?, ?, ?, ?, ?, ?)
`, s.ID, s.UserID, s.WeightKg, s.Day, s.Notes, s.LoggedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert weight log: %w", err)
	}
	return nil
}

// Delete removes a sample owned by the user.
func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM weight_logs WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete weight log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SamplesInRange returns samples whose day falls in [startDay, endDay),
// ordered chronologically (by day, then by creation time within a day).
func (r *Repository) SamplesInRange(ctx context.Context, userID, startDay, endDay string) ([]Sample, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, weight_kg, day, notes, logged_at
FROM weight_logs
WHERE user_id = ? AND day >= ? AND day < ?
ORDER BY day ASC, logged_at ASC
`, userID, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query weight logs: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		var loggedAt string
		if err := rows.Scan(&s.ID, &s.UserID, &s.WeightKg, &s.Day, &s.Notes, &loggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weight log: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, loggedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse logged_at %q: %w", loggedAt, err)
		}
		s.LoggedAt = ts
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weight logs: %w", err)
	}
	return samples, nil
}
