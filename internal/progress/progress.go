// Package progress maintains per-week nutrition and water rollups, keyed by
// (user, week-start Monday). Rows are always recomputed in full from the
// source logs so a missed invalidation can never cause drift.
package progress

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Record is one week's aggregate for a user.
type Record struct {
	UserID        string    `json:"user_id"`
	WeekStart     string    `json:"week_start"`
	DaysLogged    int       `json:"days_logged"`
	TotalCalories int       `json:"total_calories"`
	TotalProtein  float64   `json:"total_protein_g"`
	TotalCarbs    float64   `json:"total_carbs_g"`
	TotalFats     float64   `json:"total_fats_g"`
	TotalWaterMl  int       `json:"total_water_ml"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Repository is a database-backed repository for weekly progress rows.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Get retrieves the stored aggregate for a week. A week with no row yet
// yields a zero-valued record.
func (r *Repository) Get(ctx context.Context, userID, weekStart string) (*Record, error) {
	var rec Record
	var updatedAt string
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, week_start, days_logged, total_calories, total_protein, total_carbs, total_fats, total_water_ml, updated_at
FROM weekly_progress
WHERE user_id = ? AND week_start = ?
`, userID, weekStart).Scan(&rec.UserID, &rec.WeekStart, &rec.DaysLogged, &rec.TotalCalories,
		&rec.TotalProtein, &rec.TotalCarbs, &rec.TotalFats, &rec.TotalWaterMl, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return &Record{UserID: userID, WeekStart: weekStart}, nil
		}
		return nil, fmt.Errorf("failed to get weekly progress: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at %q: %w", updatedAt, err)
	}
	rec.UpdatedAt = ts
	return &rec, nil
}

// Upsert writes a week's aggregate in a single atomic statement. Last
// writer wins; every writer carries a full recomputation.
func (r *Repository) Upsert(ctx context.Context, rec *Record) error {
	rec.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO weekly_progress (user_id, week_start, days_logged, total_calories, total_protein, total_carbs, total_fats, total_water_ml, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, week_start) DO UPDATE SET
    days_logged    = excluded.days_logged,
    total_calories = excluded.total_calories,
    total_protein  = excluded.total_protein,
    total_carbs    = excluded.total_carbs,
    total_fats     = excluded.total_fats,
    total_water_ml = excluded.total_water_ml,
    updated_at     = excluded.updated_at
`, rec.UserID, rec.WeekStart, rec.DaysLogged, rec.TotalCalories, rec.TotalProtein,
		rec.TotalCarbs, rec.TotalFats, rec.TotalWaterMl, rec.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert weekly progress: %w", err)
	}
	return nil
}
