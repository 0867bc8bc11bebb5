package streak

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Record is the per-user streak row.
type Record struct {
	UserID        string    `json:"user_id"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	LastLogDate   *string   `json:"last_log_date"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Repository is a database-backed repository for streak records.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Get retrieves the user's streak record. A user with no record yet gets a
// zero-valued one rather than an error.
func (r *Repository) Get(ctx context.Context, userID string) (*Record, error) {
	var rec Record
	var updatedAt string
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, current_streak, longest_streak, last_log_date, updated_at
FROM streaks
WHERE user_id = ?
`, userID).Scan(&rec.UserID, &rec.CurrentStreak, &rec.LongestStreak, &rec.LastLogDate, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return &Record{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to get streak record: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at %q: %w", updatedAt, err)
	}
	rec.UpdatedAt = ts
	return &rec, nil
}

// Upsert writes the user's streak row in a single atomic statement.
func (r *Repository) Upsert(ctx context.Context, rec *Record) error {
	rec.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO streaks (user_id, current_streak, longest_streak, last_log_date, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    current_streak = excluded.current_streak,
    longest_streak = excluded.longest_streak,
    last_log_date  = excluded.last_log_date,
    updated_at     = excluded.updated_at
`, rec.UserID, rec.CurrentStreak, rec.LongestStreak, rec.LastLogDate,
		rec.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert streak record: %w", err)
	}
	return nil
}
