// Package waterlog stores water-intake entries.
package waterlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is a single logged water intake.
type Entry struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	AmountMl int       `json:"amount_ml"`
	LoggedAt time.Time `json:"logged_at"`
}

// Repository is a database-backed repository for water logs.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Create inserts a new entry, assigning its ID when empty.
func (r *Repository) Create(ctx context.Context, e *Entry) error {
	if e.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if e.AmountMl <= 0 {
		return fmt.Errorf("amount must be > 0 ml")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.LoggedAt.IsZero() {
		e.LoggedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO water_logs (id, user_id, amount_ml, logged_at)
VALUES (?, ?, ?, ?)
`, e.ID, e.UserID, e.AmountMl, e.LoggedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert water log: %w", err)
	}
	return nil
}

// Delete removes an entry owned by the user.
func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM water_logs WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete water log: %w", err)
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

// SumInRange returns the total milliliters logged in [start, end).
func (r *Repository) SumInRange(ctx context.Context, userID string, start, end time.Time) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(amount_ml), 0)
FROM water_logs
WHERE user_id = ? AND logged_at >= ? AND logged_at < ?
`, userID, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum water logs: %w", err)
	}
	return total, nil
}
