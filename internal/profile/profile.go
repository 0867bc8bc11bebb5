// Package profile reads the user's declared objective. The analytics engine
// only uses it to pick a target weekly weight-change rate.
package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a user has no stored profile. Analytics
// cannot proceed without a goal.
var ErrNotFound = errors.New("profile not found")

// Goal is the user's declared objective.
type Goal string

const (
	GoalLoseWeight       Goal = "lose_weight"
	GoalGainMuscle       Goal = "gain_muscle"
	GoalMaintainWeight   Goal = "maintain_weight"
	GoalImproveHealth    Goal = "improve_health"
	GoalIncreaseStrength Goal = "increase_strength"
)

// Valid reports whether g is one of the known goals.
func (g Goal) Valid() bool {
	switch g {
	case GoalLoseWeight, GoalGainMuscle, GoalMaintainWeight, GoalImproveHealth, GoalIncreaseStrength:
		return true
	}
	return false
}

// TargetWeeklyChange returns the target weekly weight change in kg implied
// by the goal: -0.5 for losing weight, +0.25 for building muscle or
// strength, 0 otherwise.
func (g Goal) TargetWeeklyChange() float64 {
	switch g {
	case GoalLoseWeight:
		return -0.5
	case GoalGainMuscle, GoalIncreaseStrength:
		return 0.25
	default:
		return 0
	}
}

// Profile is the stored per-user record.
type Profile struct {
	UserID    string    `json:"user_id"`
	Goal      Goal      `json:"goal"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository is a database-backed repository for profiles.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Get retrieves the user's profile, or ErrNotFound when absent.
func (r *Repository) Get(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	var goal, updatedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, goal, updated_at FROM profiles WHERE user_id = ?`, userID).
		Scan(&p.UserID, &goal, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.Goal = Goal(goal)
	ts, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at %q: %w", updatedAt, err)
	}
	p.UpdatedAt = ts
	return &p, nil
}

// Upsert stores the user's goal, overwriting any previous value.
func (r *Repository) Upsert(ctx context.Context, userID string, goal Goal) error {
	if !goal.Valid() {
		return fmt.Errorf("invalid goal %q", goal)
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (user_id, goal, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET goal = excluded.goal, updated_at = excluded.updated_at
`, userID, string(goal), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
