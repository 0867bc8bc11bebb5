package foodlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository is a database-backed repository for food logs.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Create inserts a new entry, assigning its ID when empty.
func (r *Repository) Create(ctx context.Context, e *Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.LoggedAt.IsZero() {
		e.LoggedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO food_logs (id, user_id, meal_type, food_name, calories, protein, carbs, fats, logged_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, e.UserID, string(e.MealType), e.FoodName, e.Calories, e.Protein, e.Carbs, e.Fats,
		e.LoggedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert food log: %w", err)
	}
	return nil
}

// Update overwrites an existing entry owned by the same user.
func (r *Repository) Update(ctx context.Context, e *Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE food_logs
SET meal_type = ?, food_name = ?, calories = ?, protein = ?, carbs = ?, fats = ?, logged_at = ?
WHERE id = ? AND user_id = ?
`, string(e.MealType), e.FoodName, e.Calories, e.Protein, e.Carbs, e.Fats,
		e.LoggedAt.UTC().Format(time.RFC3339), e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("failed to update food log: %w", err)
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

// Delete removes an entry owned by the user. Returns the entry so the
// caller can recompute aggregates for the week it belonged to.
func (r *Repository) Delete(ctx context.Context, userID, id string) (*Entry, error) {
	e, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM food_logs WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return nil, fmt.Errorf("failed to delete food log: %w", err)
	}
	return e, nil
}

// Get retrieves a single entry by ID for the given user.
func (r *Repository) Get(ctx context.Context, userID, id string) (*Entry, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, meal_type, food_name, calories, protein, carbs, fats, logged_at
FROM food_logs
WHERE id = ? AND user_id = ?
`, id, userID)
	return scanEntry(row)
}

// ListInRange retrieves all entries for a user with logged_at in [start, end),
// ordered by logged_at ascending.
func (r *Repository) ListInRange(ctx context.Context, userID string, start, end time.Time) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, meal_type, food_name, calories, protein, carbs, fats, logged_at
FROM food_logs
WHERE user_id = ? AND logged_at >= ? AND logged_at < ?
ORDER BY logged_at ASC
`, userID, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query food logs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var mealType, loggedAt string
		if err := rows.Scan(&e.ID, &e.UserID, &mealType, &e.FoodName, &e.Calories, &e.Protein, &e.Carbs, &e.Fats, &loggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan food log: %w", err)
		}
		e.MealType = MealType(mealType)
		ts, err := time.Parse(time.RFC3339, loggedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse logged_at %q: %w", loggedAt, err)
		}
		e.LoggedAt = ts
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate food logs: %w", err)
	}
	return entries, nil
}

// CalorieTotalsByDay returns per-day calorie sums for the user in
// [start, end), ordered by day ascending. Days without entries are absent.
func (r *Repository) CalorieTotalsByDay(ctx context.Context, userID string, start, end time.Time) ([]DayCalories, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT substr(logged_at, 1, 10) AS day, SUM(calories)
FROM food_logs
WHERE user_id = ? AND logged_at >= ? AND logged_at < ?
GROUP BY day
ORDER BY day ASC
`, userID, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query calorie totals: %w", err)
	}
	defer rows.Close()

	var totals []DayCalories
	for rows.Next() {
		var d DayCalories
		if err := rows.Scan(&d.Day, &d.Calories); err != nil {
			return nil, fmt.Errorf("failed to scan calorie total: %w", err)
		}
		totals = append(totals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calorie totals: %w", err)
	}
	return totals, nil
}

// DistinctLogDates returns the distinct calendar days on which the user
// logged at least one meal, most recent first.
func (r *Repository) DistinctLogDates(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT DISTINCT substr(logged_at, 1, 10) AS day
FROM food_logs
WHERE user_id = ?
ORDER BY day DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query log dates: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan log date: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate log dates: %w", err)
	}
	return days, nil
}

func scanEntry(row *sql.Row) (*Entry, error) {
	var e Entry
	var mealType, loggedAt string
	if err := row.Scan(&e.ID, &e.UserID, &mealType, &e.FoodName, &e.Calories, &e.Protein, &e.Carbs, &e.Fats, &loggedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan food log: %w", err)
	}
	e.MealType = MealType(mealType)
	ts, err := time.Parse(time.RFC3339, loggedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse logged_at %q: %w", loggedAt, err)
	}
	e.LoggedAt = ts
	return &e, nil
}
