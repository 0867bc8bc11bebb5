package progress_test

import (
	"context"
	"path/filepath"
	"testing"

	"nutritrack/internal/database"
	"nutritrack/internal/progress"
)

func TestRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := progress.NewRepository(db.SQL)

	t.Run("MissingRowYieldsZeroRecord", func(t *testing.T) {
		rec, err := repo.Get(ctx, "user-1", "2024-01-08")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if rec.DaysLogged != 0 || rec.TotalCalories != 0 {
			t.Errorf("Expected zero record, got %+v", rec)
		}
	})

	t.Run("InsertThenOverwrite", func(t *testing.T) {
		first := &progress.Record{
			UserID: "user-1", WeekStart: "2024-01-08",
			DaysLogged: 3, TotalCalories: 6000, TotalProtein: 300,
			TotalCarbs: 500, TotalFats: 200, TotalWaterMl: 9000,
		}
		if err := repo.Upsert(ctx, first); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		second := &progress.Record{
			UserID: "user-1", WeekStart: "2024-01-08",
			DaysLogged: 4, TotalCalories: 8000, TotalProtein: 400,
			TotalCarbs: 650, TotalFats: 260, TotalWaterMl: 12000,
		}
		if err := repo.Upsert(ctx, second); err != nil {
			t.Fatalf("Second upsert failed: %v", err)
		}

		rec, err := repo.Get(ctx, "user-1", "2024-01-08")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if rec.DaysLogged != 4 || rec.TotalCalories != 8000 || rec.TotalWaterMl != 12000 {
			t.Errorf("Expected overwritten totals, got %+v", rec)
		}
	})

	t.Run("WeeksAreIndependent", func(t *testing.T) {
		other := &progress.Record{UserID: "user-1", WeekStart: "2024-01-15", DaysLogged: 1, TotalCalories: 2000}
		if err := repo.Upsert(ctx, other); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		rec, err := repo.Get(ctx, "user-1", "2024-01-08")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if rec.TotalCalories != 8000 {
			t.Errorf("Expected week 2024-01-08 untouched, got %+v", rec)
		}
	})
}
