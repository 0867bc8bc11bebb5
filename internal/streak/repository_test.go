package streak_test

import (
	"context"
	"path/filepath"
	"testing"

	"nutritrack/internal/database"
	"nutritrack/internal/streak"
)

func TestRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	repo := streak.NewRepository(db.SQL)

	t.Run("MissingRowYieldsZeroRecord", func(t *testing.T) {
		rec, err := repo.Get(ctx, "user-1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if rec.CurrentStreak != 0 || rec.LongestStreak != 0 || rec.LastLogDate != nil {
			t.Errorf("Expected zero record, got %+v", rec)
		}
	})

	t.Run("InsertThenOverwrite", func(t *testing.T) {
		day := "2024-01-05"
		if err := repo.Upsert(ctx, &streak.Record{UserID: "user-1", CurrentStreak: 2, LongestStreak: 5, LastLogDate: &day}); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		if err := repo.Upsert(ctx, &streak.Record{UserID: "user-1", CurrentStreak: 3, LongestStreak: 5, LastLogDate: &day}); err != nil {
			t.Fatalf("Second upsert failed: %v", err)
		}

		rec, err := repo.Get(ctx, "user-1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if rec.CurrentStreak != 3 || rec.LongestStreak != 5 {
			t.Errorf("Expected streaks 3/5 after overwrite, got %d/%d", rec.CurrentStreak, rec.LongestStreak)
		}
		if rec.LastLogDate == nil || *rec.LastLogDate != day {
			t.Errorf("Expected last log date %s, got %v", day, rec.LastLogDate)
		}
	})
}
