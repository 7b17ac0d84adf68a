package repository

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"worktime-tracker/internal/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWorkEntryUpsertConvergesToOneRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkEntryRepository(db.DB)

	first, err := repo.Upsert(1, "2025-05-14", 8)
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.Upsert(1, "2025-05-14", 6)
	if err != nil {
		t.Fatal(err)
	}

	if first.ID != second.ID {
		t.Errorf("upsert created a new row: id %d then %d", first.ID, second.ID)
	}
	if second.Hours != 6 {
		t.Errorf("Hours = %v, want 6", second.Hours)
	}

	var n int
	if err := db.QueryRow(
		"SELECT COUNT(1) FROM work_entries WHERE user_id = 1 AND work_date = '2025-05-14'",
	).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("row count = %d, want 1", n)
	}
}

func TestWorkEntryUpsertIsScopedByUserAndDate(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkEntryRepository(db.DB)

	a, err := repo.Upsert(1, "2025-05-14", 8)
	if err != nil {
		t.Fatal(err)
	}
	b, err := repo.Upsert(2, "2025-05-14", 8)
	if err != nil {
		t.Fatal(err)
	}
	c, err := repo.Upsert(1, "2025-05-15", 8)
	if err != nil {
		t.Fatal(err)
	}

	if a.ID == b.ID || a.ID == c.ID {
		t.Errorf("distinct user/date pairs must map to distinct rows: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

func TestWorkEntryFindByUserAndDateMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkEntryRepository(db.DB)

	entry, err := repo.FindByUserAndDate(1, "2025-05-14")
	if err != nil {
		t.Fatal(err)
	}
	if entry != nil {
		t.Errorf("expected nil for missing entry, got %+v", entry)
	}
}

func TestWorkEntrySumHoursForRange(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkEntryRepository(db.DB)

	seed := map[string]float64{
		"2025-05-12": 8,
		"2025-05-13": 6.5,
		"2025-06-02": 4,
	}
	for date, hours := range seed {
		if _, err := repo.Upsert(1, date, hours); err != nil {
			t.Fatal(err)
		}
	}

	sum, err := repo.SumHoursForRange(1, "2025-05-01", "2025-05-31")
	if err != nil {
		t.Fatal(err)
	}
	if sum != 14.5 {
		t.Errorf("sum = %v, want 14.5", sum)
	}

	empty, err := repo.SumHoursForRange(1, "2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatal(err)
	}
	if empty != 0 {
		t.Errorf("empty range sum = %v, want 0", empty)
	}
}

func TestWorkEntryMinWorkDate(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkEntryRepository(db.DB)

	date, err := repo.MinWorkDate(1)
	if err != nil {
		t.Fatal(err)
	}
	if date != "" {
		t.Errorf("MinWorkDate without history = %q, want empty", date)
	}

	for _, d := range []string{"2025-05-14", "2025-05-06", "2025-05-12"} {
		if _, err := repo.Upsert(1, d, 8); err != nil {
			t.Fatal(err)
		}
	}

	date, err = repo.MinWorkDate(1)
	if err != nil {
		t.Fatal(err)
	}
	if date != "2025-05-06" {
		t.Errorf("MinWorkDate = %q, want 2025-05-06", date)
	}
}

func TestWorkEntryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkEntryRepository(db.DB)

	entry, err := repo.Upsert(1, "2025-05-14", 8)
	if err != nil {
		t.Fatal(err)
	}

	removed, err := repo.Delete(entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Error("expected delete to remove the entry")
	}

	removed, err = repo.Delete(entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Error("second delete should report nothing removed")
	}
}
