package service

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"worktime-tracker/internal/calendar"
	"worktime-tracker/internal/database"
	"worktime-tracker/internal/repository"
)

// testEnv wires the full stack against a throwaway sqlite file with
// the clock pinned to Wednesday 2025-05-14.
type testEnv struct {
	db        *database.DB
	entries   *repository.WorkEntryRepository
	locations *repository.LocationEntryRepository
	holidays  *repository.HolidayRepository

	classifier *calendar.Classifier
	window     *calendar.WindowResolver

	entrySvc    *EntryService
	locationSvc *LocationService
	statsSvc    *StatsService
	missingSvc  *MissingDayService
	holidaySvc  *HolidayService
}

const testToday = "2025-05-14" // Wednesday

func testClock() time.Time {
	t, _ := time.Parse("2006-01-02", testToday)
	return t
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		db:        db,
		entries:   repository.NewWorkEntryRepository(db.DB),
		locations: repository.NewLocationEntryRepository(db.DB),
		holidays:  repository.NewHolidayRepository(db.DB),
	}

	env.classifier = calendar.NewClassifier(env.holidays)
	env.window = calendar.NewWindowResolver(env.classifier, 3, 30)
	env.window.Now = testClock

	env.locationSvc = NewLocationService(env.locations, env.classifier)
	env.locationSvc.Now = testClock

	env.entrySvc = NewEntryService(db.DB, env.entries, env.locationSvc, env.window, 24)

	env.statsSvc = NewStatsService(env.entries, env.holidays, 8)
	env.statsSvc.Now = testClock

	env.missingSvc = NewMissingDayService(env.entries, env.classifier, env.window)
	env.missingSvc.Now = testClock

	env.holidaySvc = NewHolidayService(env.holidays)
	env.holidaySvc.Now = testClock

	return env
}

func (e *testEnv) countEntries(t *testing.T, userID int64, date string) int {
	t.Helper()
	var n int
	err := e.db.QueryRow(
		"SELECT COUNT(1) FROM work_entries WHERE user_id = ? AND work_date = ?",
		userID, date,
	).Scan(&n)
	if err != nil {
		t.Fatalf("failed to count entries: %v", err)
	}
	return n
}
