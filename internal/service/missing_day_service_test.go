package service

import (
	"testing"
	"time"
)

func TestFindMissingDaysNoEntries(t *testing.T) {
	env := newTestEnv(t)

	missing, err := env.missingSvc.FindMissingDays(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 0 {
		t.Errorf("user without history should have no missing days, got %v", missing)
	}
}

func TestFindMissingDaysBeforeTenureStart(t *testing.T) {
	env := newTestEnv(t)

	// A scan dated before the user's first entry predates their
	// tenure and reports nothing.
	mustUpsertHours(t, env, 1, "2024-03-01", 8)

	asOf := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	missing, err := env.missingSvc.FindMissingDaysAsOf(1, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing days before tenure, got %v", missing)
	}
}

func TestFindMissingDaysFirstEntryInsideWindow(t *testing.T) {
	env := newTestEnv(t)

	// History starts inside the editable window; there is nothing
	// before it to report.
	mustUpsertHours(t, env, 1, "2025-05-12", 8)

	missing, err := env.missingSvc.FindMissingDays(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing days, got %v", missing)
	}
}

func TestFindMissingDaysReportsGaps(t *testing.T) {
	env := newTestEnv(t)

	// Clock is Wednesday 2025-05-14, so the window covers the 12th
	// through the 14th. History begins Tuesday the 6th.
	mustUpsertHours(t, env, 1, "2025-05-06", 8)
	mustUpsertHours(t, env, 1, "2025-05-12", 8)

	missing, err := env.missingSvc.FindMissingDays(1)
	if err != nil {
		t.Fatal(err)
	}

	want := []struct{ date, weekday string }{
		{"2025-05-07", "Wednesday"},
		{"2025-05-08", "Thursday"},
		{"2025-05-09", "Friday"},
	}
	if len(missing) != len(want) {
		t.Fatalf("missing days = %v, want %d entries", missing, len(want))
	}
	for i, w := range want {
		if missing[i].Date != w.date || missing[i].Weekday != w.weekday {
			t.Errorf("missing[%d] = %+v, want %s (%s)", i, missing[i], w.date, w.weekday)
		}
	}
}

func TestFindMissingDaysSkipsHolidays(t *testing.T) {
	env := newTestEnv(t)

	mustUpsertHours(t, env, 1, "2025-05-06", 8)

	if _, err := env.holidays.CreatePersonalHoliday(1, "2025-05-08"); err != nil {
		t.Fatal(err)
	}
	if _, err := env.holidays.CreatePublicHoliday("Spring Day", "2025-05-09"); err != nil {
		t.Fatal(err)
	}

	missing, err := env.missingSvc.FindMissingDays(1)
	if err != nil {
		t.Fatal(err)
	}

	if len(missing) != 1 || missing[0].Date != "2025-05-07" {
		t.Errorf("missing days = %v, want only 2025-05-07", missing)
	}
}

func TestFindMissingDaysScopedToUser(t *testing.T) {
	env := newTestEnv(t)

	// Another user's long history must not create gaps for user 1.
	mustUpsertHours(t, env, 2, "2025-04-01", 8)
	mustUpsertHours(t, env, 1, "2025-05-12", 8)

	missing, err := env.missingSvc.FindMissingDays(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing days for user 1, got %v", missing)
	}
}
