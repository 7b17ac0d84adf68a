package service

import (
	"testing"

	"worktime-tracker/internal/apperr"
	"worktime-tracker/internal/models"
)

func TestSubmitThenResubmitConvergesToOneRow(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.entrySvc.SubmitEntry(&models.SubmitEntryRequest{
		UserID: 1, WorkDate: testToday, Hours: 8,
	})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second, err := env.entrySvc.SubmitEntry(&models.SubmitEntryRequest{
		UserID: 1, WorkDate: testToday, Hours: 6,
	})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("resubmission created a new row: id %d then %d", first.ID, second.ID)
	}
	if second.Hours != 6 {
		t.Errorf("hours = %v, want 6", second.Hours)
	}
	if got := env.countEntries(t, 1, testToday); got != 1 {
		t.Errorf("row count = %d, want 1", got)
	}
}

func TestSubmitRejectsDateOutsideWindow(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.entrySvc.SubmitEntry(&models.SubmitEntryRequest{
		UserID: 1, WorkDate: "2025-05-01", Hours: 8,
	})
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := env.countEntries(t, 1, "2025-05-01"); got != 0 {
		t.Errorf("rejected submit still wrote %d rows", got)
	}
}

func TestSubmitRejectsBadHours(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		hours float64
	}{
		{"zero", 0},
		{"negative", -4},
		{"over daily max", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.entrySvc.SubmitEntry(&models.SubmitEntryRequest{
				UserID: 1, WorkDate: testToday, Hours: tt.hours,
			})
			if !apperr.IsKind(err, apperr.Validation) {
				t.Errorf("hours=%v: expected validation error, got %v", tt.hours, err)
			}
		})
	}
}

func TestSubmitRejectsMalformedDate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.entrySvc.SubmitEntry(&models.SubmitEntryRequest{
		UserID: 1, WorkDate: "14.05.2025", Hours: 8,
	})
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitReconcilesLocation(t *testing.T) {
	env := newTestEnv(t)

	onsite := true
	_, err := env.entrySvc.SubmitEntry(&models.SubmitEntryRequest{
		UserID: 1, WorkDate: testToday, Hours: 8, IsOnsite: &onsite,
	})
	if err != nil {
		t.Fatal(err)
	}

	loc, err := env.locations.FindByUserAndDate(1, testToday)
	if err != nil {
		t.Fatal(err)
	}
	if loc == nil || loc.IsOnsite == nil || !*loc.IsOnsite {
		t.Errorf("expected onsite location stored alongside entry, got %+v", loc)
	}
}

func TestUpdateEntry(t *testing.T) {
	env := newTestEnv(t)

	entry, err := env.entrySvc.SubmitEntry(&models.SubmitEntryRequest{
		UserID: 1, WorkDate: testToday, Hours: 8,
	})
	if err != nil {
		t.Fatal(err)
	}

	hours := 7.5
	updated, err := env.entrySvc.UpdateEntry(entry.ID, 1, &models.UpdateEntryRequest{Hours: &hours})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Hours != 7.5 {
		t.Errorf("hours = %v, want 7.5", updated.Hours)
	}
	if got := env.countEntries(t, 1, testToday); got != 1 {
		t.Errorf("row count = %d, want 1", got)
	}
}

func TestUpdateEntryForeignOwnerReportsNotFound(t *testing.T) {
	env := newTestEnv(t)

	entry, err := env.entrySvc.SubmitEntry(&models.SubmitEntryRequest{
		UserID: 1, WorkDate: testToday, Hours: 8,
	})
	if err != nil {
		t.Fatal(err)
	}

	hours := 4.0
	_, err = env.entrySvc.UpdateEntry(entry.ID, 2, &models.UpdateEntryRequest{Hours: &hours})
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected not-found for foreign entry, got %v", err)
	}
}

func TestUpdateMissingEntryReportsNotFound(t *testing.T) {
	env := newTestEnv(t)

	hours := 4.0
	_, err := env.entrySvc.UpdateEntry(9999, 1, &models.UpdateEntryRequest{Hours: &hours})
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	env := newTestEnv(t)

	entry, err := env.entrySvc.SubmitEntry(&models.SubmitEntryRequest{
		UserID: 1, WorkDate: testToday, Hours: 8,
	})
	if err != nil {
		t.Fatal(err)
	}

	removed, err := env.entrySvc.DeleteEntry(entry.ID, 1)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Error("expected delete to report a removed row")
	}
	if got := env.countEntries(t, 1, testToday); got != 0 {
		t.Errorf("row count = %d, want 0", got)
	}

	// The row is gone, so a repeat delete is a not-found.
	if _, err := env.entrySvc.DeleteEntry(entry.ID, 1); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("expected not-found on second delete, got %v", err)
	}
}

func TestGetEditableWindowIncludesToday(t *testing.T) {
	env := newTestEnv(t)

	win, err := env.entrySvc.GetEditableWindow(1)
	if err != nil {
		t.Fatal(err)
	}
	if win.Today != testToday || !win.Contains(testToday) {
		t.Errorf("window does not include today: %+v", win)
	}
	if got := win.WorkingDayCount(); got != 3 {
		t.Errorf("working day count = %d, want 3", got)
	}
}
