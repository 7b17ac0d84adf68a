package service

import (
	"database/sql"
	"time"

	"worktime-tracker/internal/apperr"
	"worktime-tracker/internal/calendar"
	"worktime-tracker/internal/dateutil"
	"worktime-tracker/internal/models"
	"worktime-tracker/internal/repository"
)

// LocationService resolves and stores the onsite/remote flag per
// (user, date). Every write path goes through ResolveFlag, so the
// non-working-day rule cannot be bypassed by any caller.
type LocationService struct {
	locations  *repository.LocationEntryRepository
	classifier *calendar.Classifier

	Now func() time.Time
}

func NewLocationService(locations *repository.LocationEntryRepository, classifier *calendar.Classifier) *LocationService {
	return &LocationService{
		locations:  locations,
		classifier: classifier,
		Now:        time.Now,
	}
}

// ResolveFlag applies the location policy: non-working days are
// always remote; otherwise the requested flag wins, then any
// previously stored flag, then the onsite default.
func (s *LocationService) ResolveFlag(userID int64, date time.Time, requested *bool) (bool, error) {
	const op = "resolve location"

	class, err := s.classifier.Classify(userID, date)
	if err != nil {
		return false, apperr.WrapStorage(op, err).WithUser(userID).WithDate(dateutil.FormatDate(date))
	}

	if !class.IsWorkingDay {
		return false, nil
	}

	if requested != nil {
		return *requested, nil
	}

	existing, err := s.locations.FindByUserAndDate(userID, dateutil.FormatDate(date))
	if err != nil {
		return false, apperr.WrapStorage(op, err).WithUser(userID).WithDate(dateutil.FormatDate(date))
	}
	if existing != nil && existing.IsOnsite != nil {
		return *existing.IsOnsite, nil
	}

	return true, nil
}

// Upsert stores the reconciled flag for a date within the standalone
// planning window (previous, current or next calendar month).
func (s *LocationService) Upsert(req *models.UpsertLocationRequest) (*models.LocationEntry, error) {
	const op = "upsert location"

	date, err := dateutil.ParseDate(req.WorkDate)
	if err != nil {
		return nil, apperr.NewValidation(op, err.Error()).WithUser(req.UserID)
	}

	if !s.inPlanningWindow(date) {
		return nil, apperr.NewValidation(op, "date must be in previous, current or next month").
			WithUser(req.UserID).WithDate(req.WorkDate)
	}

	resolved, err := s.ResolveFlag(req.UserID, date, req.IsOnsite)
	if err != nil {
		return nil, err
	}

	entry, err := s.locations.Upsert(req.UserID, req.WorkDate, &resolved)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(req.UserID).WithDate(req.WorkDate)
	}

	return entry, nil
}

// upsertTx reconciles and writes the flag inside a caller-owned
// transaction; used by EntryService so entry and location writes
// commit together.
func (s *LocationService) upsertTx(tx *sql.Tx, userID int64, date time.Time, requested *bool) (*models.LocationEntry, error) {
	resolved, err := s.ResolveFlag(userID, date, requested)
	if err != nil {
		return nil, err
	}

	formatted := dateutil.FormatDate(date)
	entry, err := s.locations.UpsertTx(tx, userID, formatted, &resolved)
	if err != nil {
		return nil, apperr.WrapStorage("upsert location", err).WithUser(userID).WithDate(formatted)
	}

	return entry, nil
}

// Clear removes the planned flag for a date. Idempotent.
func (s *LocationService) Clear(userID int64, workDate string) (bool, error) {
	const op = "clear location"

	date, err := dateutil.ParseDate(workDate)
	if err != nil {
		return false, apperr.NewValidation(op, err.Error()).WithUser(userID)
	}

	if !s.inPlanningWindow(date) {
		return false, apperr.NewValidation(op, "date must be in previous, current or next month").
			WithUser(userID).WithDate(workDate)
	}

	removed, err := s.locations.DeleteByUserAndDate(userID, workDate)
	if err != nil {
		return false, apperr.WrapStorage(op, err).WithUser(userID).WithDate(workDate)
	}

	return removed, nil
}

// ListForRange returns the stored flags for a user and range.
func (s *LocationService) ListForRange(userID int64, startDate, endDate string) ([]*models.LocationEntry, error) {
	const op = "list locations"

	if _, err := dateutil.ParseDate(startDate); err != nil {
		return nil, apperr.NewValidation(op, err.Error()).WithUser(userID)
	}
	if _, err := dateutil.ParseDate(endDate); err != nil {
		return nil, apperr.NewValidation(op, err.Error()).WithUser(userID)
	}

	entries, err := s.locations.FindByUserAndDateRange(userID, startDate, endDate)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}

	return entries, nil
}

// inPlanningWindow bounds standalone location edits to the previous,
// current and next calendar month relative to the clock.
func (s *LocationService) inPlanningWindow(date time.Time) bool {
	now := s.Now()
	start := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month()+2, 0, 0, 0, 0, 0, time.UTC)

	d := dateutil.StartOfDay(date)
	return !d.Before(start) && !d.After(end)
}
