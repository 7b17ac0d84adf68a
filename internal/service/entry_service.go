package service

import (
	"database/sql"
	"errors"
	"fmt"

	"worktime-tracker/internal/apperr"
	"worktime-tracker/internal/calendar"
	"worktime-tracker/internal/dateutil"
	"worktime-tracker/internal/models"
	"worktime-tracker/internal/repository"
)

// EntryService owns the work-entry lifecycle. Writes are accepted only
// for dates inside the caller's current editable window, and the entry
// upsert plus location reconciliation share one transaction so a
// failure applies nothing.
type EntryService struct {
	db            *sql.DB
	entries       *repository.WorkEntryRepository
	locations     *LocationService
	window        *calendar.WindowResolver
	maxDailyHours float64
}

func NewEntryService(
	db *sql.DB,
	entries *repository.WorkEntryRepository,
	locations *LocationService,
	window *calendar.WindowResolver,
	maxDailyHours float64,
) *EntryService {
	return &EntryService{
		db:            db,
		entries:       entries,
		locations:     locations,
		window:        window,
		maxDailyHours: maxDailyHours,
	}
}

func (s *EntryService) GetEditableWindow(userID int64) (*models.EditableWindow, error) {
	win, err := s.window.Resolve(userID)
	if err != nil {
		return nil, apperr.WrapStorage("resolve editable window", err).WithUser(userID)
	}
	return win, nil
}

// SubmitEntry creates or replaces the entry for (user, date) and
// reconciles the date's location flag in the same transaction.
func (s *EntryService) SubmitEntry(req *models.SubmitEntryRequest) (*models.WorkEntry, error) {
	const op = "submit entry"

	date, err := dateutil.ParseDate(req.WorkDate)
	if err != nil {
		return nil, apperr.NewValidation(op, err.Error()).WithUser(req.UserID)
	}

	if err := s.validateHours(op, req.Hours); err != nil {
		return nil, err.WithUser(req.UserID).WithDate(req.WorkDate)
	}

	win, err := s.window.Resolve(req.UserID)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(req.UserID)
	}
	if !win.Contains(req.WorkDate) {
		return nil, apperr.NewValidation(op, "date outside editable window").
			WithUser(req.UserID).WithDate(req.WorkDate)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(req.UserID).WithDate(req.WorkDate)
	}
	defer tx.Rollback()

	entry, err := s.entries.UpsertTx(tx, req.UserID, req.WorkDate, req.Hours)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(req.UserID).WithDate(req.WorkDate)
	}

	if _, err := s.locations.upsertTx(tx, req.UserID, date, req.IsOnsite); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(req.UserID).WithDate(req.WorkDate)
	}

	return entry, nil
}

// UpdateEntry mutates an existing entry after checking ownership and
// that its date is still editable. The location flag is touched only
// when the caller supplies one.
func (s *EntryService) UpdateEntry(entryID, userID int64, req *models.UpdateEntryRequest) (*models.WorkEntry, error) {
	const op = "update entry"

	entry, err := s.findOwnedEntry(op, entryID, userID)
	if err != nil {
		return nil, err
	}

	win, err := s.window.Resolve(userID)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}
	if !win.Contains(entry.WorkDate) {
		return nil, apperr.NewValidation(op, "entry date is no longer editable").
			WithUser(userID).WithDate(entry.WorkDate)
	}

	hours := entry.Hours
	if req.Hours != nil {
		if err := s.validateHours(op, *req.Hours); err != nil {
			return nil, err.WithUser(userID).WithDate(entry.WorkDate)
		}
		hours = *req.Hours
	}

	date, err := dateutil.ParseDate(entry.WorkDate)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID).WithDate(entry.WorkDate)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID).WithDate(entry.WorkDate)
	}
	defer tx.Rollback()

	updated, err := s.entries.UpsertTx(tx, userID, entry.WorkDate, hours)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID).WithDate(entry.WorkDate)
	}

	if req.IsOnsite != nil {
		if _, err := s.locations.upsertTx(tx, userID, date, req.IsOnsite); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID).WithDate(entry.WorkDate)
	}

	return updated, nil
}

// DeleteEntry removes an owned entry whose date is still editable.
// Reports whether a row was removed.
func (s *EntryService) DeleteEntry(entryID, userID int64) (bool, error) {
	const op = "delete entry"

	entry, err := s.findOwnedEntry(op, entryID, userID)
	if err != nil {
		return false, err
	}

	win, err := s.window.Resolve(userID)
	if err != nil {
		return false, apperr.WrapStorage(op, err).WithUser(userID)
	}
	if !win.Contains(entry.WorkDate) {
		return false, apperr.NewValidation(op, "entry date is no longer editable").
			WithUser(userID).WithDate(entry.WorkDate)
	}

	removed, err := s.entries.Delete(entryID)
	if err != nil {
		return false, apperr.WrapStorage(op, err).WithUser(userID).WithDate(entry.WorkDate)
	}

	return removed, nil
}

// ListForRange returns a user's entries for a date range.
func (s *EntryService) ListForRange(userID int64, startDate, endDate string) ([]*models.WorkEntry, error) {
	const op = "list entries"

	if _, err := dateutil.ParseDate(startDate); err != nil {
		return nil, apperr.NewValidation(op, err.Error()).WithUser(userID)
	}
	if _, err := dateutil.ParseDate(endDate); err != nil {
		return nil, apperr.NewValidation(op, err.Error()).WithUser(userID)
	}

	entries, err := s.entries.FindByUserAndDateRange(userID, startDate, endDate)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}

	return entries, nil
}

// findOwnedEntry loads an entry and verifies ownership. A foreign
// entry reports not-found, indistinguishable from a missing one.
func (s *EntryService) findOwnedEntry(op string, entryID, userID int64) (*models.WorkEntry, error) {
	entry, err := s.entries.FindByID(entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NewNotFound(op, fmt.Sprintf("entry %d does not exist", entryID)).WithUser(userID)
		}
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}

	if entry.UserID != userID {
		return nil, apperr.NewNotFound(op, fmt.Sprintf("entry %d does not exist", entryID)).WithUser(userID)
	}

	return entry, nil
}

func (s *EntryService) validateHours(op string, hours float64) *apperr.Error {
	if hours <= 0 {
		return apperr.NewValidation(op, "hours must be positive")
	}
	if hours > s.maxDailyHours {
		return apperr.NewValidation(op, fmt.Sprintf("hours exceed daily maximum of %g", s.maxDailyHours))
	}
	return nil
}
