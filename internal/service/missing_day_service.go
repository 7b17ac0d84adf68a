package service

import (
	"time"

	"worktime-tracker/internal/apperr"
	"worktime-tracker/internal/calendar"
	"worktime-tracker/internal/dateutil"
	"worktime-tracker/internal/models"
	"worktime-tracker/internal/repository"
)

// MissingDayService scans a user's history for working days with no
// logged entry: strictly before the editable window's oldest date,
// on or after the user's first-ever entry. Classification is
// re-derived through the shared classifier so the scan can never
// disagree with the rest of the system about what a holiday is.
type MissingDayService struct {
	entries    *repository.WorkEntryRepository
	classifier *calendar.Classifier
	window     *calendar.WindowResolver

	Now func() time.Time
}

func NewMissingDayService(
	entries *repository.WorkEntryRepository,
	classifier *calendar.Classifier,
	window *calendar.WindowResolver,
) *MissingDayService {
	return &MissingDayService{
		entries:    entries,
		classifier: classifier,
		window:     window,
		Now:        time.Now,
	}
}

func (s *MissingDayService) FindMissingDays(userID int64) ([]models.MissingDay, error) {
	return s.FindMissingDaysAsOf(userID, s.Now())
}

// FindMissingDaysAsOf runs the scan against a fixed moment. A user
// with no history yields an empty result: nothing can be missing
// before their tenure began. Output is ordered oldest first.
func (s *MissingDayService) FindMissingDaysAsOf(userID int64, asOf time.Time) ([]models.MissingDay, error) {
	const op = "find missing days"

	firstDate, err := s.entries.MinWorkDate(userID)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}
	if firstDate == "" {
		return nil, nil
	}

	win, err := s.window.ResolveAt(userID, asOf)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}

	oldest, err := dateutil.ParseDate(win.OldestDate())
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}
	start, err := dateutil.ParseDate(firstDate)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}

	// The scan ends the day before the window begins; today is inside
	// the window and therefore never scanned.
	end := oldest.AddDate(0, 0, -1)
	if start.After(end) {
		return nil, nil
	}

	entries, err := s.entries.FindByUserAndDateRange(userID, firstDate, dateutil.FormatDate(end))
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}
	logged := make(map[string]bool, len(entries))
	for _, e := range entries {
		logged[e.WorkDate] = true
	}

	var missing []models.MissingDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		class, err := s.classifier.Classify(userID, d)
		if err != nil {
			return nil, apperr.WrapStorage(op, err).WithUser(userID).WithDate(dateutil.FormatDate(d))
		}
		if !class.IsWorkingDay {
			continue
		}
		if logged[class.Date] {
			continue
		}
		missing = append(missing, models.MissingDay{
			Date:    class.Date,
			Weekday: class.Weekday.String(),
		})
	}

	return missing, nil
}
