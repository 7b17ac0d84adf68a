// Package calendar answers "what kind of day is this, for this user"
// and derives the editable window of recent dates. It is the single
// source of truth for weekend/holiday classification; every other
// component re-derives day kinds through it rather than keeping its
// own notion of a holiday.
package calendar

import (
	"fmt"
	"time"

	"worktime-tracker/internal/dateutil"
	"worktime-tracker/internal/models"
)

// HolidaySource is the holiday data the classifier reads. Satisfied by
// repository.HolidayRepository.
type HolidaySource interface {
	PublicHolidaysForMonth(year int, month time.Month) ([]*models.PublicHoliday, error)
	IsPersonalHoliday(userID int64, date string) (bool, error)
}

type Classifier struct {
	holidays HolidaySource
}

func NewClassifier(holidays HolidaySource) *Classifier {
	return &Classifier{holidays: holidays}
}

// Classify derives the classification of one date for one user. Lookup
// failures propagate; a date is never silently treated as a working
// day when the holiday source is unavailable.
func (c *Classifier) Classify(userID int64, date time.Time) (*models.DateClassification, error) {
	formatted := dateutil.FormatDate(date)

	isPublic, err := c.isPublicHoliday(date)
	if err != nil {
		return nil, fmt.Errorf("holiday lookup failed for %s: %w", formatted, err)
	}

	isPersonal, err := c.holidays.IsPersonalHoliday(userID, formatted)
	if err != nil {
		return nil, fmt.Errorf("holiday lookup failed for %s: %w", formatted, err)
	}

	isWeekend := dateutil.IsWeekend(date)

	return &models.DateClassification{
		Date:              formatted,
		Weekday:           date.Weekday(),
		IsWeekend:         isWeekend,
		IsPublicHoliday:   isPublic,
		IsPersonalHoliday: isPersonal,
		IsWorkingDay:      !isWeekend && !isPublic && !isPersonal,
	}, nil
}

func (c *Classifier) isPublicHoliday(date time.Time) (bool, error) {
	holidays, err := c.holidays.PublicHolidaysForMonth(date.Year(), date.Month())
	if err != nil {
		return false, err
	}

	formatted := dateutil.FormatDate(date)
	for _, h := range holidays {
		if h.HolidayDate == formatted {
			return true, nil
		}
	}
	return false, nil
}
