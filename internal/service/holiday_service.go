package service

import (
	"errors"
	"time"

	"worktime-tracker/internal/apperr"
	"worktime-tracker/internal/dateutil"
	"worktime-tracker/internal/models"
	"worktime-tracker/internal/repository"
)

// HolidayService manages personal and public holiday records.
type HolidayService struct {
	holidays *repository.HolidayRepository

	Now func() time.Time
}

func NewHolidayService(holidays *repository.HolidayRepository) *HolidayService {
	return &HolidayService{
		holidays: holidays,
		Now:      time.Now,
	}
}

// RequestPersonalHoliday records a day off. Idempotent: repeating a
// request returns the existing record.
func (s *HolidayService) RequestPersonalHoliday(req *models.CreatePersonalHolidayRequest) (*models.PersonalHoliday, error) {
	const op = "request personal holiday"

	if _, err := dateutil.ParseDate(req.HolidayDate); err != nil {
		return nil, apperr.NewValidation(op, err.Error()).WithUser(req.UserID)
	}

	holiday, err := s.holidays.CreatePersonalHoliday(req.UserID, req.HolidayDate)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(req.UserID).WithDate(req.HolidayDate)
	}

	return holiday, nil
}

// CancelPersonalHoliday removes a day off. Reports whether a record
// existed.
func (s *HolidayService) CancelPersonalHoliday(userID int64, holidayDate string) (bool, error) {
	const op = "cancel personal holiday"

	if _, err := dateutil.ParseDate(holidayDate); err != nil {
		return false, apperr.NewValidation(op, err.Error()).WithUser(userID)
	}

	removed, err := s.holidays.DeletePersonalHoliday(userID, holidayDate)
	if err != nil {
		return false, apperr.WrapStorage(op, err).WithUser(userID).WithDate(holidayDate)
	}

	return removed, nil
}

// UpcomingPersonalHolidays lists holidays from today onward, oldest
// first.
func (s *HolidayService) UpcomingPersonalHolidays(userID int64) ([]*models.PersonalHoliday, error) {
	today := dateutil.FormatDate(dateutil.StartOfDay(s.Now()))
	holidays, err := s.holidays.PersonalHolidaysFrom(userID, today)
	if err != nil {
		return nil, apperr.WrapStorage("list upcoming holidays", err).WithUser(userID)
	}
	return holidays, nil
}

// PastPersonalHolidays lists holidays before today, most recent first.
func (s *HolidayService) PastPersonalHolidays(userID int64) ([]*models.PersonalHoliday, error) {
	today := dateutil.FormatDate(dateutil.StartOfDay(s.Now()))
	holidays, err := s.holidays.PersonalHolidaysBefore(userID, today)
	if err != nil {
		return nil, apperr.WrapStorage("list past holidays", err).WithUser(userID)
	}
	return holidays, nil
}

// CreatePublicHoliday adds an organization-wide holiday. The date is
// globally unique; a duplicate reports a conflict.
func (s *HolidayService) CreatePublicHoliday(req *models.CreatePublicHolidayRequest) (*models.PublicHoliday, error) {
	const op = "create public holiday"

	if req.Name == "" {
		return nil, apperr.NewValidation(op, "name is required")
	}
	if _, err := dateutil.ParseDate(req.HolidayDate); err != nil {
		return nil, apperr.NewValidation(op, err.Error())
	}

	holiday, err := s.holidays.CreatePublicHoliday(req.Name, req.HolidayDate)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateHolidayDate) {
			return nil, apperr.NewConflict(op, "a public holiday already exists on that date").
				WithDate(req.HolidayDate)
		}
		return nil, apperr.WrapStorage(op, err).WithDate(req.HolidayDate)
	}

	return holiday, nil
}

// DeletePublicHoliday removes an organization-wide holiday by id.
func (s *HolidayService) DeletePublicHoliday(id int64) (bool, error) {
	removed, err := s.holidays.DeletePublicHoliday(id)
	if err != nil {
		return false, apperr.WrapStorage("delete public holiday", err)
	}
	return removed, nil
}

// PublicHolidaysForYear lists the year's public holidays in date
// order.
func (s *HolidayService) PublicHolidaysForYear(year int) ([]*models.PublicHoliday, error) {
	holidays, err := s.holidays.PublicHolidaysForYear(year)
	if err != nil {
		return nil, apperr.WrapStorage("list public holidays", err)
	}
	return holidays, nil
}
