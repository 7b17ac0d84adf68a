package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"worktime-tracker/internal/dateutil"
	"worktime-tracker/internal/models"
)

// ErrDuplicateHolidayDate is returned when a public holiday already
// exists for the requested date.
var ErrDuplicateHolidayDate = fmt.Errorf("public holiday date already exists")

type HolidayRepository struct {
	db *sql.DB
}

func NewHolidayRepository(db *sql.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

func (r *HolidayRepository) PublicHolidaysForMonth(year int, month time.Month) ([]*models.PublicHoliday, error) {
	start, end := dateutil.MonthRange(year, month)
	return r.publicHolidaysBetween(start, end)
}

func (r *HolidayRepository) PublicHolidaysForYear(year int) ([]*models.PublicHoliday, error) {
	return r.publicHolidaysBetween(
		fmt.Sprintf("%04d-01-01", year),
		fmt.Sprintf("%04d-12-31", year),
	)
}

func (r *HolidayRepository) publicHolidaysBetween(startDate, endDate string) ([]*models.PublicHoliday, error) {
	query := `
		SELECT id, name, holiday_date, created_at
		FROM public_holidays
		WHERE holiday_date BETWEEN ? AND ?
		ORDER BY holiday_date
	`

	rows, err := r.db.Query(query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query public holidays: %w", err)
	}
	defer rows.Close()

	var holidays []*models.PublicHoliday
	for rows.Next() {
		var h models.PublicHoliday
		if err := rows.Scan(&h.ID, &h.Name, &h.HolidayDate, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan public holiday: %w", err)
		}
		holidays = append(holidays, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return holidays, nil
}

func (r *HolidayRepository) CreatePublicHoliday(name, holidayDate string) (*models.PublicHoliday, error) {
	query := `
		INSERT INTO public_holidays (name, holiday_date)
		VALUES (?, ?)
		RETURNING id, name, holiday_date, created_at
	`

	var h models.PublicHoliday
	err := r.db.QueryRow(query, name, holidayDate).Scan(&h.ID, &h.Name, &h.HolidayDate, &h.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHolidayDate, holidayDate)
		}
		return nil, fmt.Errorf("failed to create public holiday: %w", err)
	}

	return &h, nil
}

func (r *HolidayRepository) DeletePublicHoliday(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM public_holidays WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete public holiday: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// IsPersonalHoliday reports whether the user has a personal holiday on
// the date. Public holidays are checked separately by the classifier.
func (r *HolidayRepository) IsPersonalHoliday(userID int64, date string) (bool, error) {
	var n int
	err := r.db.QueryRow(
		"SELECT COUNT(1) FROM personal_holidays WHERE user_id = ? AND holiday_date = ?",
		userID, date,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check personal holiday: %w", err)
	}

	return n > 0, nil
}

// CreatePersonalHoliday is idempotent: creating a holiday that already
// exists returns the existing record.
func (r *HolidayRepository) CreatePersonalHoliday(userID int64, holidayDate string) (*models.PersonalHoliday, error) {
	_, err := r.db.Exec(
		`INSERT INTO personal_holidays (user_id, holiday_date)
		 VALUES (?, ?)
		 ON CONFLICT(user_id, holiday_date) DO NOTHING`,
		userID, holidayDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create personal holiday: %w", err)
	}

	var h models.PersonalHoliday
	err = r.db.QueryRow(
		`SELECT id, user_id, holiday_date, created_at
		 FROM personal_holidays
		 WHERE user_id = ? AND holiday_date = ?`,
		userID, holidayDate,
	).Scan(&h.ID, &h.UserID, &h.HolidayDate, &h.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to read back personal holiday: %w", err)
	}

	return &h, nil
}

func (r *HolidayRepository) DeletePersonalHoliday(userID int64, holidayDate string) (bool, error) {
	result, err := r.db.Exec(
		"DELETE FROM personal_holidays WHERE user_id = ? AND holiday_date = ?",
		userID, holidayDate,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete personal holiday: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *HolidayRepository) PersonalHolidaysForRange(userID int64, startDate, endDate string) ([]*models.PersonalHoliday, error) {
	query := `
		SELECT id, user_id, holiday_date, created_at
		FROM personal_holidays
		WHERE user_id = ? AND holiday_date BETWEEN ? AND ?
		ORDER BY holiday_date
	`
	return r.queryPersonalHolidays(query, userID, startDate, endDate)
}

// PersonalHolidaysFrom returns holidays on or after fromDate, oldest
// first (the "upcoming" list).
func (r *HolidayRepository) PersonalHolidaysFrom(userID int64, fromDate string) ([]*models.PersonalHoliday, error) {
	query := `
		SELECT id, user_id, holiday_date, created_at
		FROM personal_holidays
		WHERE user_id = ? AND holiday_date >= ?
		ORDER BY holiday_date
	`
	return r.queryPersonalHolidays(query, userID, fromDate)
}

// PersonalHolidaysBefore returns holidays strictly before beforeDate,
// most recent first (the "past" list).
func (r *HolidayRepository) PersonalHolidaysBefore(userID int64, beforeDate string) ([]*models.PersonalHoliday, error) {
	query := `
		SELECT id, user_id, holiday_date, created_at
		FROM personal_holidays
		WHERE user_id = ? AND holiday_date < ?
		ORDER BY holiday_date DESC
	`
	return r.queryPersonalHolidays(query, userID, beforeDate)
}

// PersonalHolidaysAllForRange returns every user's holidays in the
// range, ordered by user then date, for cross-user dashboards.
func (r *HolidayRepository) PersonalHolidaysAllForRange(startDate, endDate string) ([]*models.PersonalHoliday, error) {
	query := `
		SELECT id, user_id, holiday_date, created_at
		FROM personal_holidays
		WHERE holiday_date BETWEEN ? AND ?
		ORDER BY user_id, holiday_date
	`
	return r.queryPersonalHolidays(query, startDate, endDate)
}

func (r *HolidayRepository) queryPersonalHolidays(query string, args ...any) ([]*models.PersonalHoliday, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query personal holidays: %w", err)
	}
	defer rows.Close()

	var holidays []*models.PersonalHoliday
	for rows.Next() {
		var h models.PersonalHoliday
		if err := rows.Scan(&h.ID, &h.UserID, &h.HolidayDate, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan personal holiday: %w", err)
		}
		holidays = append(holidays, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return holidays, nil
}
