package models

import "math"

// MonthlyStats are the reconciled compliance figures for one user and
// month. Hour values are kept unrounded internally; call Rounded at
// the presentation boundary.
type MonthlyStats struct {
	UserID int64 `json:"user_id"`
	Year   int   `json:"year"`
	Month  int   `json:"month"`

	WorkedHours float64 `json:"worked_hours"`

	// Personal holidays in the month; HolidayHours credits only those
	// falling on weekdays.
	HolidayCount int     `json:"holiday_count"`
	HolidayHours float64 `json:"holiday_hours"`

	// Public holidays on weekdays, tracked for display. Their hours are
	// excluded from CombinedHours since nobody was required to work
	// those days.
	PublicHolidayCount int     `json:"public_holiday_count"`
	PublicHolidayHours float64 `json:"public_holiday_hours"`

	CombinedHours  float64 `json:"combined_hours"`
	RequiredHours  float64 `json:"required_hours"`
	RemainingHours float64 `json:"remaining_hours"`
}

// Rounded returns a copy with all hour values rounded to 2 decimal
// places for display.
func (s MonthlyStats) Rounded() MonthlyStats {
	s.WorkedHours = round2(s.WorkedHours)
	s.HolidayHours = round2(s.HolidayHours)
	s.PublicHolidayHours = round2(s.PublicHolidayHours)
	s.CombinedHours = round2(s.CombinedHours)
	s.RequiredHours = round2(s.RequiredHours)
	s.RemainingHours = round2(s.RemainingHours)
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MissingDay is a past working day, outside the editable window and
// within the user's tenure, that has no work entry.
type MissingDay struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

// CalendarDay is one date of the per-user month calendar view.
type CalendarDay struct {
	Day               int     `json:"day"`
	Date              string  `json:"date"`
	Hours             float64 `json:"hours"`
	HasHours          bool    `json:"has_hours"`
	IsPersonalHoliday bool    `json:"is_personal_holiday"`
	IsPublicHoliday   bool    `json:"is_public_holiday"`
	IsWeekend         bool    `json:"is_weekend"`
	IsWorkingDay      bool    `json:"is_working_day"`
	IsPast            bool    `json:"is_past"`
	NeedsAttention    bool    `json:"needs_attention"`
}

// DashboardRow is one user's month summary in the cross-user view.
type DashboardRow struct {
	UserID       int64              `json:"user_id"`
	TotalHours   float64            `json:"total_hours"`
	HoursByDate  map[string]float64 `json:"hours_by_date"`
	HolidayDates []string           `json:"holiday_dates"`
}
