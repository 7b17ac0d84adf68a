package models

import "time"

// PersonalHoliday is one user's day off. Unique per (user, date).
type PersonalHoliday struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	HolidayDate string    `json:"holiday_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// PublicHoliday is an organization-wide non-working date. The date is
// globally unique; administrator managed.
type PublicHoliday struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	HolidayDate string    `json:"holiday_date"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreatePersonalHolidayRequest struct {
	UserID      int64  `json:"user_id"`
	HolidayDate string `json:"holiday_date"`
}

type CreatePublicHolidayRequest struct {
	Name        string `json:"name"`
	HolidayDate string `json:"holiday_date"`
}
