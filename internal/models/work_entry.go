package models

import "time"

// WorkEntry is the hours a user logged for one calendar date.
// Dates are stored and exchanged as YYYY-MM-DD strings; at most one
// entry exists per (user, date).
type WorkEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	WorkDate  string    `json:"work_date"`
	Hours     float64   `json:"hours"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SubmitEntryRequest struct {
	UserID   int64   `json:"user_id"`
	WorkDate string  `json:"work_date"`
	Hours    float64 `json:"hours"`
	IsOnsite *bool   `json:"is_onsite,omitempty"`
}

type UpdateEntryRequest struct {
	Hours    *float64 `json:"hours,omitempty"`
	IsOnsite *bool    `json:"is_onsite,omitempty"`
}
