package models

import "time"

// LocationEntry is the planned or recorded onsite/remote flag for one
// user on one date. It is kept separate from WorkEntry so location can
// be planned before hours are known. IsOnsite is tri-state: nil means
// the flag was never set.
type LocationEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	WorkDate  string    `json:"work_date"`
	IsOnsite  *bool     `json:"is_onsite"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpsertLocationRequest struct {
	UserID   int64  `json:"user_id"`
	WorkDate string `json:"work_date"`
	IsOnsite *bool  `json:"is_onsite"`
}
