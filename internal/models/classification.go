package models

import "time"

// DateClassification is the derived kind of a (user, date) pair. The
// flags are independent: a date marked as both a personal and a public
// holiday keeps both bits set, callers decide precedence.
type DateClassification struct {
	Date              string       `json:"date"`
	Weekday           time.Weekday `json:"weekday"`
	IsWeekend         bool         `json:"is_weekend"`
	IsPublicHoliday   bool         `json:"is_public_holiday"`
	IsPersonalHoliday bool         `json:"is_personal_holiday"`
	IsWorkingDay      bool         `json:"is_working_day"`
}

// WindowDay is one date of the editable window with its display label
// ("Today", "Yesterday", or the weekday name).
type WindowDay struct {
	DateClassification
	Label string `json:"label"`
}

// EditableWindow is the set of recent dates a user may still create,
// edit or delete entries for, ordered most recent first. Truncated is
// set when the backward scan hit its safety bound before the
// working-day quota was reached.
type EditableWindow struct {
	Days               []WindowDay `json:"days"`
	Today              string      `json:"today"`
	Yesterday          string      `json:"yesterday"`
	DayBeforeYesterday string      `json:"day_before_yesterday"`
	Truncated          bool        `json:"truncated"`
}

// Contains reports whether date is one of the window's dates.
func (w *EditableWindow) Contains(date string) bool {
	for _, d := range w.Days {
		if d.Date == date {
			return true
		}
	}
	return false
}

// OldestDate returns the earliest date in the window, or "" for an
// empty window.
func (w *EditableWindow) OldestDate() string {
	if len(w.Days) == 0 {
		return ""
	}
	return w.Days[len(w.Days)-1].Date
}

// WorkingDayCount returns how many window dates are working days.
func (w *EditableWindow) WorkingDayCount() int {
	n := 0
	for _, d := range w.Days {
		if d.IsWorkingDay {
			n++
		}
	}
	return n
}
