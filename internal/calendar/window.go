package calendar

import (
	"time"

	"worktime-tracker/internal/dateutil"
	"worktime-tracker/internal/models"
)

// WindowResolver computes the editable window: the most recent quota
// working days plus every non-working date interleaved between them.
// The window is recomputed fresh on every call; "today" and the
// holiday tables can change between requests, so nothing is cached.
type WindowResolver struct {
	classifier  *Classifier
	quota       int
	maxScanDays int

	// Now is the injected clock; tests fix it to a known date.
	Now func() time.Time
}

func NewWindowResolver(classifier *Classifier, quota, maxScanDays int) *WindowResolver {
	return &WindowResolver{
		classifier:  classifier,
		quota:       quota,
		maxScanDays: maxScanDays,
		Now:         time.Now,
	}
}

// Resolve computes the window as of the resolver's clock.
func (r *WindowResolver) Resolve(userID int64) (*models.EditableWindow, error) {
	return r.ResolveAt(userID, r.Now())
}

// ResolveAt computes the window as of the given moment. Today is
// always included even when non-working. The backward walk stops once
// quota working days are counted or maxScanDays calendar days have
// been scanned; in the latter case the window is a degraded but valid
// result, flagged Truncated.
func (r *WindowResolver) ResolveAt(userID int64, now time.Time) (*models.EditableWindow, error) {
	today := dateutil.StartOfDay(now)

	todayClass, err := r.classifier.Classify(userID, today)
	if err != nil {
		return nil, err
	}

	window := &models.EditableWindow{
		Today:              dateutil.FormatDate(today),
		Yesterday:          dateutil.FormatDate(today.AddDate(0, 0, -1)),
		DayBeforeYesterday: dateutil.FormatDate(today.AddDate(0, 0, -2)),
	}
	window.Days = append(window.Days, models.WindowDay{
		DateClassification: *todayClass,
		Label:              "Today",
	})

	working := 0
	if todayClass.IsWorkingDay {
		working++
	}

	daysBack := 0
	for working < r.quota && daysBack < r.maxScanDays {
		daysBack++
		date := today.AddDate(0, 0, -daysBack)

		class, err := r.classifier.Classify(userID, date)
		if err != nil {
			return nil, err
		}

		label := class.Weekday.String()
		if daysBack == 1 {
			label = "Yesterday"
		}

		window.Days = append(window.Days, models.WindowDay{
			DateClassification: *class,
			Label:              label,
		})

		if class.IsWorkingDay {
			working++
		}
	}

	window.Truncated = working < r.quota
	return window, nil
}
