package service

import (
	"fmt"
	"sort"
	"time"

	"worktime-tracker/internal/apperr"
	"worktime-tracker/internal/dateutil"
	"worktime-tracker/internal/models"
	"worktime-tracker/internal/repository"
)

// StatsService aggregates a month's entries and holidays into
// compliance figures. Public holidays reduce the requirement; personal
// holidays count toward fulfillment; public-holiday hours are tracked
// for display but never double-credited into the combined total.
type StatsService struct {
	entries            *repository.WorkEntryRepository
	holidays           *repository.HolidayRepository
	standardDailyHours float64

	Now func() time.Time
}

func NewStatsService(
	entries *repository.WorkEntryRepository,
	holidays *repository.HolidayRepository,
	standardDailyHours float64,
) *StatsService {
	return &StatsService{
		entries:            entries,
		holidays:           holidays,
		standardDailyHours: standardDailyHours,
		Now:                time.Now,
	}
}

func (s *StatsService) MonthlyStats(userID int64, year int, month time.Month) (*models.MonthlyStats, error) {
	const op = "aggregate month"

	if month < time.January || month > time.December {
		return nil, apperr.NewValidation(op, fmt.Sprintf("invalid month %d", month)).WithUser(userID)
	}

	start, end := dateutil.MonthRange(year, month)

	worked, err := s.entries.SumHoursForRange(userID, start, end)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}

	personal, err := s.holidays.PersonalHolidaysForRange(userID, start, end)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}

	public, err := s.holidays.PublicHolidaysForMonth(year, month)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}

	personalOnWeekdays, err := countWeekdayDates(holidayDates(personal))
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}
	publicOnWeekdays, err := countWeekdayDates(publicHolidayDates(public))
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}

	// Every public holiday reduces the requirement, weekend ones
	// included; only weekday personal holidays credit hours.
	weekdays := dateutil.WeekdaysInMonth(year, month)
	required := float64(weekdays-len(public)) * s.standardDailyHours
	holidayHours := float64(personalOnWeekdays) * s.standardDailyHours
	combined := worked + holidayHours

	remaining := required - combined
	if remaining < 0 {
		remaining = 0
	}

	return &models.MonthlyStats{
		UserID:             userID,
		Year:               year,
		Month:              int(month),
		WorkedHours:        worked,
		HolidayCount:       len(personal),
		HolidayHours:       holidayHours,
		PublicHolidayCount: publicOnWeekdays,
		PublicHolidayHours: float64(publicOnWeekdays) * s.standardDailyHours,
		CombinedHours:      combined,
		RequiredHours:      required,
		RemainingHours:     remaining,
	}, nil
}

// MonthCalendar builds the per-day month view for one user: hours,
// classification flags, and the needs-attention marker for past
// working days with nothing logged.
func (s *StatsService) MonthCalendar(userID int64, year int, month time.Month) ([]models.CalendarDay, error) {
	const op = "month calendar"

	if month < time.January || month > time.December {
		return nil, apperr.NewValidation(op, fmt.Sprintf("invalid month %d", month)).WithUser(userID)
	}

	start, end := dateutil.MonthRange(year, month)

	entries, err := s.entries.FindByUserAndDateRange(userID, start, end)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}
	personal, err := s.holidays.PersonalHolidaysForRange(userID, start, end)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}
	public, err := s.holidays.PublicHolidaysForMonth(year, month)
	if err != nil {
		return nil, apperr.WrapStorage(op, err).WithUser(userID)
	}

	hoursByDate := make(map[string]float64, len(entries))
	for _, e := range entries {
		hoursByDate[e.WorkDate] = e.Hours
	}
	personalSet := make(map[string]bool, len(personal))
	for _, h := range personal {
		personalSet[h.HolidayDate] = true
	}
	publicSet := make(map[string]bool, len(public))
	for _, h := range public {
		publicSet[h.HolidayDate] = true
	}

	today := dateutil.StartOfDay(s.Now())
	daysInMonth := dateutil.DaysInMonth(year, month)

	days := make([]models.CalendarDay, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		formatted := dateutil.FormatDate(date)

		hours, hasHours := hoursByDate[formatted]
		isWeekend := dateutil.IsWeekend(date)
		isPersonal := personalSet[formatted]
		isPublic := publicSet[formatted]
		isWorking := !isWeekend && !isPersonal && !isPublic
		isPast := date.Before(today)

		days = append(days, models.CalendarDay{
			Day:               day,
			Date:              formatted,
			Hours:             hours,
			HasHours:          hasHours && hours > 0,
			IsPersonalHoliday: isPersonal,
			IsPublicHoliday:   isPublic,
			IsWeekend:         isWeekend,
			IsWorkingDay:      isWorking,
			IsPast:            isPast,
			NeedsAttention:    isWorking && isPast && !(hasHours && hours > 0),
		})
	}

	return days, nil
}

// Dashboard returns every user's month summary: total hours, a
// date-to-hours map and holiday dates, sorted by user id.
func (s *StatsService) Dashboard(year int, month time.Month) ([]models.DashboardRow, error) {
	const op = "dashboard"

	if month < time.January || month > time.December {
		return nil, apperr.NewValidation(op, fmt.Sprintf("invalid month %d", month))
	}

	start, end := dateutil.MonthRange(year, month)

	entries, err := s.entries.FindAllByDateRange(start, end)
	if err != nil {
		return nil, apperr.WrapStorage(op, err)
	}
	holidays, err := s.holidays.PersonalHolidaysAllForRange(start, end)
	if err != nil {
		return nil, apperr.WrapStorage(op, err)
	}

	rowsByUser := make(map[int64]*models.DashboardRow)
	rowFor := func(userID int64) *models.DashboardRow {
		row, ok := rowsByUser[userID]
		if !ok {
			row = &models.DashboardRow{
				UserID:      userID,
				HoursByDate: make(map[string]float64),
			}
			rowsByUser[userID] = row
		}
		return row
	}

	for _, e := range entries {
		row := rowFor(e.UserID)
		row.HoursByDate[e.WorkDate] = e.Hours
		row.TotalHours += e.Hours
	}
	for _, h := range holidays {
		row := rowFor(h.UserID)
		row.HolidayDates = append(row.HolidayDates, h.HolidayDate)
	}

	rows := make([]models.DashboardRow, 0, len(rowsByUser))
	for _, row := range rowsByUser {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UserID < rows[j].UserID })

	return rows, nil
}

func holidayDates(holidays []*models.PersonalHoliday) []string {
	dates := make([]string, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.HolidayDate)
	}
	return dates
}

func publicHolidayDates(holidays []*models.PublicHoliday) []string {
	dates := make([]string, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.HolidayDate)
	}
	return dates
}

func countWeekdayDates(dates []string) (int, error) {
	n := 0
	for _, d := range dates {
		t, err := dateutil.ParseDate(d)
		if err != nil {
			return 0, err
		}
		if dateutil.IsWeekday(t) {
			n++
		}
	}
	return n, nil
}
