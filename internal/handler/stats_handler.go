package handler

import (
	"net/http"

	"go.uber.org/zap"

	"worktime-tracker/internal/service"
)

type StatsHandler struct {
	stats   *service.StatsService
	missing *service.MissingDayService
	logger  *zap.Logger
}

func NewStatsHandler(stats *service.StatsService, missing *service.MissingDayService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		stats:   stats,
		missing: missing,
		logger:  logger,
	}
}

// GetMonthlyStats returns the month's compliance figures, rounded for
// display.
func (h *StatsHandler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryInt64(r, "user_id")
	if !ok {
		http.Error(w, "Missing or invalid user_id parameter", http.StatusBadRequest)
		return
	}
	year, month, ok := queryMonth(r)
	if !ok {
		http.Error(w, "Invalid year or month parameter", http.StatusBadRequest)
		return
	}

	stats, err := h.stats.MonthlyStats(userID, year, month)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, stats.Rounded())
}

func (h *StatsHandler) GetMonthCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryInt64(r, "user_id")
	if !ok {
		http.Error(w, "Missing or invalid user_id parameter", http.StatusBadRequest)
		return
	}
	year, month, ok := queryMonth(r)
	if !ok {
		http.Error(w, "Invalid year or month parameter", http.StatusBadRequest)
		return
	}

	days, err := h.stats.MonthCalendar(userID, year, month)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, days)
}

func (h *StatsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	year, month, ok := queryMonth(r)
	if !ok {
		http.Error(w, "Invalid year or month parameter", http.StatusBadRequest)
		return
	}

	rows, err := h.stats.Dashboard(year, month)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

func (h *StatsHandler) GetMissingDays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryInt64(r, "user_id")
	if !ok {
		http.Error(w, "Missing or invalid user_id parameter", http.StatusBadRequest)
		return
	}

	missing, err := h.missing.FindMissingDays(userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, missing)
}
