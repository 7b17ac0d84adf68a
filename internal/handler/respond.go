package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"worktime-tracker/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to HTTP statuses. Storage errors
// are logged and hidden behind a generic message; the rest carry their
// own text.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch apperr.KindOf(err) {
	case apperr.Validation:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case apperr.NotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case apperr.Conflict:
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		logger.Error("Request failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func queryInt64(r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// queryMonth reads year and month query parameters, defaulting to the
// current month when both are absent.
func queryMonth(r *http.Request) (int, time.Month, bool) {
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")

	if yearStr == "" && monthStr == "" {
		now := time.Now()
		return now.Year(), now.Month(), true
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}
