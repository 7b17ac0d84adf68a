package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"worktime-tracker/internal/models"
	"worktime-tracker/internal/service"
)

type HolidayHandler struct {
	service *service.HolidayService
	logger  *zap.Logger
}

func NewHolidayHandler(service *service.HolidayService, logger *zap.Logger) *HolidayHandler {
	return &HolidayHandler{
		service: service,
		logger:  logger,
	}
}

func (h *HolidayHandler) RequestPersonalHoliday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CreatePersonalHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	holiday, err := h.service.RequestPersonalHoliday(&req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, holiday)
}

func (h *HolidayHandler) CancelPersonalHoliday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryInt64(r, "user_id")
	if !ok {
		http.Error(w, "Missing or invalid user_id parameter", http.StatusBadRequest)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "Missing date parameter", http.StatusBadRequest)
		return
	}

	if _, err := h.service.CancelPersonalHoliday(userID, date); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPersonalHolidays returns the user's holidays split into upcoming
// and past, today counting as upcoming.
func (h *HolidayHandler) ListPersonalHolidays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryInt64(r, "user_id")
	if !ok {
		http.Error(w, "Missing or invalid user_id parameter", http.StatusBadRequest)
		return
	}

	upcoming, err := h.service.UpcomingPersonalHolidays(userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	past, err := h.service.PastPersonalHolidays(userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"upcoming": upcoming,
		"past":     past,
	})
}

func (h *HolidayHandler) CreatePublicHoliday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CreatePublicHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	holiday, err := h.service.CreatePublicHoliday(&req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, holiday)
}

func (h *HolidayHandler) DeletePublicHoliday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := queryInt64(r, "id")
	if !ok {
		http.Error(w, "Missing or invalid id parameter", http.StatusBadRequest)
		return
	}

	if _, err := h.service.DeletePublicHoliday(id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *HolidayHandler) ListPublicHolidays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid year parameter", http.StatusBadRequest)
			return
		}
		year = parsed
	}

	holidays, err := h.service.PublicHolidaysForYear(year)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, holidays)
}
