package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"worktime-tracker/internal/models"
	"worktime-tracker/internal/service"
)

type LocationHandler struct {
	service *service.LocationService
	logger  *zap.Logger
}

func NewLocationHandler(service *service.LocationService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		service: service,
		logger:  logger,
	}
}

func (h *LocationHandler) UpsertLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.UpsertLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.Upsert(&req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *LocationHandler) ClearLocation(w http.ResponseWriter, r *http.Request) {
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

	if _, err := h.service.Clear(userID, date); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryInt64(r, "user_id")
	if !ok {
		http.Error(w, "Missing or invalid user_id parameter", http.StatusBadRequest)
		return
	}
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		http.Error(w, "Missing start or end parameter", http.StatusBadRequest)
		return
	}

	entries, err := h.service.ListForRange(userID, start, end)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
