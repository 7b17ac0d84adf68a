package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"worktime-tracker/internal/models"
	"worktime-tracker/internal/service"
)

type EntryHandler struct {
	service *service.EntryService
	logger  *zap.Logger
}

func NewEntryHandler(service *service.EntryService, logger *zap.Logger) *EntryHandler {
	return &EntryHandler{
		service: service,
		logger:  logger,
	}
}

// GetWindow returns the dates currently open for submission.
func (h *EntryHandler) GetWindow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := queryInt64(r, "user_id")
	if !ok {
		http.Error(w, "Missing or invalid user_id parameter", http.StatusBadRequest)
		return
	}

	window, err := h.service.GetEditableWindow(userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, window)
}

func (h *EntryHandler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SubmitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.SubmitEntry(&req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := queryInt64(r, "id")
	if !ok {
		http.Error(w, "Missing or invalid id parameter", http.StatusBadRequest)
		return
	}
	userID, ok := queryInt64(r, "user_id")
	if !ok {
		http.Error(w, "Missing or invalid user_id parameter", http.StatusBadRequest)
		return
	}

	var req models.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.UpdateEntry(id, userID, &req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := queryInt64(r, "id")
	if !ok {
		http.Error(w, "Missing or invalid id parameter", http.StatusBadRequest)
		return
	}
	userID, ok := queryInt64(r, "user_id")
	if !ok {
		http.Error(w, "Missing or invalid user_id parameter", http.StatusBadRequest)
		return
	}

	if _, err := h.service.DeleteEntry(id, userID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
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
