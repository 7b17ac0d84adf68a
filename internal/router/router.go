package router

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worktime-tracker/internal/handler"
)

// Handlers bundles the HTTP handlers the router wires up.
type Handlers struct {
	Entries   *handler.EntryHandler
	Locations *handler.LocationHandler
	Holidays  *handler.HolidayHandler
	Stats     *handler.StatsHandler
}

func New(h Handlers, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Work entry endpoints
	mux.HandleFunc("/api/v1/entries", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.Entries.SubmitEntry(w, r)
		case http.MethodGet:
			h.Entries.ListEntries(w, r)
		case http.MethodPut:
			h.Entries.UpdateEntry(w, r)
		case http.MethodDelete:
			h.Entries.DeleteEntry(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/entries/window", h.Entries.GetWindow)

	// Location endpoints
	mux.HandleFunc("/api/v1/locations", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut:
			h.Locations.UpsertLocation(w, r)
		case http.MethodGet:
			h.Locations.ListLocations(w, r)
		case http.MethodDelete:
			h.Locations.ClearLocation(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Holiday endpoints
	mux.HandleFunc("/api/v1/holidays/personal", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.Holidays.RequestPersonalHoliday(w, r)
		case http.MethodGet:
			h.Holidays.ListPersonalHolidays(w, r)
		case http.MethodDelete:
			h.Holidays.CancelPersonalHoliday(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/holidays/public", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.Holidays.CreatePublicHoliday(w, r)
		case http.MethodGet:
			h.Holidays.ListPublicHolidays(w, r)
		case http.MethodDelete:
			h.Holidays.DeletePublicHoliday(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Reporting endpoints
	mux.HandleFunc("/api/v1/stats/monthly", h.Stats.GetMonthlyStats)
	mux.HandleFunc("/api/v1/stats/calendar", h.Stats.GetMonthCalendar)
	mux.HandleFunc("/api/v1/stats/dashboard", h.Stats.GetDashboard)
	mux.HandleFunc("/api/v1/stats/missing-days", h.Stats.GetMissingDays)

	// Logging middleware
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		logger.Info("HTTP request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
		)
		mux.ServeHTTP(w, r)
	})
}
