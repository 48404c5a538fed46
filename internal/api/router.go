package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/datoactivo/backend/internal/api/handlers"
	"github.com/datoactivo/backend/internal/realtime"
	"github.com/datoactivo/backend/pkg/logger"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Results     *handlers.ResultsHandler
	Analysis    *handlers.AnalysisHandler
	Forecast    *handlers.ForecastHandler
	Scrape      *handlers.ScrapeHandler
	Maintenance *handlers.MaintenanceHandler
	Hub         *realtime.Hub
}

// NewRouter creates and configures the HTTP router.
func NewRouter(h Handlers, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Results browsing
	api.HandleFunc("/results", h.Results.List).Methods("GET")
	api.HandleFunc("/results/day", h.Results.Day).Methods("GET")
	api.HandleFunc("/results/stats", h.Results.Stats).Methods("GET")

	// Same-series pattern analysis
	api.HandleFunc("/patterns/similar", h.Analysis.SimilarDays).Methods("GET")
	api.HandleFunc("/patterns/forecast", h.Analysis.PatternForecast).Methods("GET")

	// Outcome-set analysis
	api.HandleFunc("/animals/similar", h.Analysis.AnimalSets).Methods("GET")
	api.HandleFunc("/animals/forecast", h.Analysis.AnimalSetForecast).Methods("GET")

	// Cross-series, frequencies and consecutive pairs
	api.HandleFunc("/cross-series", h.Analysis.CrossSeries).Methods("GET")
	api.HandleFunc("/frequencies", h.Analysis.Frequencies).Methods("GET")
	api.HandleFunc("/pairs", h.Analysis.ConsecutivePairs).Methods("GET")

	// Multi-signal fusion
	api.HandleFunc("/forecast/fused", h.Forecast.Fused).Methods("GET")

	// Scraping
	api.HandleFunc("/scrape", h.Scrape.Backfill).Methods("POST")
	api.HandleFunc("/scrape/auto", h.Scrape.ToggleAuto).Methods("POST")
	api.HandleFunc("/scrape/auto/status", h.Scrape.AutoStatus).Methods("GET")

	// Store maintenance
	api.HandleFunc("/maintenance/duplicates", h.Maintenance.Duplicates).Methods("GET")
	api.HandleFunc("/maintenance/duplicates/purge", h.Maintenance.PurgeDuplicates).Methods("POST")

	// Live event feed
	if h.Hub != nil {
		r.HandleFunc("/api/live", h.Hub.ServeWS)
	}

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "datoactivo-api",
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
