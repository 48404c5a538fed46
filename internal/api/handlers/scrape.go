package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/datoactivo/backend/internal/contracts"
	"github.com/datoactivo/backend/internal/scheduler/jobs"
	"github.com/datoactivo/backend/internal/scraper"
	"github.com/datoactivo/backend/pkg/logger"
)

// ScrapeHandler serves manual backfills and the auto-refresh toggle.
type ScrapeHandler struct {
	scraper *scraper.Scraper
	auto    *jobs.AutoRefresh
	logger  *logger.Logger
}

// NewScrapeHandler creates a new scrape handler.
func NewScrapeHandler(sc *scraper.Scraper, auto *jobs.AutoRefresh, log *logger.Logger) *ScrapeHandler {
	return &ScrapeHandler{scraper: sc, auto: auto, logger: log}
}

type backfillRequest struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Series []string `json:"series,omitempty"`
}

// Backfill scrapes a date range synchronously.
// POST /api/scrape {"from": "01/01/2025", "to": "31/01/2025", "series": [...]}
func (h *ScrapeHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	var req backfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.From == "" || req.To == "" {
		respondError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	from, err := time.Parse(contracts.DisplayDateLayout, req.From)
	if err != nil {
		respondError(w, http.StatusBadRequest, "dates must be dd/mm/yyyy")
		return
	}
	to, err := time.Parse(contracts.DisplayDateLayout, req.To)
	if err != nil {
		respondError(w, http.StatusBadRequest, "dates must be dd/mm/yyyy")
		return
	}

	summary, err := h.scraper.Backfill(r.Context(), from, to, req.Series)
	if respondAnalysisError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

type toggleRequest struct {
	Active bool `json:"active"`
}

// ToggleAuto starts or stops the auto-refresh supervisor.
// POST /api/scrape/auto {"active": true}
func (h *ScrapeHandler) ToggleAuto(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Active {
		h.auto.Start()
	} else {
		h.auto.Stop()
	}

	respondJSON(w, http.StatusOK, h.auto.Status())
}

// AutoStatus reports the auto-refresh supervisor state.
// GET /api/scrape/auto/status
func (h *ScrapeHandler) AutoStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.auto.Status())
}
