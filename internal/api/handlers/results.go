package handlers

import (
	"net/http"

	"github.com/datoactivo/backend/internal/contracts"
	"github.com/datoactivo/backend/internal/results"
	"github.com/datoactivo/backend/pkg/logger"
)

// ResultsHandler serves the observed-results browsing endpoints.
type ResultsHandler struct {
	store  *results.Repository
	logger *logger.Logger
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(store *results.Repository, log *logger.Logger) *ResultsHandler {
	return &ResultsHandler{store: store, logger: log}
}

// List returns observed results, newest first.
// GET /api/results?from=&to=&series=&slot=
func (h *ResultsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from := queryParam(r, "from", daysAgo(7))
	to := queryParam(r, "to", today())
	series := queryParam(r, "series", "TODAS")
	slot := queryParam(r, "slot", "TODOS")

	if !contracts.ValidDisplayDate(from) || !contracts.ValidDisplayDate(to) {
		respondError(w, http.StatusBadRequest, "dates must be dd/mm/yyyy")
		return
	}

	rows, err := h.store.List(ctx, from, to, series, slot)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list results")
		respondError(w, http.StatusInternalServerError, "failed to list results")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": rows,
		"total":   len(rows),
	})
}

// Day returns one day's results for a series, in slot order.
// GET /api/results/day?series=&date=
func (h *ResultsHandler) Day(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	series := queryParam(r, "series", "LOTTO ACTIVO")
	date := queryParam(r, "date", today())

	if !contracts.ValidDisplayDate(date) {
		respondError(w, http.StatusBadRequest, "date must be dd/mm/yyyy")
		return
	}

	record, err := h.store.DayRecord(ctx, date, series)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load day")
		respondError(w, http.StatusInternalServerError, "failed to load day")
		return
	}

	type slotResult struct {
		Slot    string `json:"slot"`
		Outcome string `json:"outcome"`
		Name    string `json:"name"`
	}
	out := make([]slotResult, 0, len(record))
	for _, slot := range record.OrderedSlots() {
		out = append(out, slotResult{
			Slot:    slot,
			Outcome: record[slot],
			Name:    contracts.OutcomeName(record[slot]),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": out,
	})
}

// Stats returns store-wide statistics.
// GET /api/results/stats
func (h *ResultsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load stats")
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
