package handlers

import (
	"net/http"

	"github.com/datoactivo/backend/internal/analysis"
	"github.com/datoactivo/backend/internal/contracts"
	"github.com/datoactivo/backend/pkg/logger"
)

// AnalysisHandler serves the pattern, frequency and consecutive-pair
// analysis endpoints.
type AnalysisHandler struct {
	engine *analysis.Engine
	logger *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(engine *analysis.Engine, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{engine: engine, logger: log}
}

// SimilarDays runs the same-series pattern search.
// GET /api/patterns/similar?series=&reference_date=&from=&to=&min_similarity=
func (h *AnalysisHandler) SimilarDays(w http.ResponseWriter, r *http.Request) {
	series := queryParam(r, "series", "LOTTO ACTIVO")
	refDate := queryParam(r, "reference_date", today())
	from := queryParam(r, "from", "")
	to := queryParam(r, "to", "")
	minSim := queryFloat(r, "min_similarity", analysis.DefaultMinSimilarity)

	search, err := h.engine.SearchSimilarDays(r.Context(), series, refDate, from, to, minSim)
	if respondAnalysisError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, search)
}

// PatternForecast runs the similarity-weighted forecast.
// GET /api/patterns/forecast?series=&reference_date=&from=&to=&top_n=
func (h *AnalysisHandler) PatternForecast(w http.ResponseWriter, r *http.Request) {
	series := queryParam(r, "series", "LOTTO ACTIVO")
	refDate := queryParam(r, "reference_date", today())
	from := queryParam(r, "from", "")
	to := queryParam(r, "to", "")
	topN := queryInt(r, "top_n", analysis.DefaultTopN)

	forecast, err := h.engine.PatternForecast(r.Context(), series, refDate, from, to, topN)
	if respondAnalysisError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, forecast)
}

// AnimalSets runs the outcome-set search.
// GET /api/animals/similar?series=&reference_date=&from=&to=&min_similarity=
func (h *AnalysisHandler) AnimalSets(w http.ResponseWriter, r *http.Request) {
	series := queryParam(r, "series", "LOTTO ACTIVO")
	refDate := queryParam(r, "reference_date", today())
	from := queryParam(r, "from", "")
	to := queryParam(r, "to", "")
	minSim := queryFloat(r, "min_similarity", analysis.DefaultMinSimilarity)

	search, err := h.engine.SearchAnimalSets(r.Context(), series, refDate, from, to, minSim)
	if respondAnalysisError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, search)
}

// AnimalSetForecast runs the set-overlap forecast.
// GET /api/animals/forecast?series=&reference_date=&from=&to=&top_n=
func (h *AnalysisHandler) AnimalSetForecast(w http.ResponseWriter, r *http.Request) {
	series := queryParam(r, "series", "LOTTO ACTIVO")
	refDate := queryParam(r, "reference_date", today())
	from := queryParam(r, "from", "")
	to := queryParam(r, "to", "")
	topN := queryInt(r, "top_n", analysis.DefaultTopN)

	forecast, err := h.engine.AnimalSetForecast(r.Context(), series, refDate, from, to, topN)
	if respondAnalysisError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, forecast)
}

// CrossSeries runs the cross-series search on the normalized time grid.
// GET /api/cross-series?series=&reference_date=&from=&to=&min_similarity=&compare=
func (h *AnalysisHandler) CrossSeries(w http.ResponseWriter, r *http.Request) {
	series := queryParam(r, "series", "LOTTO ACTIVO")
	refDate := queryParam(r, "reference_date", today())
	from := queryParam(r, "from", "")
	to := queryParam(r, "to", "")
	minSim := queryFloat(r, "min_similarity", analysis.DefaultMinSimilarity)

	compare := r.URL.Query()["compare"]
	if len(compare) == 0 {
		compare = contracts.Series
	}

	search, err := h.engine.SearchCrossSeries(r.Context(), series, refDate, compare, from, to, minSim)
	if respondAnalysisError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, search)
}

// Frequencies reports what tends to come right after or before an outcome.
// GET /api/frequencies?series=&outcome=&direction=&from=&to=
func (h *AnalysisHandler) Frequencies(w http.ResponseWriter, r *http.Request) {
	series := queryParam(r, "series", "LOTTO ACTIVO")
	outcome := queryParam(r, "outcome", "1")
	direction := queryParam(r, "direction", "after")
	from := queryParam(r, "from", daysAgo(30))
	to := queryParam(r, "to", today())

	top, totalDays, err := h.engine.FrequencyReport(r.Context(), series, outcome, direction, from, to)
	if respondAnalysisError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"series":     series,
		"outcome":    outcome,
		"name":       contracts.OutcomeName(outcome),
		"direction":  direction,
		"top":        top,
		"total_days": totalDays,
	})
}

// ConsecutivePairs finds days where an exact outcome pair fell back to back.
// GET /api/pairs?series=&first=&second=&from=&to=
func (h *AnalysisHandler) ConsecutivePairs(w http.ResponseWriter, r *http.Request) {
	series := queryParam(r, "series", "LOTTO ACTIVO")
	first := queryParam(r, "first", "1")
	second := queryParam(r, "second", "2")
	from := queryParam(r, "from", daysAgo(30))
	to := queryParam(r, "to", today())

	search, err := h.engine.SearchConsecutivePairs(r.Context(), series, first, second, from, to)
	if respondAnalysisError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, search)
}
