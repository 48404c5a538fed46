package handlers

import (
	"net/http"
	"time"

	"github.com/datoactivo/backend/internal/analysis"
	"github.com/datoactivo/backend/internal/contracts"
	"github.com/datoactivo/backend/pkg/logger"
	"github.com/datoactivo/backend/pkg/redis"
)

// ForecastHandler serves the multi-signal fused forecast, cached between
// refresh cycles.
type ForecastHandler struct {
	engine *analysis.Engine
	cache  *redis.Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewForecastHandler creates a new forecast handler.
func NewForecastHandler(engine *analysis.Engine, cache *redis.Cache, ttl time.Duration, log *logger.Logger) *ForecastHandler {
	return &ForecastHandler{engine: engine, cache: cache, ttl: ttl, logger: log}
}

// Fused runs the multi-signal fusion.
// GET /api/forecast/fused?series=&reference_date=&from=&to=
func (h *ForecastHandler) Fused(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	series := queryParam(r, "series", "LOTTO ACTIVO")
	refDate := queryParam(r, "reference_date", today())
	from := queryParam(r, "from", "")
	to := queryParam(r, "to", "")

	if from == "" || to == "" {
		respondError(w, http.StatusBadRequest, "from and to are required")
		return
	}

	key := redis.FusedForecastKey(series, refDate, from, to)
	if h.cache != nil {
		var cached contracts.FusedForecast
		if hit, err := h.cache.Get(ctx, key, &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, &cached)
			return
		}
	}

	forecast, err := h.engine.FusedForecast(ctx, series, refDate, from, to)
	if respondAnalysisError(w, err) {
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, forecast, h.ttl); err != nil {
			h.logger.WithError(err).Warn("Failed to cache fused forecast")
		}
	}

	respondJSON(w, http.StatusOK, forecast)
}
