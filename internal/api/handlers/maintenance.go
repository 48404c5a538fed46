package handlers

import (
	"net/http"

	"github.com/datoactivo/backend/internal/results"
	"github.com/datoactivo/backend/pkg/logger"
)

// MaintenanceHandler serves result-store maintenance endpoints.
type MaintenanceHandler struct {
	store  *results.Repository
	logger *logger.Logger
}

// NewMaintenanceHandler creates a new maintenance handler.
func NewMaintenanceHandler(store *results.Repository, log *logger.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{store: store, logger: log}
}

// Duplicates reports duplicate (date, series, slot) groups.
// GET /api/maintenance/duplicates
func (h *MaintenanceHandler) Duplicates(w http.ResponseWriter, r *http.Request) {
	report, err := h.store.DetectDuplicates(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to detect duplicates")
		respondError(w, http.StatusInternalServerError, "failed to detect duplicates")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// PurgeDuplicates deletes duplicate rows, keeping the newest per key.
// POST /api/maintenance/duplicates/purge
func (h *MaintenanceHandler) PurgeDuplicates(w http.ResponseWriter, r *http.Request) {
	removed, err := h.store.PurgeDuplicates(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to purge duplicates")
		respondError(w, http.StatusInternalServerError, "failed to purge duplicates")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"removed": removed,
	})
}
