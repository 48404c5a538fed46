package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/datoactivo/backend/internal/contracts"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondAnalysisError maps engine errors onto HTTP statuses: bad input is
// 400, missing data is 404, everything else is 500 with a generic message.
func respondAnalysisError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	var inputErr *contracts.InputError
	if errors.As(err, &inputErr) {
		respondError(w, http.StatusBadRequest, inputErr.Reason)
		return true
	}

	var noData *contracts.NoDataError
	if errors.As(err, &noData) {
		respondError(w, http.StatusNotFound, noData.Reason)
		return true
	}

	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// Query parameter helpers. Dates travel as dd/mm/yyyy.

func queryParam(r *http.Request, name, fallback string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return fallback
}

func queryFloat(r *http.Request, name string, fallback float64) float64 {
	if v := r.URL.Query().Get(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func queryInt(r *http.Request, name string, fallback int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func today() string {
	return time.Now().Format(contracts.DisplayDateLayout)
}

func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(contracts.DisplayDateLayout)
}
