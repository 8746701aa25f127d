// Package health provides the health check endpoint for the API.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Checker reports whether the backing document store is usable.
type Checker interface {
	Check(ctx context.Context) error
}

// Handler serves the health endpoint.
type Handler struct {
	environment string
	store       Checker
}

// NewHandler creates a new health handler. store may be nil when no
// backing store is wired, in which case its status reads "not configured".
func NewHandler(environment string, store Checker) *Handler {
	return &Handler{
		environment: environment,
		store:       store,
	}
}

// HealthResponse reports process and store status.
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Store       string `json:"store"`
	Environment string `json:"environment"`
}

// Health returns process health plus backing store connectivity.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Store:       "connected",
		Environment: h.environment,
	}

	switch {
	case h.store == nil:
		resp.Store = "not configured"
	default:
		if err := h.store.Check(ctx); err != nil {
			resp.Status = "degraded"
			resp.Store = "error: " + err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
