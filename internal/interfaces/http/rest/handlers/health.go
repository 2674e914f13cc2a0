package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	environment string
	started     time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment, started: time.Now()}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":      "healthy",
		"service":     "calorifit-intake",
		"environment": h.environment,
		"uptime":      time.Since(h.started).Round(time.Second).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
