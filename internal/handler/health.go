package handler

import (
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
)

// Version is the reported API version.
const Version = "0.1.0"

// HealthHandler serves the health check endpoint.
type HealthHandler struct {
	clock clockwork.Clock
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(clock clockwork.Clock) *HealthHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HealthHandler{clock: clock}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Health reports the current status of the API.
// Always returns 200 while the process is serving requests.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: h.clock.Now().UTC().Format(time.RFC3339Nano),
		Version:   Version,
	}
	writeJSON(w, http.StatusOK, response)
}
