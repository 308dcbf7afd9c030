// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/usersvc/usersvc/internal/handler/dto"
	"github.com/usersvc/usersvc/internal/middleware"
)

// Handler serves the static informational endpoints.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Root is the welcome endpoint with API information.
// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message":    "Welcome to the FastAPI Demo",
		"docs_url":   "/docs",
		"health_url": "/health",
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Detail: "Not Found"})
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, dto.ErrorResponse{Detail: "Method Not Allowed"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already written; nothing useful left to do.
		_ = err
	}
}

// writeError writes a detail-shaped error response.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, dto.ErrorResponse{Detail: detail})
}

// requestID returns the request ID injected by the middleware, if any.
func requestID(r *http.Request) string {
	return middleware.GetRequestID(r.Context())
}
