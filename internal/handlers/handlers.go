package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"geocache-router/internal/database"
	"geocache-router/internal/geojson"
	"geocache-router/internal/models"
	"geocache-router/internal/route"
)

// Handler provides common handler utilities and dependencies
type Handler struct {
	DB        database.DataStore
	Registry  models.Registry
	Evaluator *route.Evaluator
	Writer    *geojson.Writer
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// handleNotFound handles 404 errors
func (h *Handler) handleNotFound(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusNotFound, "NOT_FOUND", message)
}

// handleValidationError handles 400 errors
func (h *Handler) handleValidationError(w http.ResponseWriter, message string) {
	h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// handleInternalError handles 500 errors
func (h *Handler) handleInternalError(w http.ResponseWriter, err error) {
	log.Printf("[ERROR] Internal error: %v", err)
	h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

// HandleHealthCheck handles GET /api/v1/health
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(r.Context()); err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "UNHEALTHY", "Data store unavailable")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleListWaypoints handles GET /api/v1/waypoints
func (h *Handler) HandleListWaypoints(w http.ResponseWriter, r *http.Request) {
	waypoints := make([]*models.Waypoint, 0, len(h.Registry))
	for _, name := range h.Registry.Names() {
		waypoints = append(waypoints, h.Registry[name])
	}
	h.writeJSON(w, http.StatusOK, waypoints)
}
