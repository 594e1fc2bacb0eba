package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"geocache-router/internal/models"
)

// HandleGetSettings handles GET /api/v1/settings
func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.DB.Settings().Get(r.Context())
	if err != nil {
		log.Printf("[ERROR] Failed to get settings: err=%v", err)
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, settings)
}

// HandleUpdateSettings handles PUT /api/v1/settings
func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[HTTP] PUT /api/v1/settings: invalid_body err=%v", err)
		h.handleValidationError(w, "Invalid request body")
		return
	}

	if req.HikingSpeedKmh <= 0 || req.TimeBudgetHours <= 0 {
		h.handleValidationError(w, "Hiking speed and time budget must be positive")
		return
	}
	if req.MaxElevationGainMeters < 0 {
		h.handleValidationError(w, "Max elevation gain must not be negative")
		return
	}
	if req.WindowSize <= 0 || req.WindowStride <= 0 {
		h.handleValidationError(w, "Window size and stride must be positive")
		return
	}

	if err := h.DB.Settings().Update(r.Context(), &req); err != nil {
		log.Printf("[ERROR] Failed to update settings: err=%v", err)
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, &req)
}
