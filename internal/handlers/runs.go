package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"geocache-router/internal/database"
)

// HandleListRuns handles GET /api/v1/runs
func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	runs, total, err := h.DB.Runs().List(r.Context(), limit, offset)
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"total": total,
	})
}

// HandleRunByID handles GET and DELETE /api/v1/runs/{id}
func (h *Handler) HandleRunByID(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/runs/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.handleValidationError(w, "Invalid run id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		run, err := h.DB.Runs().GetByID(r.Context(), id)
		if errors.Is(err, database.ErrNotFound) {
			h.handleNotFound(w, "Run not found")
			return
		}
		if err != nil {
			h.handleInternalError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, run)

	case http.MethodDelete:
		err := h.DB.Runs().Delete(r.Context(), id)
		if errors.Is(err, database.ErrNotFound) {
			h.handleNotFound(w, "Run not found")
			return
		}
		if err != nil {
			h.handleInternalError(w, err)
			return
		}
		log.Printf("[HTTP] DELETE /api/v1/runs/%d", id)
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
