package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"geocache-router/internal/models"
	"geocache-router/internal/route"
	"geocache-router/internal/search"
)

// SearchRequest is the body of POST /api/v1/search. With no Path the
// full random-restart planner runs; with a Path the listed interior
// waypoints are wrapped in Start/Finish and refined directly.
type SearchRequest struct {
	Path      []string `json:"path,omitempty"`
	Seed      *int64   `json:"seed,omitempty"`
	Optimizer string   `json:"optimizer,omitempty"` // "hillclimb" (default) or "tabu", manual paths only
}

// SearchResponse is the result of a search run.
type SearchResponse struct {
	RunID      int64              `json:"run_id"`
	Result     *models.PathResult `json:"result"`
	Feasible   bool               `json:"feasible"`
	OutputFile string             `json:"output_file"`
}

// HandleSearch handles POST /api/v1/search
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
			h.handleValidationError(w, "Invalid request body")
			return
		}
	}

	seen := make(map[string]struct{}, len(req.Path))
	for _, name := range req.Path {
		if _, err := h.Registry.Get(name); err != nil {
			h.handleValidationError(w, "Unknown waypoint: "+name)
			return
		}
		if name == models.StartName || name == models.FinishName {
			h.handleValidationError(w, "Path must list interior waypoints only")
			return
		}
		if _, dup := seen[name]; dup {
			h.handleValidationError(w, "Duplicate waypoint: "+name)
			return
		}
		seen[name] = struct{}{}
	}

	settings, err := h.DB.Settings().Get(r.Context())
	if err != nil {
		h.handleInternalError(w, err)
		return
	}
	budget := models.BudgetFromSettings(settings)

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	var result *models.PathResult
	optimizer := "plan"

	if len(req.Path) == 0 {
		log.Printf("[HTTP] POST /api/v1/search: full plan seed=%d", seed)
		planner := search.NewPlanner(h.Evaluator, budget, search.PlannerConfig{
			WindowSize: settings.WindowSize,
			Stride:     settings.WindowStride,
			Seed:       seed,
		}, search.LogObserver{})
		result, err = planner.Plan(r.Context())
	} else {
		manual := make(models.Path, 0, len(req.Path)+2)
		manual = append(manual, models.StartName)
		manual = append(manual, req.Path...)
		manual = append(manual, models.FinishName)

		switch req.Optimizer {
		case "", "hillclimb":
			optimizer = "hillclimb"
			log.Printf("[HTTP] POST /api/v1/search: manual hillclimb path=%s", manual.Key())
			hc := search.NewHillClimber(h.Evaluator, budget, search.LogObserver{})
			result, err = hc.Refine(r.Context(), manual)
		case "tabu":
			optimizer = "tabu"
			log.Printf("[HTTP] POST /api/v1/search: manual tabu path=%s", manual.Key())
			ts := search.NewTabuSearch(h.Evaluator, budget, search.TabuConfig{}, search.LogObserver{})
			result, err = ts.Optimize(r.Context(), manual)
		default:
			h.handleValidationError(w, "Unknown optimizer: "+req.Optimizer)
			return
		}
	}
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	outputFile, err := h.Writer.Write(result, h.Registry)
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	run, err := h.DB.Runs().Create(r.Context(), &models.Run{
		Path:                result.Path,
		Score:               result.Score,
		DistanceMeters:      result.DistanceMeters,
		ElevationGainMeters: result.ElevationGainMeters,
		Optimizer:           optimizer,
		OutputFile:          outputFile,
	})
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, SearchResponse{
		RunID:      run.ID,
		Result:     result,
		Feasible:   route.Feasible(result, budget),
		OutputFile: outputFile,
	})
}
