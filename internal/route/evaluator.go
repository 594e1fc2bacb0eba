// Package route evaluates paths against the distance matrix and the
// waypoint registry.
package route

import (
	"geocache-router/internal/distance"
	"geocache-router/internal/models"
)

// Evaluator computes a path's total distance, elevation gain and score.
// All three are pure functions of (path, matrix, registry).
type Evaluator struct {
	matrix   *distance.Matrix
	registry models.Registry
}

// NewEvaluator creates an evaluator over the given matrix and registry.
func NewEvaluator(matrix *distance.Matrix, registry models.Registry) *Evaluator {
	return &Evaluator{matrix: matrix, registry: registry}
}

// Registry returns the registry the evaluator was built over.
func (e *Evaluator) Registry() models.Registry {
	return e.registry
}

// TotalDistance sums consecutive-pair distances. Zero for paths of
// fewer than two elements.
func (e *Evaluator) TotalDistance(path models.Path) (float64, error) {
	total := 0.0
	for i := 1; i < len(path); i++ {
		d, err := e.matrix.Distance(path[i-1], path[i])
		if err != nil {
			return 0, err
		}
		total += d
	}
	return total, nil
}

// TotalElevationGain sums consecutive-pair positive elevation gains.
// Directional: reversing a path generally changes the result.
func (e *Evaluator) TotalElevationGain(path models.Path) (float64, error) {
	total := 0.0
	for i := 1; i < len(path); i++ {
		g, err := e.matrix.ElevationGain(path[i-1], path[i])
		if err != nil {
			return 0, err
		}
		total += g
	}
	return total, nil
}

// TotalScore sums the point values of every waypoint on the path,
// including Start and Finish (conventionally 0 points, not enforced).
func (e *Evaluator) TotalScore(path models.Path) (int, error) {
	total := 0
	for _, name := range path {
		w, err := e.registry.Get(name)
		if err != nil {
			return 0, err
		}
		total += w.Points
	}
	return total, nil
}

// Evaluate computes a full PathResult snapshot for the path.
func (e *Evaluator) Evaluate(path models.Path) (*models.PathResult, error) {
	dist, err := e.TotalDistance(path)
	if err != nil {
		return nil, err
	}
	gain, err := e.TotalElevationGain(path)
	if err != nil {
		return nil, err
	}
	score, err := e.TotalScore(path)
	if err != nil {
		return nil, err
	}
	return &models.PathResult{
		Path:                path.Clone(),
		DistanceMeters:      dist,
		ElevationGainMeters: gain,
		Score:               score,
	}, nil
}

// Feasible reports whether the result is a complete path within both
// budget limits.
func Feasible(r *models.PathResult, budget models.SearchBudget) bool {
	if r == nil || !r.Path.Complete() {
		return false
	}
	return r.DistanceMeters <= budget.MaxDistanceMeters &&
		r.ElevationGainMeters <= budget.MaxElevationGainMeters
}

// Better reports whether a is strictly preferable to b. The order is
// the documented deterministic one used everywhere results are
// compared: higher score, then lower distance, then lexicographically
// smaller path key. A nil result loses to any non-nil result, which
// makes nil the fold identity.
func Better(a, b *models.PathResult) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.DistanceMeters != b.DistanceMeters {
		return a.DistanceMeters < b.DistanceMeters
	}
	return a.Path.Key() < b.Path.Key()
}

// Best returns the preferable of two results under Better.
func Best(a, b *models.PathResult) *models.PathResult {
	if Better(b, a) {
		return b
	}
	return a
}

// BestFeasible returns the preferable of two results, preferring a
// budget-feasible one over an infeasible one regardless of the usual
// order. Within the same class Best decides. This keeps a short
// zero-score rejected partial from shadowing a feasible optimum on the
// distance tie-break.
func BestFeasible(a, b *models.PathResult, budget models.SearchBudget) *models.PathResult {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	af, bf := Feasible(a, budget), Feasible(b, budget)
	if af != bf {
		if af {
			return a
		}
		return b
	}
	return Best(a, b)
}
