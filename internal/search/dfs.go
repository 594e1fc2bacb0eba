package search

import (
	"context"

	"geocache-router/internal/models"
	"geocache-router/internal/route"
)

// DepthFirst builds one candidate path by exhaustive budget-constrained
// exploration of a small candidate set. It is exponential in the size
// of that set, which is why the planner hands it windows of ~10
// waypoints rather than the whole registry.
type DepthFirst struct {
	ev     *route.Evaluator
	budget models.SearchBudget
}

// NewDepthFirst creates a constrained depth-first path builder.
func NewDepthFirst(ev *route.Evaluator, budget models.SearchBudget) *DepthFirst {
	return &DepthFirst{ev: ev, budget: budget}
}

// frame is one state of the traversal: the partial path built so far
// and the candidates not yet visited on it.
type frame struct {
	path      models.Path
	remaining []string
}

// Build explores every path from Start over the given candidates and
// returns the best terminal result. Candidates may or may not include
// Finish; it is always added so every branch can terminate.
//
// Terminal semantics:
//   - over either budget: terminal-reject, kept with score forced to 0
//     so it can still participate in best-so-far comparisons;
//   - ends at Finish: terminal-accept with the real score;
//   - candidates exhausted before Finish: zero-score terminal.
//
// The traversal uses an explicit work stack rather than recursion, so
// enlarged candidate sets cannot exhaust the call stack.
func (d *DepthFirst) Build(ctx context.Context, candidates []string) (*models.PathResult, error) {
	remaining := make([]string, 0, len(candidates)+1)
	hasFinish := false
	for _, c := range candidates {
		if c == models.StartName {
			continue
		}
		if c == models.FinishName {
			hasFinish = true
		}
		remaining = append(remaining, c)
	}
	if !hasFinish {
		remaining = append(remaining, models.FinishName)
	}

	stack := []frame{{path: models.Path{models.StartName}, remaining: remaining}}
	var best *models.PathResult

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		res, err := d.ev.Evaluate(f.path)
		if err != nil {
			return nil, err
		}

		switch {
		case res.DistanceMeters > d.budget.MaxDistanceMeters ||
			res.ElevationGainMeters > d.budget.MaxElevationGainMeters:
			res.Score = 0 // terminal-reject sentinel
			best = route.BestFeasible(best, res, d.budget)

		case f.path.Complete():
			best = route.BestFeasible(best, res, d.budget)

		case len(f.remaining) == 0:
			res.Score = 0
			best = route.BestFeasible(best, res, d.budget)

		default:
			for i, c := range f.remaining {
				child := make(models.Path, len(f.path)+1)
				copy(child, f.path)
				child[len(f.path)] = c

				rest := make([]string, 0, len(f.remaining)-1)
				rest = append(rest, f.remaining[:i]...)
				rest = append(rest, f.remaining[i+1:]...)

				stack = append(stack, frame{path: child, remaining: rest})
			}
		}
	}

	return best, nil
}
