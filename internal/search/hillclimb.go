package search

import (
	"context"
	"sort"

	"geocache-router/internal/models"
	"geocache-router/internal/route"
)

// HillClimber refines a full path by repeatedly trying single-waypoint
// insertions and replacements, accepting only moves that keep the path
// feasible and strictly improve it.
type HillClimber struct {
	ev       *route.Evaluator
	budget   models.SearchBudget
	observer Observer
}

// NewHillClimber creates a hill-climb refiner. A nil observer is
// replaced by NopObserver.
func NewHillClimber(ev *route.Evaluator, budget models.SearchBudget, obs Observer) *HillClimber {
	if obs == nil {
		obs = NopObserver{}
	}
	return &HillClimber{ev: ev, budget: budget, observer: obs}
}

// Refine runs full passes over the path until a fixed point is reached:
// a pass that reproduces its input exactly. Each pass can only hold or
// strictly improve the score (or shorten distance on a score tie), and
// paths of bounded length are finite, so this terminates.
//
// A converged path that still fails the budget (an infeasible seed no
// move could repair) carries the zero-score sentinel, the same
// convention as a rejected terminal in the path builder.
//
// Applying Refine to an already-converged result returns an identical
// result.
func (h *HillClimber) Refine(ctx context.Context, path models.Path) (*models.PathResult, error) {
	current := path.Clone()

	for pass := 1; ; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, err := h.pass(ctx, current)
		if err != nil {
			return nil, err
		}

		res, err := h.ev.Evaluate(next)
		if err != nil {
			return nil, err
		}
		h.observer.Progress(Event{Stage: "hillclimb", Iteration: pass, Result: res})

		if next.Key() == current.Key() {
			if !route.Feasible(res, h.budget) {
				res.Score = 0
			}
			return res, nil
		}
		current = next
	}
}

// candidate is one move considered at a split point: the full path it
// would produce, the waypoint consumed into the left side, and the
// right-hand tail that remains afterwards.
type candidate struct {
	res      *models.PathResult
	consumed string
	tail     models.Path
}

// pass slides a (left, right) split from the first element to the end.
// At every split point it considers advancing unchanged (no-op),
// inserting any available waypoint before the tail, or substituting one
// for the tail's head, and keeps the best qualified candidate. The
// consumed waypoint leaves the availability pool; a replaced-out
// waypoint does not return to it.
func (h *HillClimber) pass(ctx context.Context, path models.Path) (models.Path, error) {
	avail := make(map[string]struct{})
	for name := range h.ev.Registry() {
		if !path.Contains(name) {
			avail[name] = struct{}{}
		}
	}

	left := models.Path{path[0]}
	right := path[1:].Clone()

	for len(right) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		noopRes, err := h.ev.Evaluate(join(left, "", right))
		if err != nil {
			return nil, err
		}
		best := candidate{res: noopRes, consumed: right[0], tail: right[1:].Clone()}

		names := make([]string, 0, len(avail))
		for name := range avail {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, w := range names {
			insRes, err := h.ev.Evaluate(join(left, w, right))
			if err != nil {
				return nil, err
			}
			if route.Feasible(insRes, h.budget) && beats(insRes, best.res) {
				best = candidate{res: insRes, consumed: w, tail: right.Clone()}
			}

			replRes, err := h.ev.Evaluate(join(left, w, right[1:]))
			if err != nil {
				return nil, err
			}
			if route.Feasible(replRes, h.budget) && beats(replRes, best.res) {
				best = candidate{res: replRes, consumed: w, tail: right[1:].Clone()}
			}
		}

		left = append(left.Clone(), best.consumed)
		right = best.tail
		delete(avail, best.consumed)
	}

	return left, nil
}

// beats reports whether a wins over b under the hill-climb acceptance
// rule: strictly higher score, or equal score with strictly lower
// distance. Anything else keeps b.
func beats(a, b *models.PathResult) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.DistanceMeters < b.DistanceMeters
}

// join builds left ++ [mid] ++ right, skipping mid when empty.
func join(left models.Path, mid string, right models.Path) models.Path {
	out := make(models.Path, 0, len(left)+len(right)+1)
	out = append(out, left...)
	if mid != "" {
		out = append(out, mid)
	}
	out = append(out, right...)
	return out
}
