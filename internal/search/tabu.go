package search

import (
	"context"
	"sort"

	"geocache-router/internal/models"
	"geocache-router/internal/route"
)

// TabuConfig exposes the tabu-search bounds as configuration rather
// than hardcoded constants.
type TabuConfig struct {
	// Capacity bounds the tabu list to the most recently chosen paths.
	Capacity int
	// StallLimit stops the search after this many consecutive rounds
	// without the best-ever result improving.
	StallLimit int
}

// DefaultTabuConfig returns the reference bounds: 50 remembered paths,
// 100 stale rounds.
func DefaultTabuConfig() TabuConfig {
	return TabuConfig{Capacity: 50, StallLimit: 100}
}

// TabuSearch explores a broader neighborhood than the hill climber
// (insert, replace, remove 1-3, reverse-middle) and forbids cycling
// back to recently chosen paths, letting it walk through worse states
// to escape local optima.
type TabuSearch struct {
	ev       *route.Evaluator
	budget   models.SearchBudget
	cfg      TabuConfig
	observer Observer
}

// NewTabuSearch creates a tabu-search optimizer. Zero config fields
// fall back to the defaults; a nil observer becomes NopObserver.
func NewTabuSearch(ev *route.Evaluator, budget models.SearchBudget, cfg TabuConfig, obs Observer) *TabuSearch {
	def := DefaultTabuConfig()
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.StallLimit <= 0 {
		cfg.StallLimit = def.StallLimit
	}
	if obs == nil {
		obs = NopObserver{}
	}
	return &TabuSearch{ev: ev, budget: budget, cfg: cfg, observer: obs}
}

// tabuList is a bounded most-recent-first sequence of chosen path keys.
type tabuList struct {
	keys     []string
	capacity int
}

func (t *tabuList) push(key string) {
	t.keys = append([]string{key}, t.keys...)
	if len(t.keys) > t.capacity {
		t.keys = t.keys[:t.capacity]
	}
}

func (t *tabuList) contains(key string) bool {
	for _, k := range t.keys {
		if k == key {
			return true
		}
	}
	return false
}

// Optimize walks the neighborhood from the seed path and returns the
// best result ever seen. It stops when StallLimit consecutive rounds
// pass without improvement, or when every neighbor is infeasible or
// tabu'd.
func (t *TabuSearch) Optimize(ctx context.Context, seed models.Path) (*models.PathResult, error) {
	bestEver, err := t.ev.Evaluate(seed)
	if err != nil {
		return nil, err
	}
	if !route.Feasible(bestEver, t.budget) {
		bestEver.Score = 0 // sentinel: never report points for a path over budget
	}

	current := seed.Clone()
	tabu := &tabuList{capacity: t.cfg.Capacity}
	tabu.push(current.Key())

	stale := 0
	for round := 1; stale < t.cfg.StallLimit; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chosen, err := t.bestNeighbor(current, tabu)
		if err != nil {
			return nil, err
		}
		if chosen == nil {
			break // candidate set empty or everything tabu'd
		}

		if route.Better(chosen, bestEver) {
			bestEver = chosen
			stale = 0
			t.observer.Progress(Event{Stage: "tabu", Iteration: round, Result: bestEver})
		} else {
			stale++
		}

		tabu.push(chosen.Path.Key())
		current = chosen.Path
	}

	return bestEver, nil
}

// bestNeighbor generates the full neighborhood of the path, filters it
// to feasible non-tabu candidates, and picks the best under the
// deterministic result order. Returns nil when nothing survives.
func (t *TabuSearch) bestNeighbor(path models.Path, tabu *tabuList) (*models.PathResult, error) {
	neighbors := t.neighbors(path)

	var best *models.PathResult
	for _, n := range neighbors {
		if tabu.contains(n.Key()) {
			continue
		}
		res, err := t.ev.Evaluate(n)
		if err != nil {
			return nil, err
		}
		if !route.Feasible(res, t.budget) {
			continue
		}
		best = route.Best(best, res)
	}
	return best, nil
}

// neighbors produces the neighborhood: at every split point an
// insertion and replacement for each available waypoint plus removal of
// the next 1, 2 or 3 waypoints, then a reverse-middle variant of every
// neighbor already produced. Infeasible members (including removals
// that strip Finish) are filtered later.
func (t *TabuSearch) neighbors(path models.Path) []models.Path {
	avail := make([]string, 0)
	for name := range t.ev.Registry() {
		if !path.Contains(name) {
			avail = append(avail, name)
		}
	}
	sort.Strings(avail)

	var out []models.Path
	for i := 1; i < len(path); i++ {
		left := path[:i]
		right := path[i:]

		for _, w := range avail {
			out = append(out, join(left, w, right))
			out = append(out, join(left, w, right[1:]))
		}

		for k := 1; k <= 3 && i+k <= len(path); k++ {
			out = append(out, join(left, "", path[i+k:]))
		}
	}

	generated := len(out)
	for i := 0; i < generated; i++ {
		out = append(out, out[i].ReverseMiddle())
	}
	return out
}
