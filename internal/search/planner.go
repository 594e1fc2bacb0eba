package search

import (
	"context"
	"log"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"geocache-router/internal/models"
	"geocache-router/internal/route"
)

// PlannerConfig controls the random-restart orchestration.
type PlannerConfig struct {
	// WindowSize is how many shuffled waypoints each DFS invocation
	// sees. Exhaustive DFS is exponential in this number.
	WindowSize int
	// Stride is the shuffle offset between consecutive windows;
	// strides smaller than the window size make windows overlap.
	Stride int
	// Workers bounds the number of concurrent window pipelines.
	// Defaults to the CPU count.
	Workers int
	// Seed fixes the shuffle for reproducible plans.
	Seed int64
}

// DefaultPlannerConfig returns the reference windowing: size 10,
// stride 5, one worker per CPU, time-based seed.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		WindowSize: 10,
		Stride:     5,
		Workers:    runtime.NumCPU(),
		Seed:       time.Now().UnixNano(),
	}
}

// Planner runs the full random-restart search: shuffle the waypoint
// universe, cut it into overlapping windows, seed each window with
// constrained DFS, refine each seed with the hill climber, and fold
// everything down to the single best result.
//
// Each window pipeline is independent and pure over the shared
// read-only matrix and registry, so they fan out across a worker pool;
// the fold (best-of-two) is associative and commutative with a nil
// identity, so arrival order does not matter.
type Planner struct {
	ev       *route.Evaluator
	budget   models.SearchBudget
	cfg      PlannerConfig
	observer Observer
}

// NewPlanner creates a random-restart planner. Zero config fields fall
// back to the defaults; a nil observer becomes NopObserver.
func NewPlanner(ev *route.Evaluator, budget models.SearchBudget, cfg PlannerConfig, obs Observer) *Planner {
	def := DefaultPlannerConfig()
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = def.WindowSize
	}
	if cfg.Stride <= 0 {
		cfg.Stride = def.Stride
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if obs == nil {
		obs = NopObserver{}
	}
	return &Planner{ev: ev, budget: budget, cfg: cfg, observer: obs}
}

// Plan runs the full search and returns the best result found. With no
// interior waypoints it degenerates to the direct Start-Finish path.
func (p *Planner) Plan(ctx context.Context) (*models.PathResult, error) {
	start := time.Now()

	interior := p.ev.Registry().Interior()
	rng := rand.New(rand.NewSource(p.cfg.Seed))
	shuffled := make([]string, len(interior))
	copy(shuffled, interior)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	windows := p.windows(shuffled)
	log.Printf("[PLAN] Starting search: waypoints=%d windows=%d window_size=%d stride=%d workers=%d seed=%d",
		len(interior), len(windows), p.cfg.WindowSize, p.cfg.Stride, p.cfg.Workers, p.cfg.Seed)

	type outcome struct {
		res *models.PathResult
		err error
	}

	jobs := make(chan []string)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	for w := 0; w < p.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for window := range jobs {
				res, err := p.runWindow(ctx, window)
				outcomes <- outcome{res: res, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, window := range windows {
			select {
			case jobs <- window:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var best *models.PathResult
	var firstErr error
	completed := 0
	for o := range outcomes {
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
			}
			continue
		}
		best = route.BestFeasible(best, o.res, p.budget)
		completed++
		p.observer.Progress(Event{Stage: "plan", Iteration: completed, Result: best})
	}
	if firstErr == nil {
		firstErr = ctx.Err()
	}
	if firstErr != nil {
		return nil, firstErr
	}

	log.Printf("[TIMING] Plan complete: windows=%d score=%d elapsed=%v", completed, bestScore(best), time.Since(start))
	return best, nil
}

// runWindow executes one DFS-seed plus hill-climb pipeline.
func (p *Planner) runWindow(ctx context.Context, window []string) (*models.PathResult, error) {
	dfs := NewDepthFirst(p.ev, p.budget)
	seed, err := dfs.Build(ctx, window)
	if err != nil {
		return nil, err
	}

	hc := NewHillClimber(p.ev, p.budget, p.observer)
	return hc.Refine(ctx, seed.Path)
}

// windows cuts the shuffled universe into overlapping windows. An empty
// universe still yields one empty window so the degenerate Start-Finish
// path is produced.
func (p *Planner) windows(shuffled []string) [][]string {
	if len(shuffled) == 0 {
		return [][]string{{}}
	}

	var out [][]string
	for i := 0; i < len(shuffled); i += p.cfg.Stride {
		end := i + p.cfg.WindowSize
		if end > len(shuffled) {
			end = len(shuffled)
		}
		window := make([]string, end-i)
		copy(window, shuffled[i:end])
		out = append(out, window)
		if end == len(shuffled) {
			break
		}
	}
	return out
}

func bestScore(r *models.PathResult) int {
	if r == nil {
		return 0
	}
	return r.Score
}
