package search

import (
	"log"

	"geocache-router/internal/models"
)

// Event describes one progress step of an optimizer. Stage names the
// phase ("dfs", "hillclimb", "tabu", "plan"); Iteration counts passes
// or rounds within it.
type Event struct {
	Stage     string
	Iteration int
	Result    *models.PathResult
}

// Observer receives progress events from the optimizers. The search
// core never prints directly; narration is an optional hook so the
// algorithms stay pure and testable.
type Observer interface {
	Progress(e Event)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) Progress(Event) {}

// LogObserver narrates progress via the standard logger.
type LogObserver struct{}

func (LogObserver) Progress(e Event) {
	if e.Result == nil {
		log.Printf("[SEARCH] stage=%s iteration=%d", e.Stage, e.Iteration)
		return
	}
	log.Printf("[SEARCH] stage=%s iteration=%d score=%d distance=%.0f elevation=%.0f",
		e.Stage, e.Iteration, e.Result.Score, e.Result.DistanceMeters, e.Result.ElevationGainMeters)
}
