// Package distance precomputes all-pairs travel cost between waypoints
// and backs O(1) lookups during search.
package distance

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"geocache-router/internal/geo"
	"geocache-router/internal/models"
)

// Leg is the precomputed cost of moving from one waypoint to another.
// Distance is symmetric; elevation gain is directional.
type Leg struct {
	DistanceMeters      float64
	ElevationGainMeters float64
}

// ErrPairNotFound is returned when a lookup names a waypoint absent
// from the matrix. This indicates a programming error upstream: the
// matrix covers every waypoint of the registry it was built from.
type ErrPairNotFound struct {
	From string
	To   string
}

func (e *ErrPairNotFound) Error() string {
	return fmt.Sprintf("no matrix entry for %q -> %q", e.From, e.To)
}

// Matrix holds the precomputed legs for every ordered waypoint pair,
// including self-pairs. Built once at startup and read-only thereafter,
// so it is shared by all search workers without locking.
type Matrix struct {
	legs map[string]map[string]Leg
}

// Build computes the full matrix from the registry. Cost is O(n²) in
// waypoint count, which is fine for the tens-to-hundreds of waypoints a
// cache run has. Distances are filled from the symmetric upper
// triangle across a worker pool; directional elevation gains are cheap
// and derived per ordered pair.
func Build(registry models.Registry) *Matrix {
	start := time.Now()
	names := registry.Names()
	n := len(names)

	dists := make([][]float64, n)
	for i := range dists {
		dists[i] = make([]float64, n)
	}

	type pair struct{ i, j int }
	tasks := make(chan pair, n)

	var wg sync.WaitGroup
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				d := geo.Distance(registry[names[t.i]].GetCoords(), registry[names[t.j]].GetCoords())
				dists[t.i][t.j] = d
				dists[t.j][t.i] = d
			}
		}()
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			tasks <- pair{i, j}
		}
	}
	close(tasks)
	wg.Wait()

	legs := make(map[string]map[string]Leg, n)
	for i, from := range names {
		row := make(map[string]Leg, n)
		for j, to := range names {
			row[to] = Leg{
				DistanceMeters:      dists[i][j],
				ElevationGainMeters: geo.ElevationGain(registry[from].Elevation, registry[to].Elevation),
			}
		}
		legs[from] = row
	}

	log.Printf("[TIMING] Distance matrix build: waypoints=%d pairs=%d elapsed=%v", n, n*n, time.Since(start))
	return &Matrix{legs: legs}
}

// Lookup returns the precomputed leg from one waypoint to another.
func (m *Matrix) Lookup(from, to string) (Leg, error) {
	row, ok := m.legs[from]
	if !ok {
		return Leg{}, &ErrPairNotFound{From: from, To: to}
	}
	leg, ok := row[to]
	if !ok {
		return Leg{}, &ErrPairNotFound{From: from, To: to}
	}
	return leg, nil
}

// Distance returns the great-circle distance in meters between two
// waypoints.
func (m *Matrix) Distance(from, to string) (float64, error) {
	leg, err := m.Lookup(from, to)
	if err != nil {
		return 0, err
	}
	return leg.DistanceMeters, nil
}

// ElevationGain returns the positive elevation gain in meters when
// moving from one waypoint to another.
func (m *Matrix) ElevationGain(from, to string) (float64, error) {
	leg, err := m.Lookup(from, to)
	if err != nil {
		return 0, err
	}
	return leg.ElevationGainMeters, nil
}

// Size returns the number of waypoints covered by the matrix.
func (m *Matrix) Size() int {
	return len(m.legs)
}
