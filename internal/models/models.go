package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Well-known waypoint names. Every registry contains exactly one of each.
const (
	StartName  = "Start"
	FinishName = "Finish"
)

// Coordinates represents a geographic point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Waypoint is a named geocache with a position, elevation and point value.
// A missing elevation in the source file is loaded as 0.
type Waypoint struct {
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Elevation float64 `json:"elevation"`
	Points    int     `json:"points"`
}

// GetCoords returns the coordinates of the waypoint
func (w *Waypoint) GetCoords() Coordinates {
	return Coordinates{Lat: w.Lat, Lng: w.Lng}
}

// Registry is the read-only set of loaded waypoints, keyed by name.
// It is built once per run and never mutated afterwards, so it is safe
// to share across search workers without locking.
type Registry map[string]*Waypoint

// Get returns the waypoint with the given name. A miss indicates a
// data-integrity problem upstream, not a user error.
func (r Registry) Get(name string) (*Waypoint, error) {
	w, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("waypoint %q: %w", name, ErrWaypointNotFound)
	}
	return w, nil
}

// Names returns all waypoint names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Interior returns all waypoint names except Start and Finish, sorted.
func (r Registry) Interior() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		if name == StartName || name == FinishName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Path is an ordered sequence of waypoint names. The first element is
// Start; a complete path ends in Finish.
type Path []string

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Last returns the final waypoint name, or "" for an empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Complete reports whether the path ends at Finish.
func (p Path) Complete() bool {
	return p.Last() == FinishName
}

// Contains reports whether name appears anywhere in the path.
func (p Path) Contains(name string) bool {
	for _, n := range p {
		if n == name {
			return true
		}
	}
	return false
}

// Key returns a canonical string form of the path, usable as a map key
// and as the deterministic lexicographic tie-breaker.
func (p Path) Key() string {
	return strings.Join(p, ",")
}

// ReverseMiddle returns a copy of the path with the interior waypoints
// reversed and the endpoints fixed.
func (p Path) ReverseMiddle() Path {
	out := p.Clone()
	for i, j := 1, len(out)-2; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// PathResult is a path together with its derived metrics. It is a
// cached snapshot: the metrics are recomputed from the path by the
// evaluator, never edited independently.
type PathResult struct {
	Path                Path    `json:"path"`
	DistanceMeters      float64 `json:"distance_meters"`
	ElevationGainMeters float64 `json:"elevation_gain_meters"`
	Score               int     `json:"score"`
}

// Clone returns an independent copy of the result.
func (r *PathResult) Clone() *PathResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Path = r.Path.Clone()
	return &out
}

// SearchBudget bounds a feasible path. Both limits are inclusive.
type SearchBudget struct {
	MaxDistanceMeters      float64 `json:"max_distance_meters"`
	MaxElevationGainMeters float64 `json:"max_elevation_gain_meters"`
}

// BudgetFromSettings derives the distance budget from the assumed
// hiking speed and time budget.
func BudgetFromSettings(s *Settings) SearchBudget {
	return SearchBudget{
		MaxDistanceMeters:      s.HikingSpeedKmh * 1000 * s.TimeBudgetHours,
		MaxElevationGainMeters: s.MaxElevationGainMeters,
	}
}

// Settings holds the persisted planner configuration
type Settings struct {
	HikingSpeedKmh         float64 `json:"hiking_speed_kmh"`
	TimeBudgetHours        float64 `json:"time_budget_hours"`
	MaxElevationGainMeters float64 `json:"max_elevation_gain_meters"`
	WindowSize             int     `json:"window_size"`
	WindowStride           int     `json:"window_stride"`
}

// Run is one persisted search outcome
type Run struct {
	ID                  int64     `json:"id"`
	CreatedAt           time.Time `json:"created_at"`
	Path                Path      `json:"path"`
	Score               int       `json:"score"`
	DistanceMeters      float64   `json:"distance_meters"`
	ElevationGainMeters float64   `json:"elevation_gain_meters"`
	Optimizer           string    `json:"optimizer"`
	OutputFile          string    `json:"output_file"`
}
