// Package geojson persists computed routes as GeoJSON files. This is
// the output adapter; the search core never touches the filesystem.
package geojson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"geocache-router/internal/models"
)

// feature is the GeoJSON document written per route: a single
// LineString Feature whose properties carry the human-readable summary.
type feature struct {
	Type       string         `json:"type"`
	Geometry   geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geometry struct {
	Type        string       `json:"type"`
	Coordinates [][3]float64 `json:"coordinates"`
}

// Writer persists route results into a destination directory with
// unique timestamped filenames.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a route writer targeting dir, creating it if
// needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Writer{dir: dir, now: time.Now}, nil
}

// Write persists the result and returns the path of the written file.
// Coordinates are ordered (lon, lat, altitude) with altitude always
// 0.0, matching the original route format.
func (w *Writer) Write(result *models.PathResult, registry models.Registry) (string, error) {
	coords := make([][3]float64, 0, len(result.Path))
	for _, name := range result.Path {
		wp, err := registry.Get(name)
		if err != nil {
			return "", err
		}
		coords = append(coords, [3]float64{wp.Lng, wp.Lat, 0.0})
	}

	doc := feature{
		Type: "Feature",
		Geometry: geometry{
			Type:        "LineString",
			Coordinates: coords,
		},
		Properties: map[string]any{
			"waypoints":             result.Path,
			"points":                result.Score,
			"distance_meters":       result.DistanceMeters,
			"elevation_gain_meters": result.ElevationGainMeters,
			"summary": fmt.Sprintf("%d points over %.0f m with %.0f m of climbing",
				result.Score, result.DistanceMeters, result.ElevationGainMeters),
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal route: %w", err)
	}

	path, err := w.uniquePath()
	if err != nil {
		return "", err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write route file: %w", err)
	}
	if err := os.Rename(tmpFile, path); err != nil {
		return "", fmt.Errorf("failed to rename route file: %w", err)
	}

	return path, nil
}

// uniquePath builds a timestamped filename, suffixing -2, -3... if a
// run in the same second already claimed the name.
func (w *Writer) uniquePath() (string, error) {
	stamp := w.now().Format("20060102-150405")
	path := filepath.Join(w.dir, fmt.Sprintf("route-%s.geojson", stamp))
	for n := 2; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("failed to stat route file: %w", err)
		}
		path = filepath.Join(w.dir, fmt.Sprintf("route-%s-%d.geojson", stamp, n))
	}
}
