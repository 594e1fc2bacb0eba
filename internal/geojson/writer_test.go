package geojson

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geocache-router/internal/models"
)

func testResult() (*models.PathResult, models.Registry) {
	registry := models.Registry{
		"Start":  {Name: "Start", Lat: 38.8985, Lng: -77.0378, Elevation: 10},
		"A":      {Name: "A", Lat: 38.8980, Lng: -77.0400, Elevation: 20, Points: 50},
		"Finish": {Name: "Finish", Lat: 38.8970, Lng: -77.0430, Elevation: 5},
	}
	result := &models.PathResult{
		Path:                models.Path{"Start", "A", "Finish"},
		DistanceMeters:      481.2,
		ElevationGainMeters: 10,
		Score:               50,
	}
	return result, registry
}

func TestWriteProducesLineString(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	result, registry := testResult()
	path, err := w.Write(result, registry)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string       `json:"type"`
			Coordinates [][3]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "Feature", doc.Type)
	assert.Equal(t, "LineString", doc.Geometry.Type)
	require.Len(t, doc.Geometry.Coordinates, 3)

	// Longitude first, then latitude, altitude pinned to zero
	assert.Equal(t, [3]float64{-77.0378, 38.8985, 0.0}, doc.Geometry.Coordinates[0])
	assert.Equal(t, [3]float64{-77.0430, 38.8970, 0.0}, doc.Geometry.Coordinates[2])

	assert.Equal(t, 50.0, doc.Properties["points"])
	assert.Contains(t, doc.Properties["summary"], "50 points")
}

func TestWriteTimestampedFilename(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)
	w.now = func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC) }

	result, registry := testResult()
	path, err := w.Write(result, registry)
	require.NoError(t, err)

	assert.Equal(t, "route-20250601-093000.geojson", filepath.Base(path))
}

func TestWriteCollisionSuffix(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)
	w.now = func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC) }

	result, registry := testResult()

	first, err := w.Write(result, registry)
	require.NoError(t, err)
	second, err := w.Write(result, registry)
	require.NoError(t, err)
	third, err := w.Write(result, registry)
	require.NoError(t, err)

	assert.Equal(t, "route-20250601-093000.geojson", filepath.Base(first))
	assert.Equal(t, "route-20250601-093000-2.geojson", filepath.Base(second))
	assert.Equal(t, "route-20250601-093000-3.geojson", filepath.Base(third))
}

func TestWriteUnknownWaypoint(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	result, registry := testResult()
	result.Path = models.Path{"Start", "Nowhere", "Finish"}

	_, err = w.Write(result, registry)
	assert.Error(t, err)
}

func TestNewWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "routes", "nested")

	_, err := NewWriter(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
