package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geocache-router/internal/distance"
	"geocache-router/internal/models"
	"geocache-router/internal/route"
)

func testSetup() (models.Registry, *route.Evaluator, models.SearchBudget) {
	registry := models.Registry{
		"Start":  {Name: "Start", Lat: 38.8985, Lng: -77.0378, Elevation: 10},
		"A":      {Name: "A", Lat: 38.8980, Lng: -77.0400, Elevation: 20, Points: 50},
		"Finish": {Name: "Finish", Lat: 38.8970, Lng: -77.0430, Elevation: 5},
	}
	ev := route.NewEvaluator(distance.Build(registry), registry)
	budget := models.SearchBudget{MaxDistanceMeters: 2000, MaxElevationGainMeters: 100}
	return registry, ev, budget
}

func TestRefineManualWrapsInteriorPath(t *testing.T) {
	registry, ev, budget := testSetup()

	result, optimizer, err := refineManual(context.Background(), ev, registry, budget, []string{"A"}, false)
	require.NoError(t, err)

	assert.Equal(t, "hillclimb", optimizer)
	assert.Equal(t, "Start", result.Path[0])
	assert.Equal(t, "Finish", result.Path.Last())
	assert.True(t, result.Path.Contains("A"))
}

func TestRefineManualRejectsEndpoints(t *testing.T) {
	registry, ev, budget := testSetup()

	_, _, err := refineManual(context.Background(), ev, registry, budget, []string{"Start", "A"}, false)
	assert.Error(t, err)

	_, _, err = refineManual(context.Background(), ev, registry, budget, []string{"A", "Finish"}, false)
	assert.Error(t, err)
}

func TestRefineManualRejectsDuplicates(t *testing.T) {
	registry, ev, budget := testSetup()

	_, _, err := refineManual(context.Background(), ev, registry, budget, []string{"A", "A"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twice")
}

func TestRefineManualRejectsUnknownWaypoint(t *testing.T) {
	registry, ev, budget := testSetup()

	_, _, err := refineManual(context.Background(), ev, registry, budget, []string{"Nowhere"}, false)
	assert.ErrorIs(t, err, models.ErrWaypointNotFound)
}
