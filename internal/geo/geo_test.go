package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"geocache-router/internal/models"
)

func TestDistanceSymmetric(t *testing.T) {
	a := models.Coordinates{Lat: 38.8985, Lng: -77.0378}
	b := models.Coordinates{Lat: 38.8970, Lng: -77.0430}

	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistanceIdenticalPointsIsZero(t *testing.T) {
	a := models.Coordinates{Lat: 38.8985, Lng: -77.0378}

	assert.Equal(t, 0.0, Distance(a, a))
}

func TestDistanceNeverNegative(t *testing.T) {
	points := []models.Coordinates{
		{Lat: 0, Lng: 0},
		{Lat: 90, Lng: 0},
		{Lat: -90, Lng: 0},
		{Lat: 38.8985, Lng: -77.0378},
		{Lat: -33.8688, Lng: 151.2093},
	}

	for _, a := range points {
		for _, b := range points {
			assert.GreaterOrEqual(t, Distance(a, b), 0.0)
		}
	}
}

func TestDistanceKnownSeparation(t *testing.T) {
	// Two downtown DC waypoints roughly 200m apart
	a := models.Coordinates{Lat: 38.8985, Lng: -77.0378}
	b := models.Coordinates{Lat: 38.8980, Lng: -77.0400}

	d := Distance(a, b)
	assert.InDelta(t, 198.5, d, 2.0)
}

func TestElevationGainPositiveOnly(t *testing.T) {
	assert.Equal(t, 10.0, ElevationGain(10, 20))
	assert.Equal(t, 0.0, ElevationGain(20, 10))
	assert.Equal(t, 0.0, ElevationGain(15, 15))
}

func TestElevationGainDirectional(t *testing.T) {
	up := ElevationGain(10, 20)
	down := ElevationGain(20, 10)

	assert.NotEqual(t, up, down)
	assert.GreaterOrEqual(t, up, 0.0)
	assert.GreaterOrEqual(t, down, 0.0)
}
