// Package geo provides great-circle distance and elevation-gain math
// between waypoints. Movement is always waypoint-to-waypoint on great
// circles; there is no terrain-aware routing.
package geo

import (
	"math"

	"geocache-router/internal/models"
)

// EarthRadiusMeters is the radius used by the haversine formula.
const EarthRadiusMeters = 6378100.0

// Distance returns the haversine great-circle distance in meters
// between two coordinates. Symmetric, zero for identical points, never
// negative.
func Distance(a, b models.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// ElevationGain returns the positive elevation gain in meters when
// moving from elevation `from` to elevation `to`. Directional: the gain
// from A to B is generally not the gain from B to A.
func ElevationGain(from, to float64) float64 {
	return math.Max(0, to-from)
}
