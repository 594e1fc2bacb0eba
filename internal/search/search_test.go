package search

import (
	"geocache-router/internal/distance"
	"geocache-router/internal/models"
	"geocache-router/internal/route"
)

// dcRegistry returns the downtown-DC scenario waypoints used across the
// optimizer tests. Start and A are ~200m apart, A and Finish ~280m.
func dcRegistry() models.Registry {
	return models.Registry{
		"Start":  {Name: "Start", Lat: 38.8985, Lng: -77.0378, Elevation: 10, Points: 0},
		"A":      {Name: "A", Lat: 38.8980, Lng: -77.0400, Elevation: 20, Points: 50},
		"Finish": {Name: "Finish", Lat: 38.8970, Lng: -77.0430, Elevation: 5, Points: 0},
	}
}

// dcRegistryWithB adds a second cache worth more points than A.
func dcRegistryWithB() models.Registry {
	r := dcRegistry()
	r["B"] = &models.Waypoint{Name: "B", Lat: 38.8975, Lng: -77.0415, Elevation: 15, Points: 80}
	return r
}

func evaluatorFor(registry models.Registry) *route.Evaluator {
	return route.NewEvaluator(distance.Build(registry), registry)
}

func defaultBudget() models.SearchBudget {
	return models.SearchBudget{MaxDistanceMeters: 2000, MaxElevationGainMeters: 100}
}
