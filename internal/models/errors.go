package models

import "errors"

// ErrWaypointNotFound is returned when a requested waypoint name is not
// present in the registry.
var ErrWaypointNotFound = errors.New("waypoint not found")
