// Package gpx loads waypoint registries from GPX 1.1 waypoint files.
// This is the input adapter: everything downstream works on the
// in-memory registry.
package gpx

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"geocache-router/internal/models"
)

// ErrInvalidSource is returned when a waypoint file is malformed or
// violates the registry contract. Malformed input fails the whole run;
// nothing proceeds on partial data.
type ErrInvalidSource struct {
	Path   string
	Reason string
}

func (e *ErrInvalidSource) Error() string {
	return fmt.Sprintf("invalid waypoint source %s: %s", e.Path, e.Reason)
}

type gpxFile struct {
	XMLName   xml.Name      `xml:"gpx"`
	Waypoints []gpxWaypoint `xml:"wpt"`
}

type gpxWaypoint struct {
	Lat  float64  `xml:"lat,attr"`
	Lon  float64  `xml:"lon,attr"`
	Ele  *float64 `xml:"ele"`
	Name string   `xml:"name"`
	Desc string   `xml:"desc"`
}

// Load parses the GPX file at path into a registry. Each <wpt> carries
// position in its lat/lon attributes, the waypoint name in <name>, an
// optional elevation in <ele> (absent is loaded as 0), and its point
// value as an integer in <desc> (absent is 0, the Start/Finish
// convention).
//
// The registry contract is enforced here: every waypoint named, no
// duplicates, non-negative point values, and exactly one Start and one
// Finish.
func Load(path string) (models.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read waypoint source: %w", err)
	}

	var file gpxFile
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, &ErrInvalidSource{Path: path, Reason: fmt.Sprintf("not parseable as GPX: %v", err)}
	}

	if len(file.Waypoints) == 0 {
		return nil, &ErrInvalidSource{Path: path, Reason: "no waypoints"}
	}

	registry := make(models.Registry, len(file.Waypoints))
	for i, wpt := range file.Waypoints {
		name := strings.TrimSpace(wpt.Name)
		if name == "" {
			return nil, &ErrInvalidSource{Path: path, Reason: fmt.Sprintf("waypoint %d has no name", i+1)}
		}
		if _, ok := registry[name]; ok {
			return nil, &ErrInvalidSource{Path: path, Reason: fmt.Sprintf("duplicate waypoint %q", name)}
		}

		points := 0
		if desc := strings.TrimSpace(wpt.Desc); desc != "" {
			points, err = strconv.Atoi(desc)
			if err != nil {
				return nil, &ErrInvalidSource{Path: path, Reason: fmt.Sprintf("waypoint %q has unparseable point value %q", name, desc)}
			}
			if points < 0 {
				return nil, &ErrInvalidSource{Path: path, Reason: fmt.Sprintf("waypoint %q has negative point value %d", name, points)}
			}
		}

		elevation := 0.0
		if wpt.Ele != nil {
			elevation = *wpt.Ele
		}

		registry[name] = &models.Waypoint{
			Name:      name,
			Lat:       wpt.Lat,
			Lng:       wpt.Lon,
			Elevation: elevation,
			Points:    points,
		}
	}

	for _, required := range []string{models.StartName, models.FinishName} {
		if _, ok := registry[required]; !ok {
			return nil, &ErrInvalidSource{Path: path, Reason: fmt.Sprintf("missing required waypoint %q", required)}
		}
	}

	return registry, nil
}
