package utils

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Coordinate represents a geographic coordinate with latitude and longitude
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Boundary is the polygon stored on a plot row (jsonb array of coordinates).
type Boundary []Coordinate

// ParseBoundary parses the stored jsonb into a Boundary.
func ParseBoundary(raw []byte) (Boundary, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var b Boundary
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("invalid boundary JSON format: %w", err)
	}
	return b, nil
}

// ValidateBoundary checks a plot boundary before it is stored. An empty
// boundary is fine, a present one needs at least 3 valid coordinates.
func ValidateBoundary(raw []byte) error {
	b, err := ParseBoundary(raw)
	if err != nil {
		return err
	}
	if b == nil {
		return nil // boundary is optional
	}
	if len(b) < 3 {
		return errors.New("boundary must have at least 3 coordinates to form a polygon")
	}
	for i, coord := range b {
		if err := validateCoordinate(coord); err != nil {
			return fmt.Errorf("invalid coordinate at index %d: %w", i, err)
		}
	}
	return nil
}

func validateCoordinate(coord Coordinate) error {
	if coord.Lat < -90 || coord.Lat > 90 {
		return fmt.Errorf("latitude %.6f is out of valid range [-90, 90]", coord.Lat)
	}
	if coord.Lng < -180 || coord.Lng > 180 {
		return fmt.Errorf("longitude %.6f is out of valid range [-180, 180]", coord.Lng)
	}
	return nil
}

// Contains reports whether the point lies inside the boundary polygon.
// The ring is closed automatically when the caller did not repeat the
// first coordinate.
func (b Boundary) Contains(point Coordinate) bool {
	if len(b) < 3 {
		return false
	}

	ring := make(orb.Ring, 0, len(b)+1)
	for _, c := range b {
		ring = append(ring, orb.Point{c.Lng, c.Lat})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}

	return planar.PolygonContains(orb.Polygon{ring}, orb.Point{point.Lng, point.Lat})
}
