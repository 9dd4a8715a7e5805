// Package geo provides geodesic distance and coordinate utilities used by the
// route planner.
package geo

import (
	"fmt"
	"math"
)

// earthRadiusKm is the Earth mean radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Coordinate represents a geographic point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance returns the great-circle distance between two coordinates in
// kilometers using the haversine formula. The result is always finite and
// non-negative; identical points yield zero.
func Distance(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Lerp returns the point at fraction t along the straight segment from a to b.
// Linear interpolation of the endpoint coordinates is an acceptable
// approximation of the geodesic line at the leg lengths the planner works
// with; great-circle curvature is not modeled.
func Lerp(a, b Coordinate, t float64) Coordinate {
	return Coordinate{
		Lat: a.Lat + t*(b.Lat-a.Lat),
		Lon: a.Lon + t*(b.Lon-a.Lon),
	}
}

// Validate checks that the coordinate is within valid geographic bounds.
func Validate(c Coordinate) error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Lon)
	}
	return nil
}
