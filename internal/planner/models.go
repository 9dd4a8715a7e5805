// Package planner provides tour ordering and route synthesis over a set of
// geographic stops.
package planner

import (
	"context"
	"errors"

	"github.com/tripweave/tripweave/pkg/geo"
)

// OriginName is the display name used for the traveler's starting location.
const OriginName = "Your Location"

// Sentinel errors for planning operations.
var (
	// ErrInvalidMode indicates a travel mode outside the supported set.
	ErrInvalidMode = errors.New("invalid travel mode")
	// ErrMissingOrigin indicates ordering or synthesis was requested without
	// a starting location.
	ErrMissingOrigin = errors.New("missing origin location")
	// ErrProviderUnavailable indicates the route provider is down or the
	// circuit breaker is open.
	ErrProviderUnavailable = errors.New("route provider unavailable")
	// ErrInvalidCoordinates indicates coordinates outside valid geographic bounds.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Provider defines the contract for route providers. The local heuristic
// engine is the default implementation; a road-network-backed provider can be
// substituted behind the same contract.
type Provider interface {
	// BuildRoute synthesizes a route visiting the given stops in order.
	// Fewer than two stops yields an empty route, not an error.
	BuildRoute(ctx context.Context, stops []Point, mode TravelMode) (*Route, error)
	// Name returns the provider identifier for logging and metrics.
	Name() string
	// SupportedModes returns the travel modes this provider can route.
	SupportedModes() []TravelMode
}

// Point is a named location. Points are owned by the caller and never mutated
// by the planner.
type Point struct {
	ID          string
	Name        string
	Coord       geo.Coordinate
	Category    string
	Description string
}

// OriginPoint builds the Point representing the traveler's current location.
func OriginPoint(coord geo.Coordinate) Point {
	return Point{Name: OriginName, Coord: coord}
}

// RouteStep is the record for one leg between consecutive stops.
type RouteStep struct {
	Instruction     string
	DistanceMeters  int
	DurationMinutes int
	Start           geo.Coordinate
	End             geo.Coordinate
	FromPlace       string
	ToPlace         string
}

// Route is the synthesized journey over an ordered stop sequence.
//
// Invariants: len(Steps) is one less than the number of stops routed;
// DistanceKm equals the sum of step distances within rounding tolerance; the
// coordinate chain follows travel order with no duplicate at leg boundaries.
type Route struct {
	// DistanceKm is the total distance in kilometers, rounded to one decimal.
	DistanceKm float64
	// DurationMinutes is the total travel time, rounded to the nearest minute.
	DurationMinutes int
	Steps           []RouteStep
	// Coordinates is the flattened sampled path over the whole journey.
	Coordinates []geo.Coordinate
}

// Empty reports whether the route has no legs.
func (r *Route) Empty() bool {
	return len(r.Steps) == 0
}
