package planner

import (
	"context"
	"fmt"
	"math"

	"github.com/tripweave/tripweave/pkg/geo"
)

// Engine is the default local route provider. It synthesizes routes from the
// haversine distance, the mode speed table, and interpolated path sampling,
// without consulting a road network. The Engine is stateless and safe for
// concurrent use.
type Engine struct{}

// NewEngine creates the local heuristic route provider.
func NewEngine() *Engine {
	return &Engine{}
}

// Name implements Provider.
func (e *Engine) Name() string {
	return "local-heuristic"
}

// SupportedModes implements Provider.
func (e *Engine) SupportedModes() []TravelMode {
	return AllModes()
}

// BuildRoute walks the ordered stop sequence pairwise and assembles a route
// with per-leg steps, accumulated totals, and a flattened coordinate path.
//
// Fewer than two stops is a valid zero-leg itinerary and returns an empty
// route. The mode is validated up front so a bad mode never produces a
// partially built route.
func (e *Engine) BuildRoute(_ context.Context, stops []Point, mode TravelMode) (*Route, error) {
	if _, err := mode.Speed(); err != nil {
		return nil, err
	}
	for _, s := range stops {
		if err := geo.Validate(s.Coord); err != nil {
			return nil, fmt.Errorf("%w: stop %q: %s", ErrInvalidCoordinates, s.Name, err)
		}
	}

	route := &Route{
		Steps:       []RouteStep{},
		Coordinates: []geo.Coordinate{},
	}
	if len(stops) < 2 {
		return route, nil
	}

	var totalKm, totalMinutes float64

	for i := 1; i < len(stops); i++ {
		from, to := stops[i-1], stops[i]

		legKm := geo.Distance(from.Coord, to.Coord)
		legMinutes, err := EstimateDuration(legKm, mode)
		if err != nil {
			return nil, err
		}

		segment := SamplePath(from.Coord, to.Coord)
		if i == 1 {
			route.Coordinates = append(route.Coordinates, segment...)
		} else {
			// The segment's first point duplicates the previous leg's last.
			route.Coordinates = append(route.Coordinates, segment[1:]...)
		}

		route.Steps = append(route.Steps, RouteStep{
			Instruction:     fmt.Sprintf("Head to %s", to.Name),
			DistanceMeters:  int(math.Round(legKm * 1000)),
			DurationMinutes: int(math.Round(legMinutes)),
			Start:           from.Coord,
			End:             to.Coord,
			FromPlace:       from.Name,
			ToPlace:         to.Name,
		})

		totalKm += legKm
		totalMinutes += legMinutes
	}

	route.DistanceKm = math.Round(totalKm*10) / 10
	route.DurationMinutes = int(math.Round(totalMinutes))

	return route, nil
}
