package planner

import (
	"math"

	"github.com/tripweave/tripweave/pkg/geo"
)

// sampleIntervalKm is the target spacing between sampled path points.
const sampleIntervalKm = 0.5

// minSampleSteps is the minimum number of interpolation steps per leg, so
// even very short legs render as a visible path.
const minSampleSteps = 5

// SamplePath returns coordinates approximating the travel path from a to b,
// roughly one point per 500 meters with both endpoints included. The path is
// a rendering stand-in for a road geometry, not a real road match: points are
// linearly interpolated along the connecting segment.
//
// The first returned coordinate is always a and the last is always b.
func SamplePath(a, b geo.Coordinate) []geo.Coordinate {
	steps := int(math.Floor(geo.Distance(a, b) / sampleIntervalKm))
	if steps < minSampleSteps {
		steps = minSampleSteps
	}

	coords := make([]geo.Coordinate, 0, steps+1)
	for j := 0; j <= steps; j++ {
		coords = append(coords, geo.Lerp(a, b, float64(j)/float64(steps)))
	}

	// Pin the endpoints exactly; float interpolation at t=1 can drift in the
	// last bits.
	coords[0] = a
	coords[len(coords)-1] = b

	return coords
}
