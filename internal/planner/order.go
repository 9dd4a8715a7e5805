package planner

import "github.com/tripweave/tripweave/pkg/geo"

// OrderStops orders the given stops into a visiting sequence starting from
// origin, using a greedy nearest-unvisited-next heuristic.
//
// The heuristic minimizes the distance of each individual hop, not the total
// tour length; it is a deliberate approximation, not a VRP solver. Ties break
// by input order so the result is deterministic. O(n²) distance evaluations,
// which is fine for the tens of stops a planning request carries.
func OrderStops(origin Point, stops []Point) []Point {
	if len(stops) == 0 {
		return []Point{}
	}

	pool := make([]Point, len(stops))
	copy(pool, stops)

	ordered := make([]Point, 0, len(stops))
	current := origin.Coord

	for len(pool) > 0 {
		best := 0
		bestDist := geo.Distance(current, pool[0].Coord)

		for i := 1; i < len(pool); i++ {
			if d := geo.Distance(current, pool[i].Coord); d < bestDist {
				best = i
				bestDist = d
			}
		}

		selected := pool[best]
		ordered = append(ordered, selected)
		pool = append(pool[:best], pool[best+1:]...)
		current = selected.Coord
	}

	return ordered
}
