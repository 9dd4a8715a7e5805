package planner

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tripweave/tripweave/pkg/geo"
)

func TestEngine_BuildRoute_FewerThanTwoStops(t *testing.T) {
	engine := NewEngine()

	for _, stops := range [][]Point{
		nil,
		{},
		{OriginPoint(geo.Coordinate{Lat: 52.3676, Lon: 4.9041})},
	} {
		route, err := engine.BuildRoute(context.Background(), stops, ModeWalking)
		if err != nil {
			t.Fatalf("unexpected error for %d stops: %v", len(stops), err)
		}
		if len(route.Steps) != 0 || route.DistanceKm != 0 || route.DurationMinutes != 0 {
			t.Errorf("route for %d stops = %+v, want zero route", len(stops), route)
		}
	}
}

func TestEngine_BuildRoute_InvalidMode(t *testing.T) {
	engine := NewEngine()

	_, err := engine.BuildRoute(context.Background(), []Point{
		OriginPoint(geo.Coordinate{Lat: 52.36, Lon: 4.90}),
		{Name: "Rijksmuseum", Coord: geo.Coordinate{Lat: 52.36, Lon: 4.885}},
	}, TravelMode("hovercraft"))

	if !errors.Is(err, ErrInvalidMode) {
		t.Errorf("error = %v, want ErrInvalidMode", err)
	}
}

func TestEngine_BuildRoute_InvalidCoordinates(t *testing.T) {
	engine := NewEngine()

	_, err := engine.BuildRoute(context.Background(), []Point{
		OriginPoint(geo.Coordinate{Lat: 52.36, Lon: 4.90}),
		{Name: "Nowhere", Coord: geo.Coordinate{Lat: 95, Lon: 4.885}},
	}, ModeWalking)

	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("error = %v, want ErrInvalidCoordinates", err)
	}
}

func TestEngine_BuildRoute_WalkingScenario(t *testing.T) {
	origin := OriginPoint(geo.Coordinate{Lat: 37.0, Lon: -122.0})
	stopA := Point{ID: "a", Name: "Stop A", Coord: geo.Coordinate{Lat: 37.01, Lon: -122.0}}
	stopB := Point{ID: "b", Name: "Stop B", Coord: geo.Coordinate{Lat: 37.0, Lon: -122.02}}

	engine := NewEngine()
	route, err := engine.BuildRoute(context.Background(), []Point{origin, stopA, stopB}, ModeWalking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(route.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(route.Steps))
	}

	leg1Km := geo.Distance(origin.Coord, stopA.Coord)
	leg2Km := geo.Distance(stopA.Coord, stopB.Coord)

	if want := int(math.Round(leg1Km * 1000)); route.Steps[0].DistanceMeters != want {
		t.Errorf("step 1 distance = %d m, want %d m", route.Steps[0].DistanceMeters, want)
	}
	if want := int(math.Round(leg1Km / 5 * 60)); route.Steps[0].DurationMinutes != want {
		t.Errorf("step 1 duration = %d min, want %d min", route.Steps[0].DurationMinutes, want)
	}
	if want := int(math.Round(leg2Km * 1000)); route.Steps[1].DistanceMeters != want {
		t.Errorf("step 2 distance = %d m, want %d m", route.Steps[1].DistanceMeters, want)
	}

	// Total duration comes from the unrounded leg sum; per-leg rounding may
	// shift it by one minute.
	stepSum := route.Steps[0].DurationMinutes + route.Steps[1].DurationMinutes
	if diff := route.DurationMinutes - stepSum; diff < -2 || diff > 2 {
		t.Errorf("total duration %d min vs step sum %d min, want within rounding tolerance",
			route.DurationMinutes, stepSum)
	}

	// Total distance matches the leg sum within the one-decimal rounding.
	if diff := math.Abs(route.DistanceKm - (leg1Km + leg2Km)); diff > 0.05 {
		t.Errorf("total distance = %.3f km, want %.3f km within 0.05", route.DistanceKm, leg1Km+leg2Km)
	}

	if route.Coordinates[0] != origin.Coord {
		t.Errorf("first coordinate = %v, want origin %v", route.Coordinates[0], origin.Coord)
	}
	if last := route.Coordinates[len(route.Coordinates)-1]; last != stopB.Coord {
		t.Errorf("last coordinate = %v, want final stop %v", last, stopB.Coord)
	}

	if route.Steps[0].FromPlace != OriginName {
		t.Errorf("step 1 from place = %q, want %q", route.Steps[0].FromPlace, OriginName)
	}
	if route.Steps[1].ToPlace != "Stop B" {
		t.Errorf("step 2 to place = %q, want %q", route.Steps[1].ToPlace, "Stop B")
	}
}

func TestEngine_BuildRoute_NoDuplicateAtLegBoundaries(t *testing.T) {
	stops := []Point{
		OriginPoint(geo.Coordinate{Lat: 52.3676, Lon: 4.9041}),
		{Name: "Haarlem", Coord: geo.Coordinate{Lat: 52.3874, Lon: 4.6462}},
		{Name: "Leiden", Coord: geo.Coordinate{Lat: 52.1664, Lon: 4.4819}},
	}

	engine := NewEngine()
	route, err := engine.BuildRoute(context.Background(), stops, ModeCycling)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(route.Coordinates); i++ {
		if route.Coordinates[i] == route.Coordinates[i-1] {
			t.Errorf("duplicate coordinate at index %d: %v", i, route.Coordinates[i])
		}
	}

	seg1 := SamplePath(stops[0].Coord, stops[1].Coord)
	seg2 := SamplePath(stops[1].Coord, stops[2].Coord)
	if want := len(seg1) + len(seg2) - 1; len(route.Coordinates) != want {
		t.Errorf("flattened path has %d coordinates, want %d", len(route.Coordinates), want)
	}
}

func TestEngine_BuildRoute_ModeAffectsDurationNotDistance(t *testing.T) {
	stops := []Point{
		OriginPoint(geo.Coordinate{Lat: 52.3676, Lon: 4.9041}),
		{Name: "Utrecht", Coord: geo.Coordinate{Lat: 52.0894, Lon: 5.1102}},
	}

	engine := NewEngine()

	driving, err := engine.BuildRoute(context.Background(), stops, ModeDriving)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	walking, err := engine.BuildRoute(context.Background(), stops, ModeWalking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if walking.DurationMinutes <= driving.DurationMinutes {
		t.Errorf("walking %d min not greater than driving %d min",
			walking.DurationMinutes, driving.DurationMinutes)
	}
	if walking.DistanceKm != driving.DistanceKm {
		t.Errorf("distance changed with mode: walking %.1f km vs driving %.1f km",
			walking.DistanceKm, driving.DistanceKm)
	}
}
