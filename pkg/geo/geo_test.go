package geo

import (
	"math"
	"testing"
)

func TestDistance_IdenticalPoints(t *testing.T) {
	points := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 52.3676, Lon: 4.9041},
		{Lat: -33.8688, Lon: 151.2093},
	}

	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := Coordinate{Lat: 52.3676, Lon: 4.9041}
	b := Coordinate{Lat: 51.9244, Lon: 4.4777}

	ab := Distance(a, b)
	ba := Distance(b, a)

	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("Distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestDistance_KnownValue(t *testing.T) {
	// Amsterdam Centraal to Utrecht Centraal, roughly 35 km great-circle.
	a := Coordinate{Lat: 52.3791, Lon: 4.9003}
	b := Coordinate{Lat: 52.0894, Lon: 5.1102}

	d := Distance(a, b)
	if d < 34 || d > 37 {
		t.Errorf("Distance = %f km, want roughly 35 km", d)
	}
}

func TestDistance_TriangleInequality(t *testing.T) {
	a := Coordinate{Lat: 52.3676, Lon: 4.9041}
	b := Coordinate{Lat: 51.9244, Lon: 4.4777}
	c := Coordinate{Lat: 52.0705, Lon: 4.3007}

	const tolerance = 1e-9
	if Distance(a, c) > Distance(a, b)+Distance(b, c)+tolerance {
		t.Errorf("triangle inequality violated: d(a,c)=%f > d(a,b)+d(b,c)=%f",
			Distance(a, c), Distance(a, b)+Distance(b, c))
	}
}

func TestLerp_Endpoints(t *testing.T) {
	a := Coordinate{Lat: 52.0, Lon: 4.0}
	b := Coordinate{Lat: 53.0, Lon: 5.0}

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(a, b, 0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(a, b, 1) = %v, want %v", got, b)
	}

	mid := Lerp(a, b, 0.5)
	if math.Abs(mid.Lat-52.5) > 1e-12 || math.Abs(mid.Lon-4.5) > 1e-12 {
		t.Errorf("Lerp(a, b, 0.5) = %v, want midpoint", mid)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"valid", Coordinate{Lat: 52.0, Lon: 4.0}, false},
		{"lat too high", Coordinate{Lat: 90.1, Lon: 0}, true},
		{"lat too low", Coordinate{Lat: -90.1, Lon: 0}, true},
		{"lon too high", Coordinate{Lat: 0, Lon: 180.1}, true},
		{"lon too low", Coordinate{Lat: 0, Lon: -180.1}, true},
		{"boundary", Coordinate{Lat: 90, Lon: -180}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.coord)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%v) error = %v, wantErr %v", tt.coord, err, tt.wantErr)
			}
		})
	}
}
