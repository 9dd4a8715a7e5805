package geo

import (
	"math"
	"testing"
)

func TestEncodePolyline_Empty(t *testing.T) {
	if got := EncodePolyline(nil); got != "" {
		t.Errorf("EncodePolyline(nil) = %q, want empty string", got)
	}
}

func TestEncodePolyline_ReferenceSequence(t *testing.T) {
	// Reference example from the polyline algorithm documentation.
	coords := []Coordinate{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	}

	got := EncodePolyline(coords)
	want := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
	if got != want {
		t.Errorf("EncodePolyline = %q, want %q", got, want)
	}
}

func TestDecodePolyline_RoundTrip(t *testing.T) {
	coords := []Coordinate{
		{Lat: 52.37403, Lon: 4.88969},
		{Lat: 52.37512, Lon: 4.89231},
		{Lat: 52.36849, Lon: 4.90321},
	}

	decoded := DecodePolyline(EncodePolyline(coords))
	if len(decoded) != len(coords) {
		t.Fatalf("decoded %d coordinates, want %d", len(decoded), len(coords))
	}

	// Precision 5 bounds the round-trip error to half of 1e-5 degrees.
	for i := range coords {
		if math.Abs(decoded[i].Lat-coords[i].Lat) > 1e-5 {
			t.Errorf("coord %d lat = %f, want %f", i, decoded[i].Lat, coords[i].Lat)
		}
		if math.Abs(decoded[i].Lon-coords[i].Lon) > 1e-5 {
			t.Errorf("coord %d lon = %f, want %f", i, decoded[i].Lon, coords[i].Lon)
		}
	}
}

func TestDecodePolyline_Empty(t *testing.T) {
	if got := DecodePolyline(""); got != nil {
		t.Errorf("DecodePolyline(\"\") = %v, want nil", got)
	}
}
