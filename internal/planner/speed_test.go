package planner

import (
	"errors"
	"math"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		token   string
		want    TravelMode
		wantErr bool
	}{
		{"driving", ModeDriving, false},
		{"cycling", ModeCycling, false},
		{"walking", ModeWalking, false},
		{"flying", "", true},
		{"", "", true},
		{"Driving", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.token)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidMode) {
			t.Errorf("ParseMode(%q) error = %v, want ErrInvalidMode", tt.token, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestEstimateDuration_SpeedTable(t *testing.T) {
	tests := []struct {
		mode        TravelMode
		distanceKm  float64
		wantMinutes float64
	}{
		{ModeDriving, 40, 60},
		{ModeCycling, 15, 60},
		{ModeWalking, 5, 60},
		{ModeWalking, 2.5, 30},
		{ModeDriving, 0, 0},
	}

	for _, tt := range tests {
		got, err := EstimateDuration(tt.distanceKm, tt.mode)
		if err != nil {
			t.Errorf("EstimateDuration(%f, %q) unexpected error: %v", tt.distanceKm, tt.mode, err)
			continue
		}
		if math.Abs(got-tt.wantMinutes) > 1e-9 {
			t.Errorf("EstimateDuration(%f, %q) = %f, want %f", tt.distanceKm, tt.mode, got, tt.wantMinutes)
		}
	}
}

func TestEstimateDuration_InvalidMode(t *testing.T) {
	_, err := EstimateDuration(10, TravelMode("teleport"))
	if !errors.Is(err, ErrInvalidMode) {
		t.Errorf("EstimateDuration with unknown mode: error = %v, want ErrInvalidMode", err)
	}
}
