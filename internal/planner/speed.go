package planner

import "fmt"

// TravelMode represents a mode of transport.
type TravelMode string

const (
	// ModeDriving assumes 40 km/h average speed.
	ModeDriving TravelMode = "driving"
	// ModeCycling assumes 15 km/h average speed.
	ModeCycling TravelMode = "cycling"
	// ModeWalking assumes 5 km/h average speed.
	ModeWalking TravelMode = "walking"
)

// modeSpeedsKmh maps each travel mode to its assumed average speed. The table
// stands in for a real road-network duration model.
var modeSpeedsKmh = map[TravelMode]float64{
	ModeDriving: 40,
	ModeCycling: 15,
	ModeWalking: 5,
}

// AllModes returns the supported travel modes.
func AllModes() []TravelMode {
	return []TravelMode{ModeDriving, ModeCycling, ModeWalking}
}

// ParseMode maps a wire token to a TravelMode. Unknown tokens are rejected
// with ErrInvalidMode rather than silently defaulted.
func ParseMode(s string) (TravelMode, error) {
	mode := TravelMode(s)
	if _, ok := modeSpeedsKmh[mode]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return mode, nil
}

// Speed returns the assumed average speed in km/h for the mode.
func (m TravelMode) Speed() (float64, error) {
	speed, ok := modeSpeedsKmh[m]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, string(m))
	}
	return speed, nil
}

// EstimateDuration converts a distance in kilometers into an estimated travel
// time in minutes for the given mode.
func EstimateDuration(distanceKm float64, mode TravelMode) (float64, error) {
	speed, err := mode.Speed()
	if err != nil {
		return 0, err
	}
	return distanceKm / speed * 60, nil
}
