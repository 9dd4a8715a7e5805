// Package models provides request and response models for the TripWeave API.
package models

import "time"

// Point represents a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"required,gte=-180,lte=180"`
}

// NamedPoint is a coordinate with a display name.
type NamedPoint struct {
	Name  string `json:"name"`
	Point Point  `json:"point"`
}

// Mode represents a travel mode accepted by the planner.
type Mode string

const (
	ModeDriving Mode = "driving"
	ModeCycling Mode = "cycling"
	ModeWalking Mode = "walking"
)

// Warning represents a non-fatal issue in the response.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warning codes returned by the planner endpoints.
const (
	WarnCodeEmptySelection = "EMPTY_SELECTION"
	WarnCodeMissingOrigin  = "MISSING_ORIGIN"
)

// PagedResponseMeta contains pagination metadata.
type PagedResponseMeta struct {
	Limit      int     `json:"limit"`
	NextCursor *string `json:"nextCursor,omitempty"`
}

// HealthStatus represents the health status of a service.
type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "OK"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusFail     HealthStatus = "FAIL"
)

// Timestamp is a helper type for time.Time with RFC3339 JSON formatting.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler for Timestamp.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	s := string(data[1 : len(data)-1])
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}
