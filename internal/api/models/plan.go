package models

// PlanStopInput is a single stop supplied inline in a plan request.
type PlanStopInput struct {
	Name  string `json:"name" validate:"required"`
	Point Point  `json:"point"`
}

// PlanRequest is the request body for planning an itinerary.
type PlanRequest struct {
	Origin    *Point          `json:"origin,omitempty"`
	Stops     []PlanStopInput `json:"stops,omitempty"`
	PlaceIDs  []string        `json:"placeIds,omitempty"`
	Mode      Mode            `json:"mode" validate:"required,oneof=driving cycling walking"`
	KeepOrder bool            `json:"keepOrder,omitempty"`
}

// PlanResponse is the response for itinerary planning.
type PlanResponse struct {
	ID           string       `json:"id"`
	GeneratedAt  Timestamp    `json:"generatedAt"`
	Mode         Mode         `json:"mode"`
	OrderedStops []NamedPoint `json:"orderedStops"`
	Route        PlanRoute    `json:"route"`
	Warnings     []Warning    `json:"warnings,omitempty"`
}

// PlanRoute is the composed route for an itinerary.
type PlanRoute struct {
	DistanceKm       float64    `json:"distanceKm"`
	DurationMinutes  int        `json:"durationMinutes"`
	Steps            []PlanStep `json:"steps"`
	Coordinates      []Point    `json:"coordinates"`
	GeometryPolyline *string    `json:"geometryPolyline,omitempty"`
}

// PlanStep is a single leg of a planned route.
type PlanStep struct {
	Instruction     string `json:"instruction"`
	DistanceMeters  int    `json:"distanceMeters"`
	DurationMinutes int    `json:"durationMinutes"`
	Start           Point  `json:"start"`
	End             Point  `json:"end"`
	From            string `json:"from"`
	To              string `json:"to"`
}
