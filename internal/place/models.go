// Package place provides the point-of-interest catalog the planner draws
// stops from.
package place

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrPlaceNotFound = errors.New("place not found")
)

// Place is a point of interest in the catalog.
type Place struct {
	ID          string
	Name        string
	Lat         float64
	Lon         float64
	Category    string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
