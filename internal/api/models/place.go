package models

// Place represents a catalog place in API responses.
type Place struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Point       Point     `json:"point"`
	Category    string    `json:"category,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// PlaceList is a paginated list of places.
type PlaceList struct {
	Items []Place           `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}

// PlaceInput is the request body for creating or updating a place.
type PlaceInput struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Point       Point   `json:"point"`
	Category    string  `json:"category,omitempty" validate:"max=40"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}
