package place

import "context"

// ListOptions contains options for listing places.
type ListOptions struct {
	// Category filters results to one category when non-empty.
	Category string
	Limit    int
	Cursor   string
}

// ListResult contains the results of listing places.
type ListResult struct {
	Items      []*Place
	NextCursor string
}

// Repository defines the interface for place catalog persistence.
type Repository interface {
	// Get retrieves a place by ID. Returns ErrPlaceNotFound if absent.
	Get(ctx context.Context, id string) (*Place, error)

	// GetMany retrieves places by ID, preserving the requested order.
	// Returns ErrPlaceNotFound if any requested ID is absent.
	GetMany(ctx context.Context, ids []string) ([]*Place, error)

	// List retrieves places with optional category filter and pagination.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Create creates a new place.
	Create(ctx context.Context, p *Place) error

	// Update updates an existing place.
	Update(ctx context.Context, p *Place) error

	// Delete deletes a place by ID.
	Delete(ctx context.Context, id string) error
}
