package place

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing and local development. Production should use
// PostgresRepository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	places map[string]*Place
}

// NewInMemoryRepository creates a new in-memory place repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		places: make(map[string]*Place),
	}
}

// Get retrieves a place by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.places[id]
	if !ok {
		return nil, ErrPlaceNotFound
	}

	cpy := *p
	return &cpy, nil
}

// GetMany retrieves places by ID, preserving the requested order.
func (r *InMemoryRepository) GetMany(_ context.Context, ids []string) ([]*Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Place, 0, len(ids))
	for _, id := range ids {
		p, ok := r.places[id]
		if !ok {
			return nil, ErrPlaceNotFound
		}
		cpy := *p
		result = append(result, &cpy)
	}

	return result, nil
}

// List retrieves places with optional category filter and pagination.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var places []*Place
	for _, p := range r.places {
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		cpy := *p
		places = append(places, &cpy)
	}

	// Deterministic order for pagination.
	sort.Slice(places, func(i, j int) bool { return places[i].ID < places[j].ID })

	if opts.Cursor != "" {
		idx := sort.Search(len(places), func(i int) bool { return places[i].ID > opts.Cursor })
		places = places[idx:]
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	result := &ListResult{Items: places}
	if len(places) > limit {
		result.Items = places[:limit]
		result.NextCursor = places[limit-1].ID
	}

	return result, nil
}

// Create creates a new place.
func (r *InMemoryRepository) Create(_ context.Context, p *Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *p
	r.places[p.ID] = &cpy
	return nil
}

// Update updates an existing place.
func (r *InMemoryRepository) Update(_ context.Context, p *Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.places[p.ID]; !ok {
		return ErrPlaceNotFound
	}

	cpy := *p
	r.places[p.ID] = &cpy
	return nil
}

// Delete deletes a place by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.places[id]; !ok {
		return ErrPlaceNotFound
	}

	delete(r.places, id)
	return nil
}
