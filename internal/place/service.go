package place

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripweave/tripweave/pkg/geo"
)

// Validation constants.
const (
	MaxNameLength        = 120
	MaxCategoryLength    = 40
	MaxDescriptionLength = 500
)

// FieldError describes a validation failure on one input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates input validation failures.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid place input: %d field error(s)", len(e.Errors))
}

// CreateInput is the input for creating a place.
type CreateInput struct {
	Name        string
	Lat         float64
	Lon         float64
	Category    string
	Description *string
}

// Service provides place catalog operations.
type Service struct {
	repo Repository
}

// NewService creates a new place service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves places, optionally filtered by category.
func (s *Service) List(ctx context.Context, category string, limit int, cursor string) (*ListResult, error) {
	return s.repo.List(ctx, ListOptions{
		Category: category,
		Limit:    limit,
		Cursor:   cursor,
	})
}

// Get retrieves a place by ID.
func (s *Service) Get(ctx context.Context, id string) (*Place, error) {
	return s.repo.Get(ctx, id)
}

// Resolve retrieves the places for the given IDs, preserving request order.
func (s *Service) Resolve(ctx context.Context, ids []string) ([]*Place, error) {
	if len(ids) == 0 {
		return []*Place{}, nil
	}
	return s.repo.GetMany(ctx, ids)
}

// Create validates the input and creates a new catalog place.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Place, error) {
	if fieldErrors := validateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	p := &Place{
		ID:          "plc_" + uuid.New().String()[:22],
		Name:        input.Name,
		Lat:         input.Lat,
		Lon:         input.Lon,
		Category:    input.Category,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Update validates the input and updates an existing place.
func (s *Service) Update(ctx context.Context, id string, input CreateInput) (*Place, error) {
	if fieldErrors := validateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = input.Name
	p.Lat = input.Lat
	p.Lon = input.Lon
	p.Category = input.Category
	p.Description = input.Description
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Delete removes a place from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil && !errors.Is(err, ErrPlaceNotFound) {
		return fmt.Errorf("delete place %q: %w", id, err)
	}
	return err
}

// validateInput checks create/update input fields.
func validateInput(input CreateInput) []FieldError {
	var fieldErrors []FieldError

	if input.Name == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "name", Message: "required"})
	} else if len(input.Name) > MaxNameLength {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   "name",
			Message: fmt.Sprintf("must be at most %d characters", MaxNameLength),
		})
	}

	if len(input.Category) > MaxCategoryLength {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   "category",
			Message: fmt.Sprintf("must be at most %d characters", MaxCategoryLength),
		})
	}

	if input.Description != nil && len(*input.Description) > MaxDescriptionLength {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   "description",
			Message: fmt.Sprintf("must be at most %d characters", MaxDescriptionLength),
		})
	}

	if err := geo.Validate(geo.Coordinate{Lat: input.Lat, Lon: input.Lon}); err != nil {
		fieldErrors = append(fieldErrors, FieldError{Field: "location", Message: err.Error()})
	}

	return fieldErrors
}
