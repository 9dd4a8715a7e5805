package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tripweave/tripweave/internal/api/models"
	"github.com/tripweave/tripweave/internal/api/response"
	"github.com/tripweave/tripweave/internal/place"
)

const (
	defaultPlaceListLimit = 50
	maxPlaceListLimit     = 200
)

// PlaceHandler handles place catalog endpoints.
type PlaceHandler struct {
	places *place.Service
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(placeService *place.Service) *PlaceHandler {
	return &PlaceHandler{places: placeService}
}

// ListPlaces handles GET /v1/places - list catalog places.
func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	cursor := r.URL.Query().Get("cursor")

	limit := defaultPlaceListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxPlaceListLimit {
			response.BadRequest(w, r, "invalid limit", []models.FieldError{
				{Field: "limit", Message: "must be an integer between 1 and 200", Code: "OUT_OF_RANGE"},
			})
			return
		}
		limit = parsed
	}

	result, err := h.places.List(r.Context(), category, limit, cursor)
	if err != nil {
		response.InternalError(w, r, "could not list places")
		return
	}

	list := models.PlaceList{
		Items: make([]models.Place, 0, len(result.Items)),
		Meta:  models.PagedResponseMeta{Limit: limit},
	}
	if result.NextCursor != "" {
		list.Meta.NextCursor = &result.NextCursor
	}
	for _, p := range result.Items {
		list.Items = append(list.Items, placeModel(p))
	}

	response.JSON(w, r, http.StatusOK, list)
}

// GetPlace handles GET /v1/places/{placeId} - fetch a single place.
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "placeId")

	p, err := h.places.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, place.ErrPlaceNotFound) {
			response.NotFound(w, r, "place not found")
			return
		}
		response.InternalError(w, r, "could not fetch place")
		return
	}

	response.JSON(w, r, http.StatusOK, placeModel(p))
}

// CreatePlace handles POST /v1/admin/places - create a catalog place.
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	input, ok := decodePlaceInput(w, r)
	if !ok {
		return
	}

	p, err := h.places.Create(r.Context(), input)
	if err != nil {
		writePlaceError(w, r, err)
		return
	}

	response.Created(w, r, "/v1/places/"+p.ID, placeModel(p))
}

// UpdatePlace handles PUT /v1/admin/places/{placeId} - update a catalog place.
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "placeId")

	input, ok := decodePlaceInput(w, r)
	if !ok {
		return
	}

	p, err := h.places.Update(r.Context(), id, input)
	if err != nil {
		writePlaceError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, placeModel(p))
}

// DeletePlace handles DELETE /v1/admin/places/{placeId} - remove a catalog place.
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "placeId")

	if err := h.places.Delete(r.Context(), id); err != nil {
		writePlaceError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

func decodePlaceInput(w http.ResponseWriter, r *http.Request) (place.CreateInput, bool) {
	var body models.PlaceInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return place.CreateInput{}, false
	}

	return place.CreateInput{
		Name:        body.Name,
		Lat:         body.Point.Lat,
		Lon:         body.Point.Lon,
		Category:    body.Category,
		Description: body.Description,
	}, true
}

func writePlaceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *place.ValidationError
	switch {
	case errors.As(err, &validationErr):
		fieldErrors := make([]models.FieldError, 0, len(validationErr.Errors))
		for _, fe := range validationErr.Errors {
			fieldErrors = append(fieldErrors, models.FieldError{Field: fe.Field, Message: fe.Message})
		}
		response.BadRequest(w, r, "invalid place input", fieldErrors)
	case errors.Is(err, place.ErrPlaceNotFound):
		response.NotFound(w, r, "place not found")
	default:
		response.InternalError(w, r, "place operation failed")
	}
}

func placeModel(p *place.Place) models.Place {
	return models.Place{
		ID:          p.ID,
		Name:        p.Name,
		Point:       models.Point{Lat: p.Lat, Lon: p.Lon},
		Category:    p.Category,
		Description: p.Description,
		CreatedAt:   models.Timestamp(p.CreatedAt),
		UpdatedAt:   models.Timestamp(p.UpdatedAt),
	}
}
