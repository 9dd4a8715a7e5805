package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tripweave/tripweave/internal/api/middleware"
	"github.com/tripweave/tripweave/internal/api/models"
	"github.com/tripweave/tripweave/internal/api/response"
	"github.com/tripweave/tripweave/internal/place"
	"github.com/tripweave/tripweave/internal/planner"
	"github.com/tripweave/tripweave/pkg/geo"
)

// PlanHandler handles itinerary planning endpoints.
type PlanHandler struct {
	planner *planner.Service
	places  *place.Service
	metrics *middleware.PlannerMetrics
}

// NewPlanHandler creates a new PlanHandler. metrics may be nil.
func NewPlanHandler(plannerService *planner.Service, placeService *place.Service, metrics *middleware.PlannerMetrics) *PlanHandler {
	return &PlanHandler{
		planner: plannerService,
		places:  placeService,
		metrics: metrics,
	}
}

// PlanItinerary handles POST /v1/itineraries:plan - order stops and compose a route.
func (h *PlanHandler) PlanItinerary(w http.ResponseWriter, r *http.Request) {
	var input models.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	mode, err := planner.ParseMode(string(input.Mode))
	if err != nil {
		response.BadRequest(w, r, "unsupported travel mode", []models.FieldError{
			{Field: "mode", Message: "must be one of: driving, cycling, walking", Code: "INVALID_MODE"},
		})
		return
	}

	stops, fieldErrors, err := h.collectStops(r, input)
	if err != nil {
		response.InternalError(w, r, "could not resolve places")
		return
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid stop selection", fieldErrors)
		return
	}

	req := planner.PlanRequest{
		Stops:     stops,
		Mode:      mode,
		KeepOrder: input.KeepOrder,
	}
	if input.Origin != nil {
		req.Origin = &planner.Point{
			Name:  planner.OriginName,
			Coord: geo.Coordinate{Lat: input.Origin.Lat, Lon: input.Origin.Lon},
		}
	}

	start := time.Now()
	plan, err := h.planner.PlanTour(r.Context(), req)
	if h.metrics != nil {
		h.metrics.RecordPlan(string(mode), len(stops), time.Since(start), err)
	}
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrMissingOrigin):
			// A selection without a starting location cannot be routed, but it
			// is not a client error: respond with an empty plan and a warning.
			resp := emptyPlanResponse(input.Mode, models.Warning{
				Code:    models.WarnCodeMissingOrigin,
				Message: "no origin provided; returning an empty route",
			})
			response.JSON(w, r, http.StatusOK, resp)
		case errors.Is(err, planner.ErrInvalidCoordinates):
			response.BadRequest(w, r, "coordinates out of range", []models.FieldError{
				{Field: "stops", Message: "lat must be in [-90, 90] and lon in [-180, 180]", Code: "OUT_OF_RANGE"},
			})
		case errors.Is(err, planner.ErrProviderUnavailable):
			response.ServiceUnavailable(w, r, "route planning is temporarily unavailable")
		default:
			response.InternalError(w, r, "route planning failed")
		}
		return
	}

	resp := planResponse(input.Mode, plan)
	if len(stops) == 0 {
		resp.Warnings = append(resp.Warnings, models.Warning{
			Code:    models.WarnCodeEmptySelection,
			Message: "no stops selected; returning an empty route",
		})
	}

	w.Header().Set("Cache-Control", "private, max-age=60")
	response.JSON(w, r, http.StatusOK, resp)
}

// collectStops merges inline stops with catalog places referenced by ID,
// preserving request order: inline stops first, then resolved places.
func (h *PlanHandler) collectStops(r *http.Request, input models.PlanRequest) ([]planner.Point, []models.FieldError, error) {
	var fieldErrors []models.FieldError

	stops := make([]planner.Point, 0, len(input.Stops)+len(input.PlaceIDs))
	for i, s := range input.Stops {
		if s.Name == "" {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   fieldAt("stops", i, "name"),
				Message: "required",
				Code:    "REQUIRED",
			})
			continue
		}
		stops = append(stops, planner.Point{
			Name:  s.Name,
			Coord: geo.Coordinate{Lat: s.Point.Lat, Lon: s.Point.Lon},
		})
	}

	if len(input.PlaceIDs) > 0 {
		resolved, err := h.places.Resolve(r.Context(), input.PlaceIDs)
		if err != nil {
			if errors.Is(err, place.ErrPlaceNotFound) {
				fieldErrors = append(fieldErrors, models.FieldError{
					Field:   "placeIds",
					Message: "one or more place IDs do not exist",
					Code:    "UNKNOWN_ID",
				})
				return nil, fieldErrors, nil
			}
			return nil, nil, err
		}
		for _, p := range resolved {
			stop := planner.Point{
				ID:       p.ID,
				Name:     p.Name,
				Coord:    geo.Coordinate{Lat: p.Lat, Lon: p.Lon},
				Category: p.Category,
			}
			if p.Description != nil {
				stop.Description = *p.Description
			}
			stops = append(stops, stop)
		}
	}

	return stops, fieldErrors, nil
}

func fieldAt(prefix string, index int, name string) string {
	return fmt.Sprintf("%s[%d].%s", prefix, index, name)
}

// planResponse maps a planner result to the API response shape.
func planResponse(mode models.Mode, plan *planner.Plan) models.PlanResponse {
	resp := models.PlanResponse{
		ID:           "itn_" + uuid.New().String()[:22],
		GeneratedAt:  models.Timestamp(time.Now()),
		Mode:         mode,
		OrderedStops: make([]models.NamedPoint, 0, len(plan.OrderedStops)),
		Route: models.PlanRoute{
			Steps:       make([]models.PlanStep, 0, len(plan.Route.Steps)),
			Coordinates: make([]models.Point, 0, len(plan.Route.Coordinates)),
		},
	}

	for _, stop := range plan.OrderedStops {
		resp.OrderedStops = append(resp.OrderedStops, models.NamedPoint{
			Name:  stop.Name,
			Point: models.Point{Lat: stop.Coord.Lat, Lon: stop.Coord.Lon},
		})
	}

	resp.Route.DistanceKm = plan.Route.DistanceKm
	resp.Route.DurationMinutes = plan.Route.DurationMinutes
	for _, step := range plan.Route.Steps {
		resp.Route.Steps = append(resp.Route.Steps, models.PlanStep{
			Instruction:     step.Instruction,
			DistanceMeters:  step.DistanceMeters,
			DurationMinutes: step.DurationMinutes,
			Start:           models.Point{Lat: step.Start.Lat, Lon: step.Start.Lon},
			End:             models.Point{Lat: step.End.Lat, Lon: step.End.Lon},
			From:            step.FromPlace,
			To:              step.ToPlace,
		})
	}
	for _, c := range plan.Route.Coordinates {
		resp.Route.Coordinates = append(resp.Route.Coordinates, models.Point{Lat: c.Lat, Lon: c.Lon})
	}
	if len(plan.Route.Coordinates) > 0 {
		encoded := geo.EncodePolyline(plan.Route.Coordinates)
		resp.Route.GeometryPolyline = &encoded
	}

	return resp
}

// emptyPlanResponse builds a response with no stops and an empty route.
func emptyPlanResponse(mode models.Mode, warnings ...models.Warning) models.PlanResponse {
	return models.PlanResponse{
		ID:           "itn_" + uuid.New().String()[:22],
		GeneratedAt:  models.Timestamp(time.Now()),
		Mode:         mode,
		OrderedStops: []models.NamedPoint{},
		Route: models.PlanRoute{
			Steps:       []models.PlanStep{},
			Coordinates: []models.Point{},
		},
		Warnings: warnings,
	}
}
