// Package api provides the HTTP API for TripWeave.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/tripweave/tripweave/internal/api/handler"
	"github.com/tripweave/tripweave/internal/api/middleware"
	"github.com/tripweave/tripweave/internal/auth"
	"github.com/tripweave/tripweave/internal/place"
	"github.com/tripweave/tripweave/internal/planner"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version        string
	BuildTime      string
	Logger         zerolog.Logger
	ServiceName    string
	Metrics        *middleware.Metrics
	PlannerMetrics *middleware.PlannerMetrics
	JWTService     *auth.JWTService
	PlannerService *planner.Service
	PlaceService   *place.Service
	Readiness      handler.ReadinessChecker
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "tripweave-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.RequireJSON)          // Reject non-JSON bodies
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.PlannerService, cfg.Readiness)
	planHandler := handler.NewPlanHandler(cfg.PlannerService, cfg.PlaceService, cfg.PlannerMetrics)
	placeHandler := handler.NewPlaceHandler(cfg.PlaceService)

	authMiddleware := middleware.Auth(cfg.JWTService)
	catalogWrite := middleware.RequireScope(auth.ScopeCatalogWrite)

	planRateLimit := middleware.RateLimitByIP(middleware.PlanRateLimit)         // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min
	adminRateLimit := middleware.RateLimitBySubject(middleware.AdminRateLimit)  // 60 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Planning endpoint - expensive compute, strict rate limiting
		r.With(planRateLimit).Post("/itineraries:plan", planHandler.PlanItinerary)

		// Catalog read endpoints (public) - standard rate limiting
		r.Route("/places", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", placeHandler.ListPlaces)
			r.Get("/{placeId}", placeHandler.GetPlace)
		})

		// Admin endpoints (authenticated, catalog:write scope)
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminRateLimit)

			r.Route("/places", func(r chi.Router) {
				r.Use(catalogWrite)
				r.Post("/", placeHandler.CreatePlace)
				r.Put("/{placeId}", placeHandler.UpdatePlace)
				r.Delete("/{placeId}", placeHandler.DeletePlace)
			})
		})
	})

	return r
}
