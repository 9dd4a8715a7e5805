// Package main provides the entrypoint for the TripWeave API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/tripweave/tripweave/internal/api"
	"github.com/tripweave/tripweave/internal/api/handler"
	"github.com/tripweave/tripweave/internal/api/middleware"
	"github.com/tripweave/tripweave/internal/auth"
	"github.com/tripweave/tripweave/internal/database"
	"github.com/tripweave/tripweave/internal/place"
	"github.com/tripweave/tripweave/internal/planner"
	"github.com/tripweave/tripweave/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "tripweave-api"

	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting TripWeave API")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryCfg := telemetry.ConfigFromEnv(serviceName, Version)

	tp, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryCfg.Enabled {
		log.Info().
			Str("otlp_endpoint", telemetryCfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	plannerMetrics, err := middleware.NewPlannerMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize planner metrics")
		os.Exit(1)
	}

	// Catalog storage: Postgres when configured, in-memory otherwise
	var placeRepo place.Repository
	var readiness handler.ReadinessChecker
	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		if err := database.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure database schema")
		}

		placeRepo = place.NewPostgresRepository(pool)
		readiness = pool
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
	} else {
		placeRepo = place.NewInMemoryRepository()
		log.Warn().Msg("DB_ENABLED is not true - using in-memory place catalog")
	}

	placeService := place.NewService(placeRepo)
	log.Info().Msg("place service initialized")

	// Route planning: local heuristic engine behind a circuit-broken provider
	engine := planner.NewEngine()
	provider := planner.NewResilientProvider(planner.ResilientProviderConfig{
		Provider: engine,
	})
	plannerService := planner.NewService(planner.ServiceConfig{
		Provider: provider,
		Logger:   log,
	})
	log.Info().
		Str("provider", plannerService.ProviderName()).
		Msg("planner service initialized")

	// JWT auth for catalog management
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
	})

	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		BuildTime:      BuildTime,
		Logger:         log,
		ServiceName:    serviceName,
		Metrics:        metrics,
		PlannerMetrics: plannerMetrics,
		JWTService:     jwtService,
		PlannerService: plannerService,
		PlaceService:   placeService,
		Readiness:      readiness,
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
