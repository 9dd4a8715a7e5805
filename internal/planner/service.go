package planner

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripweave/tripweave/pkg/geo"
)

// ServiceConfig holds configuration for the planning service.
type ServiceConfig struct {
	// Provider synthesizes routes over ordered stop sequences.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache computed plans (default: 5 minutes).
	CacheTTL time.Duration

	// CacheGridSize is the size of cache grid cells in degrees (default:
	// 0.001 ~ 110m). Requests whose stops all fall in the same cells share a
	// cached plan.
	CacheGridSize float64

	// StaleIfErrorTTL allows serving stale plans on provider errors
	// (default: 15 minutes).
	StaleIfErrorTTL time.Duration

	// CleanupInterval is how often to clean up expired entries (default: 5 minutes).
	CleanupInterval time.Duration
}

// PlanRequest describes one planning request.
type PlanRequest struct {
	// Origin is the traveler's current location. Required unless the stop
	// selection is empty.
	Origin *Point

	// Stops is the unordered (or, with KeepOrder, pre-ordered) selection of
	// places to visit.
	Stops []Point

	// Mode is the travel mode for the duration model.
	Mode TravelMode

	// KeepOrder skips the ordering heuristic and visits Stops verbatim.
	KeepOrder bool
}

// Plan is the result of a planning request.
type Plan struct {
	// OrderedStops is the visiting sequence, origin first.
	OrderedStops []Point
	Route        *Route
}

// Service computes tour plans through a Provider, with request caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	cacheGridSize   float64
	staleIfErrorTTL time.Duration
	cleanupInterval time.Duration

	mu          sync.RWMutex
	cache       map[string]*cachedPlan
	lastCleanup time.Time
}

type cachedPlan struct {
	plan      *Plan
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new planning service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	cacheGridSize := cfg.CacheGridSize
	if cacheGridSize == 0 {
		cacheGridSize = 0.001 // ~110m at the equator
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 15 * time.Minute
	}

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval == 0 {
		cleanupInterval = 5 * time.Minute
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		cacheGridSize:   cacheGridSize,
		staleIfErrorTTL: staleIfErrorTTL,
		cleanupInterval: cleanupInterval,
		cache:           make(map[string]*cachedPlan),
	}
}

// PlanTour orders the requested stops and synthesizes the connecting route.
// Uses a cached plan if one is available and not expired.
//
// An empty stop selection is a valid request and yields an empty plan. A
// missing origin with a non-empty selection is a caller contract violation
// and returns ErrMissingOrigin.
func (s *Service) PlanTour(ctx context.Context, req PlanRequest) (*Plan, error) {
	if _, err := req.Mode.Speed(); err != nil {
		return nil, err
	}

	if len(req.Stops) == 0 {
		return &Plan{
			OrderedStops: []Point{},
			Route:        &Route{Steps: []RouteStep{}, Coordinates: []geo.Coordinate{}},
		}, nil
	}

	if req.Origin == nil {
		return nil, ErrMissingOrigin
	}

	cacheKey := s.cacheKey(req)

	s.mu.RLock()
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		s.logger.Debug().
			Str("cache_key", cacheKey).
			Msg("cache hit for plan")
		return cached.plan, nil
	}
	s.mu.RUnlock()

	return s.computePlan(ctx, req, cacheKey)
}

// computePlan runs the ordering heuristic and the provider, then updates the
// cache.
func (s *Service) computePlan(ctx context.Context, req PlanRequest, cacheKey string) (*Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check cache (prevents thundering herd)
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		s.logger.Debug().
			Str("cache_key", cacheKey).
			Msg("cache hit after double-check")
		return cached.plan, nil
	}

	origin := OriginPoint(req.Origin.Coord)

	var visiting []Point
	if req.KeepOrder {
		visiting = append([]Point{}, req.Stops...)
	} else {
		visiting = OrderStops(origin, req.Stops)
	}

	sequence := make([]Point, 0, len(visiting)+1)
	sequence = append(sequence, origin)
	sequence = append(sequence, visiting...)

	s.logger.Debug().
		Float64("origin_lat", origin.Coord.Lat).
		Float64("origin_lon", origin.Coord.Lon).
		Int("stop_count", len(visiting)).
		Str("mode", string(req.Mode)).
		Str("provider", s.provider.Name()).
		Bool("keep_order", req.KeepOrder).
		Msg("computing plan")

	route, err := s.provider.BuildRoute(ctx, sequence, req.Mode)
	if err != nil {
		s.logger.Error().Err(err).
			Int("stop_count", len(visiting)).
			Str("mode", string(req.Mode)).
			Msg("failed to build route")

		// Stale-if-error: keep serving the last good plan for a while.
		if cached, ok := s.cache[cacheKey]; ok {
			if time.Now().Before(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
				s.logger.Warn().
					Time("fetched_at", cached.fetchedAt).
					Str("cache_key", cacheKey).
					Msg("serving stale plan due to provider error")
				return cached.plan, nil
			}
		}

		return nil, err
	}

	plan := &Plan{
		OrderedStops: sequence,
		Route:        route,
	}

	now := time.Now()
	s.cache[cacheKey] = &cachedPlan{
		plan:      plan,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}

	s.logger.Debug().
		Str("cache_key", cacheKey).
		Float64("distance_km", route.DistanceKm).
		Int("duration_minutes", route.DurationMinutes).
		Msg("cached computed plan")

	s.cleanupIfNeeded()

	return plan, nil
}

// cacheKey generates a cache key for a planning request.
// Stops are grid-quantized so jittery GPS fixes map to the same entry.
// Format: {mode}:{keepOrder}:{gridOriginLat},{gridOriginLon}:{stop grid cells...}.
func (s *Service) cacheKey(req PlanRequest) string {
	var b strings.Builder
	b.WriteString(string(req.Mode))
	if req.KeepOrder {
		b.WriteString(":keep")
	}
	fmt.Fprintf(&b, ":%.3f,%.3f",
		s.quantize(req.Origin.Coord.Lat),
		s.quantize(req.Origin.Coord.Lon),
	)
	for _, stop := range req.Stops {
		fmt.Fprintf(&b, ":%.3f,%.3f",
			s.quantize(stop.Coord.Lat),
			s.quantize(stop.Coord.Lon),
		)
	}
	return b.String()
}

func (s *Service) quantize(v float64) float64 {
	return math.Floor(v/s.cacheGridSize) * s.cacheGridSize
}

// cleanupIfNeeded removes expired entries if the cleanup interval has passed.
func (s *Service) cleanupIfNeeded() {
	now := time.Now()
	if now.Sub(s.lastCleanup) < s.cleanupInterval {
		return
	}

	s.lastCleanup = now
	expired := 0

	for key, cached := range s.cache {
		// Remove entries that are past the stale-if-error window.
		if now.After(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			delete(s.cache, key)
			expired++
		}
	}

	if expired > 0 {
		s.logger.Debug().
			Int("expired_entries", expired).
			Msg("cleaned up expired plan cache entries")
	}
}

// InvalidateCache clears all cached plans.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedPlan)
}

// CacheStats contains plan cache statistics.
type CacheStats struct {
	TotalEntries int
	FreshEntries int
	StaleEntries int
	Provider     string
}

// CacheStats returns plan cache statistics.
func (s *Service) CacheStats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	fresh := 0
	stale := 0

	for _, c := range s.cache {
		if now.Before(c.expiresAt) {
			fresh++
		} else if now.Before(c.fetchedAt.Add(s.staleIfErrorTTL)) {
			stale++
		}
	}

	return CacheStats{
		TotalEntries: len(s.cache),
		FreshEntries: fresh,
		StaleEntries: stale,
		Provider:     s.provider.Name(),
	}
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}
