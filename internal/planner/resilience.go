package planner

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// ResilientProviderConfig holds configuration for the resilient provider
// wrapper.
type ResilientProviderConfig struct {
	// Provider is the wrapped route provider.
	Provider Provider

	// MaxRetries is the maximum number of retry attempts. Default: 3.
	MaxRetries uint64

	// InitialInterval is the initial retry backoff interval. Default: 100ms.
	InitialInterval time.Duration

	// MaxInterval is the maximum retry backoff interval. Default: 5 seconds.
	MaxInterval time.Duration

	// BreakerMaxRequests is the number of requests allowed in half-open
	// state. Default: 1.
	BreakerMaxRequests uint32

	// BreakerTimeout is the period of open state before switching to
	// half-open. Default: 60 seconds.
	BreakerTimeout time.Duration
}

// ResilientProvider decorates a Provider with circuit breaking and retry.
// The local heuristic engine never fails, so the wrapper is inert around it;
// the protection matters when a network-backed provider is plugged in behind
// the same Provider contract.
type ResilientProvider struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker[*Route]
	config   ResilientProviderConfig
}

// NewResilientProvider wraps the given provider with a circuit breaker and
// exponential-backoff retry.
func NewResilientProvider(cfg ResilientProviderConfig) *ResilientProvider {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}
	if cfg.BreakerMaxRequests == 0 {
		cfg.BreakerMaxRequests = 1
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 60 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[*Route](gobreaker.Settings{
		Name:        cfg.Provider.Name(),
		MaxRequests: cfg.BreakerMaxRequests,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
	})

	return &ResilientProvider{
		provider: cfg.Provider,
		breaker:  breaker,
		config:   cfg,
	}
}

// Name implements Provider.
func (p *ResilientProvider) Name() string {
	return p.provider.Name()
}

// SupportedModes implements Provider.
func (p *ResilientProvider) SupportedModes() []TravelMode {
	return p.provider.SupportedModes()
}

// BuildRoute executes the wrapped provider with circuit breaker protection
// and retries transient failures with exponential backoff. Contract
// violations (invalid mode, invalid coordinates, missing origin) are never
// retried.
func (p *ResilientProvider) BuildRoute(ctx context.Context, stops []Point, mode TravelMode) (*Route, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.config.InitialInterval
	bo.MaxInterval = p.config.MaxInterval
	bo.MaxElapsedTime = 0 // retries are bounded by WithMaxRetries

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, p.config.MaxRetries), ctx)

	var route *Route

	operation := func() error {
		result, err := p.breaker.Execute(func() (*Route, error) {
			return p.provider.BuildRoute(ctx, stops, mode)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrProviderUnavailable)
			}
			if !isRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}

		route = result
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return route, nil
}

// BreakerState returns the current state of the circuit breaker.
func (p *ResilientProvider) BreakerState() gobreaker.State {
	return p.breaker.State()
}

// isRetryable reports whether an error is transient. Caller contract
// violations are deterministic and retrying them only burns the breaker
// budget.
func isRetryable(err error) bool {
	return !errors.Is(err, ErrInvalidMode) &&
		!errors.Is(err, ErrMissingOrigin) &&
		!errors.Is(err, ErrInvalidCoordinates)
}
