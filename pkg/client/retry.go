package client

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for retry operations.
var (
	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_retries_total",
		Help: "Total number of retry attempts by error kind",
	}, []string{"error_kind"})

	retryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted by error kind",
	}, []string{"error_kind"})
)

// RetryConfig holds the configuration for retry logic.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including the initial request).
	MaxAttempts int

	// Delay is the fixed wait between attempts.
	Delay time.Duration
}

// DefaultRetryConfig returns the default retry configuration:
// up to two retries after the initial attempt, two seconds apart.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
	}
}

// retryTransient executes fn with fixed-delay retry for transient failures.
// fn returns the error kind of the failure; only retryable kinds are
// attempted again. The delay waits on a timer so context cancellation
// interrupts it immediately.
func retryTransient(ctx context.Context, cfg RetryConfig, fn func(attempt int) (ErrorKind, error)) (int, error) {
	var lastErr error
	var lastKind ErrorKind

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		kind, err := fn(attempt)
		if err == nil {
			if attempt > 1 {
				log.Info().
					Str("error_kind", string(lastKind)).
					Int("attempt", attempt).
					Msg("Request succeeded after retry")
			}
			return attempt, nil
		}

		lastErr = err
		lastKind = kind

		if !retryable(kind) {
			return attempt, lastErr
		}

		if attempt >= cfg.MaxAttempts {
			break
		}

		retriesTotal.WithLabelValues(string(kind)).Inc()

		log.Debug().
			Str("error_kind", string(kind)).
			Int("attempt", attempt).
			Dur("delay", cfg.Delay).
			Msg("Retrying request after delay")

		select {
		case <-ctx.Done():
			log.Warn().
				Str("error_kind", string(kind)).
				Int("attempt", attempt).
				Msg("Context cancelled during retry delay")
			return attempt, fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
		case <-time.After(cfg.Delay):
		}
	}

	retryExhaustedTotal.WithLabelValues(string(lastKind)).Inc()
	log.Warn().
		Str("error_kind", string(lastKind)).
		Int("max_attempts", cfg.MaxAttempts).
		Msg("Retry attempts exhausted")

	return cfg.MaxAttempts, fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, cfg.MaxAttempts, lastErr)
}
