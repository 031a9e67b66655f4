// Package resilience provides fault tolerance for external service calls.
package resilience

import (
	"time"

	"assistant_server/pkg/logger"

	"github.com/sony/gobreaker"
)

// Breaker wraps a circuit breaker around outbound oracle and provider calls.
// After repeated consecutive failures the circuit opens and calls fail fast
// until the upstream has had time to recover.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// Config holds circuit breaker tuning knobs.
type Config struct {
	Name             string
	FailureThreshold uint32        // consecutive failures before opening
	OpenTimeout      time.Duration // time the circuit stays open
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// New creates a breaker with default settings.
func New(name string) *Breaker {
	return NewWithConfig(DefaultConfig(name))
}

// NewWithConfig creates a breaker with the given settings.
func NewWithConfig(cfg Config) *Breaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Name returns the breaker name.
func (b *Breaker) Name() string {
	return b.cb.Name()
}

// IsOpen reports whether the circuit currently rejects calls.
func (b *Breaker) IsOpen() bool {
	return b.cb.State() == gobreaker.StateOpen
}

// Execute runs fn under the breaker and returns its typed result.
func Execute[T any](b *Breaker, fn func() (T, error)) (T, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
