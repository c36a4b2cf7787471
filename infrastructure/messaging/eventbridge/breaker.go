package eventbridge

import (
	"context"
	"time"

	"clouddictionary/application/ports"
	"clouddictionary/domain/events"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig holds configuration for the publishing circuit breaker
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// Consecutive failures that open the circuit
	FailureThreshold uint32
}

// DefaultBreakerConfig returns the configuration used in production
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "eventbridge",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakingPublisher stops calling the wrapped publisher while it keeps
// failing. Rejected events are dropped with ErrOpenState or
// ErrTooManyRequests returned to the caller.
type BreakingPublisher struct {
	next   ports.EventPublisher
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewBreakingPublisher wraps next in a circuit breaker
func NewBreakingPublisher(next ports.EventPublisher, config BreakerConfig, logger *zap.Logger) *BreakingPublisher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &BreakingPublisher{next: next, cb: cb, logger: logger}
}

var _ ports.EventPublisher = (*BreakingPublisher)(nil)

// Publish forwards events unless the circuit is open
func (p *BreakingPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.next.Publish(ctx, domainEvents...)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		p.logger.Debug("Dropped events while circuit is open", zap.Int("count", len(domainEvents)))
	}
	return err
}

// State reports the breaker state
func (p *BreakingPublisher) State() gobreaker.State {
	return p.cb.State()
}
