package resilience

import (
	"github.com/riskibarqy/today-api/internal/platform/logging"
	"github.com/sony/gobreaker"
)

// NewCircuitBreaker trips after FailureThreshold consecutive failures and lets
// HalfOpenMaxReq probes through once OpenTimeout has passed. isFailure decides
// which errors count against the dependency; nil counts every error.
func NewCircuitBreaker(name string, cfg CircuitBreakerConfig, isFailure func(error) bool, logger *logging.Logger) *gobreaker.CircuitBreaker {
	cfg = NormalizeCircuitBreakerConfig(cfg)
	if logger == nil {
		logger = logging.Default()
	}
	threshold := uint32(cfg.FailureThreshold)

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(cfg.HalfOpenMaxReq),
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			if isFailure == nil {
				return false
			}
			return !isFailure(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// IsOpen reports whether err was produced by a breaker refusing the call.
func IsOpen(err error) bool {
	return err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests
}
