package resilience

import "time"

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 15 * time.Second
	defaultHalfOpenProbes   = 2
)

// CircuitBreakerConfig mirrors the <PREFIX>_CIRCUIT_* environment keys.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: defaultFailureThreshold,
		OpenTimeout:      defaultOpenTimeout,
		HalfOpenMaxReq:   defaultHalfOpenProbes,
	}
}

// withDefaults fills zero or negative limits; Enabled is left alone.
func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = defaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultOpenTimeout
	}
	if c.HalfOpenMaxReq <= 0 {
		c.HalfOpenMaxReq = defaultHalfOpenProbes
	}
	return c
}

// Breaker builds the configured breaker. A disabled config yields nil, which
// every CircuitBreaker method treats as always closed.
func (c CircuitBreakerConfig) Breaker() *CircuitBreaker {
	if !c.Enabled {
		return nil
	}
	return NewCircuitBreaker(c.FailureThreshold, c.OpenTimeout, c.HalfOpenMaxReq)
}
