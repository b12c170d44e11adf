package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker guards an upstream dependency. A nil *CircuitBreaker
// is a disabled breaker that always allows.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state       CircuitState
	failures    int
	openedAt    time.Time
	probes      int
	probeWins   int
	now         func() time.Time
	isFailure   func(error) bool
	onStateFunc func(from, to CircuitState)
}

// NewCircuitBreaker opens after failureThreshold consecutive failures, stays
// open for openTimeout and then lets halfOpenMaxReq probes through.
func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	return &CircuitBreaker{
		cfg: CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: failureThreshold,
			OpenTimeout:      openTimeout,
			HalfOpenMaxReq:   halfOpenMaxReq,
		}.withDefaults(),
		state:     CircuitStateClosed,
		now:       time.Now,
		isFailure: func(err error) bool { return err != nil },
	}
}

// WithFailureFilter sets which errors count against the breaker. Errors the
// filter rejects are recorded as successes (e.g. a 404 from a healthy
// upstream).
func (b *CircuitBreaker) WithFailureFilter(isFailure func(error) bool) *CircuitBreaker {
	if b == nil || isFailure == nil {
		return b
	}
	b.isFailure = isFailure
	return b
}

// OnStateChange registers a hook called, under the breaker lock, on every
// transition.
func (b *CircuitBreaker) OnStateChange(fn func(from, to CircuitState)) *CircuitBreaker {
	if b == nil {
		return b
	}
	b.onStateFunc = fn
	return b
}

// Execute runs fn when the breaker allows it and records the outcome.
func (b *CircuitBreaker) Execute(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	if b != nil && b.isFailure(err) {
		b.RecordFailure()
	} else {
		b.RecordSuccess()
	}
	return err
}

func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.transition(CircuitStateHalfOpen)
	}

	if b.state == CircuitStateHalfOpen {
		if b.probes >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.probes++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		b.probeWins++
		if b.probeWins >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
			b.transition(CircuitStateClosed)
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.transition(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		b.transition(CircuitStateOpen)
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) transition(to CircuitState) {
	from := b.state
	b.state = to
	b.probes = 0
	b.probeWins = 0

	switch to {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}

	if b.onStateFunc != nil && from != to {
		b.onStateFunc(from, to)
	}
}
