package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-points/internal/platform/resilience"
)

const (
	flightLoad    = "load"
	flightRefresh = "refresh"
)

// Loader produces a fresh value for a Snapshot.
type Loader[T any] func(ctx context.Context) (T, error)

// Snapshot memoises a single loaded value. Concurrent misses share one
// load; a zero ttl keeps the value until Invalidate or Refresh.
type Snapshot[T any] struct {
	mu         sync.RWMutex
	value      T
	loaded     bool
	loadedAt   time.Time
	generation uint64

	ttl    time.Duration
	loader Loader[T]
	flight resilience.Flight[T]
	now    func() time.Time
}

func NewSnapshot[T any](ttl time.Duration, loader Loader[T]) *Snapshot[T] {
	return &Snapshot[T]{
		ttl:    ttl,
		loader: loader,
		now:    time.Now,
	}
}

// Peek returns the cached value without loading, even when expired.
func (s *Snapshot[T]) Peek() (T, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.loadedAt, s.loaded
}

// Get returns the cached value while fresh and loads it otherwise.
func (s *Snapshot[T]) Get(ctx context.Context) (T, error) {
	if value, ok := s.fresh(); ok {
		return value, nil
	}
	return s.load(ctx, flightLoad, true)
}

// Refresh always reloads and replaces the cached value on success.
func (s *Snapshot[T]) Refresh(ctx context.Context) (T, error) {
	return s.load(ctx, flightRefresh, false)
}

// Invalidate drops the cached value. A load already in flight will not
// repopulate the cache.
func (s *Snapshot[T]) Invalidate() {
	s.mu.Lock()
	var zero T
	s.value = zero
	s.loaded = false
	s.loadedAt = time.Time{}
	s.generation++
	s.mu.Unlock()
}

func (s *Snapshot[T]) fresh() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		var zero T
		return zero, false
	}
	if s.ttl > 0 && !s.loadedAt.Add(s.ttl).After(s.now()) {
		var zero T
		return zero, false
	}
	return s.value, true
}

func (s *Snapshot[T]) load(ctx context.Context, key string, reuseFresh bool) (T, error) {
	var zero T
	if s.loader == nil {
		return zero, fmt.Errorf("snapshot loader is required")
	}

	value, _, err := s.flight.Do(ctx, key, func() (T, error) {
		if reuseFresh {
			if cached, ok := s.fresh(); ok {
				return cached, nil
			}
		}

		s.mu.RLock()
		generation := s.generation
		s.mu.RUnlock()

		loaded, loadErr := s.loader(ctx)
		if loadErr != nil {
			return zero, loadErr
		}

		s.mu.Lock()
		if s.generation == generation {
			s.value = loaded
			s.loaded = true
			s.loadedAt = s.now()
		}
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return value, nil
}
