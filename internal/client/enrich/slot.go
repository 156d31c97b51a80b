package enrich

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrInFlight    = errors.New("request already in flight")
	ErrNotAdmitted = errors.New("feature not available")
)

// Slot guards one outstanding request per key.
type Slot[K comparable, V any] struct {
	mu       sync.Mutex
	inflight map[K]struct{}
}

func NewSlot[K comparable, V any]() *Slot[K, V] {
	return &Slot[K, V]{inflight: make(map[K]struct{})}
}

// Begin claims key. It returns false while another request for key is
// outstanding. A successful Begin must be paired with End.
func (s *Slot[K, V]) Begin(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Slot[K, V]) End(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}

// InFlight reports whether a request for key is outstanding. Views use it to
// disable the refresh affordance.
func (s *Slot[K, V]) InFlight(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inflight[key]
	return busy
}

// Fetch runs fn while holding key. It returns ErrInFlight without calling fn
// when key is already held.
func (s *Slot[K, V]) Fetch(ctx context.Context, key K, fn func(context.Context) (V, error)) (V, error) {
	if !s.Begin(key) {
		var zero V
		return zero, ErrInFlight
	}
	defer s.End(key)
	return fn(ctx)
}
