package reactive

import (
	"reflect"
	"sync"
	"sync/atomic"
)

var idCounter atomic.Uint64

// nextID returns a process-unique identifier for cells, subscriptions and scopes.
func nextID() uint64 {
	return idCounter.Add(1)
}

// Unsubscribe detaches a subscriber. Calling it more than once is a no-op.
type Unsubscribe func()

// ReadOnly is the consumer-facing view of a cell: it can be read and observed
// but not written.
type ReadOnly[T any] interface {
	Get() T
	Subscribe(fn func(T)) Unsubscribe
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// subscribers manages the subscriber list shared by Signal and Derived.
type subscribers[T any] struct {
	mu   sync.RWMutex
	subs []subscriber[T]
}

func (s *subscribers[T]) add(fn func(T)) Unsubscribe {
	if fn == nil {
		return func() {}
	}

	id := nextID()
	s.mu.Lock()
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *subscribers[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			// Preserve order: subscribers run in registration order.
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// notify calls every subscriber with v. The list is copied first so
// subscribers can unsubscribe (or subscribe) while being notified.
func (s *subscribers[T]) notify(v T) {
	s.mu.RLock()
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

func (s *subscribers[T]) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Signal is a mutable, observable value.
type Signal[T any] struct {
	id uint64

	mu    sync.RWMutex
	value T

	// equal decides whether a write changed the value. Nil means defaultEquals.
	equal func(T, T) bool

	subs subscribers[T]
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		id:    nextID(),
		value: initial,
	}
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.id
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores value and notifies subscribers if it differs from the current value.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.subs.notify(value)
	}
}

// Update atomically replaces the value with fn(current).
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	changed := !s.equals(s.value, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.subs.notify(next)
	}
}

// Subscribe registers fn to be called with the new value after every change.
// It does not fire for the current value; use Watch with Immediate for that.
func (s *Signal[T]) Subscribe(fn func(T)) Unsubscribe {
	return s.subs.add(fn)
}

// Subscribers returns the number of active subscribers.
func (s *Signal[T]) Subscribers() int {
	return s.subs.count()
}

// WithEquals replaces the equality function used to detect changes.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.mu.Lock()
	s.equal = fn
	s.mu.Unlock()
	return s
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == when the dynamic values are comparable and
// reflect.DeepEqual otherwise (slices, maps, structs holding them).
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if reflect.ValueOf(av).Comparable() && reflect.ValueOf(bv).Comparable() {
		return av == bv
	}
	return reflect.DeepEqual(av, bv)
}
