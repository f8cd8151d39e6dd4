package kli

import "sync"

// Signal is a typed event with registered listeners. Each node that emits
// events owns its signals; nothing is dispatched globally.
type Signal[T any] struct {
	mu        sync.Mutex
	nextID    int
	listeners []listener[T]
}

type listener[T any] struct {
	id   int
	fn   func(T)
	once bool
}

// Connect registers fn and returns a function that removes it.
func (s *Signal[T]) Connect(fn func(T)) (disconnect func()) {
	return s.connect(fn, false)
}

// Once registers fn to run on the next Trigger only.
func (s *Signal[T]) Once(fn func(T)) (disconnect func()) {
	return s.connect(fn, true)
}

func (s *Signal[T]) connect(fn func(T), once bool) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn, once: once})
	s.mu.Unlock()
	return func() { s.disconnect(id) }
}

func (s *Signal[T]) disconnect(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Trigger calls every listener with v, in registration order. Listeners may
// connect or disconnect during the call; changes apply to the next Trigger.
func (s *Signal[T]) Trigger(v T) {
	s.mu.Lock()
	current := s.listeners
	if len(current) == 0 {
		s.mu.Unlock()
		return
	}
	kept := make([]listener[T], 0, len(current))
	for _, l := range current {
		if !l.once {
			kept = append(kept, l)
		}
	}
	s.listeners = kept
	s.mu.Unlock()

	for _, l := range current {
		l.fn(v)
	}
}

// Clear removes every listener.
func (s *Signal[T]) Clear() {
	s.mu.Lock()
	s.listeners = nil
	s.mu.Unlock()
}

// Len returns the number of connected listeners.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
