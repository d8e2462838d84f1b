// Package stream implements a replay-last-value broadcast.
//
// A Subject holds the latest published value. Every subscriber first receives
// that value, then each later one. Delivery never blocks the publisher: a
// subscriber that has not consumed its pending value gets it replaced by the
// newer one, so slow readers always observe the latest state.
package stream

import "sync"

// Subject broadcasts values of type T to its subscribers.
type Subject[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[*Subscription[T]]struct{}
	closed bool
}

// NewSubject creates a Subject whose current value is initial.
func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		value: initial,
		subs:  make(map[*Subscription[T]]struct{}),
	}
}

// Value returns the latest published value.
func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Publish replaces the current value and delivers it to every subscriber.
// Publishing on a closed Subject only updates the current value.
func (s *Subject[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	if s.closed {
		return
	}
	for sub := range s.subs {
		sub.offer(v)
	}
}

// Subscribe registers a new subscriber. Its channel already holds the current
// value.
func (s *Subject[T]) Subscribe() *Subscription[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := &Subscription[T]{ch: make(chan T, 1), subject: s}
	if s.closed {
		close(sub.ch)
		return sub
	}
	sub.ch <- s.value
	s.subs[sub] = struct{}{}
	return sub
}

// Len returns the number of active subscribers.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close ends every subscription. Their channels are closed once drained.
func (s *Subject[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for sub := range s.subs {
		delete(s.subs, sub)
		sub.close()
	}
}

func (s *Subject[T]) remove(sub *Subscription[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[sub]; !ok {
		return
	}
	delete(s.subs, sub)
	sub.close()
}

// Subscription is one reader of a Subject.
type Subscription[T any] struct {
	ch      chan T
	subject *Subject[T]
	once    sync.Once
}

// C returns the channel delivering values. It is closed on Unsubscribe or
// when the Subject is closed.
func (s *Subscription[T]) C() <-chan T { return s.ch }

// Unsubscribe stops deliveries and closes C. It is safe to call more than once.
func (s *Subscription[T]) Unsubscribe() { s.subject.remove(s) }

// offer delivers v, dropping a pending undelivered value if needed.
// It must be called with the subject lock held.
func (s *Subscription[T]) offer(v T) {
	select {
	case s.ch <- v:
		return
	default:
	}
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- v:
	default:
	}
}

// close must be called with the subject lock held.
func (s *Subscription[T]) close() {
	s.once.Do(func() { close(s.ch) })
}
