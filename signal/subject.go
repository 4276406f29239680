// Package signal provides a synchronous multicast subject.
//
// A [Subject] delivers every value passed to Next to all current subscribers,
// in the order they subscribed. It does not buffer or replay: values sent
// before a subscriber joins are never seen by it.
//
// Subjects are not safe for concurrent use. They are meant to be driven from
// the frame loop.
package signal

import "github.com/google/uuid"

// Subscription is a handle to one registered callback.
type Subscription struct {
	id     uuid.UUID
	cancel func(uuid.UUID) bool
}

// ID returns the opaque identifier of the subscription.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Unsubscribe removes the callback. It reports false when the subscription
// was already removed.
func (s *Subscription) Unsubscribe() bool {
	if s == nil || s.cancel == nil {
		return false
	}
	return s.cancel(s.id)
}

type subscriber[T any] struct {
	id uuid.UUID
	fn func(T)
}

// Subject is a hot, synchronous value stream.
type Subject[T any] struct {
	subs []subscriber[T]
}

// New returns an empty Subject.
func New[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers fn and returns its subscription.
func (s *Subject[T]) Subscribe(fn func(T)) *Subscription {
	id := uuid.New()
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	return &Subscription{id: id, cancel: s.remove}
}

// Remove removes the subscriber with the given id. It reports false when no
// such subscriber exists.
func (s *Subject[T]) Remove(id uuid.UUID) bool {
	return s.remove(id)
}

func (s *Subject[T]) remove(id uuid.UUID) bool {
	for i, sub := range s.subs {
		if sub.id == id {
			// Copy rather than shift in place so snapshots taken by an
			// in-flight Next keep their view.
			next := make([]subscriber[T], 0, len(s.subs)-1)
			next = append(next, s.subs[:i]...)
			next = append(next, s.subs[i+1:]...)
			s.subs = next
			return true
		}
	}
	return false
}

// Next delivers v to every subscriber registered at the time of the call.
// Subscribers added or removed by a callback take effect from the next call.
func (s *Subject[T]) Next(v T) {
	snapshot := s.subs
	for _, sub := range snapshot {
		sub.fn(v)
	}
}

// Len returns the number of active subscribers.
func (s *Subject[T]) Len() int {
	return len(s.subs)
}
