package stage

import (
	"slices"
	"time"
)

// TimerID identifies a scheduled callback. The zero value is never issued.
type TimerID uint64

// IntervalFunc is called by an asymmetric interval with the 1-based call
// count. A positive return value overrides the delay before the next call;
// zero keeps cycling through the configured durations.
type IntervalFunc func(n int) time.Duration

type timer struct {
	id  TimerID
	due time.Duration
	seq uint64
	fn  func()

	fired     bool
	cancelled bool

	// interval state
	interval  IntervalFunc
	durations []time.Duration
	index     int
	calls     int
}

// Scheduler runs callbacks on frame time instead of wall time. The frame loop
// calls Advance each tick; callbacks run on the loop goroutine.
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	seq    uint64
	timers []*timer
	due    []*timer
	firing *timer
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the time of the last Advance.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of scheduled callbacks.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	t := &timer{id: s.issue(), fn: fn}
	s.arm(t, d)
	return t.id
}

// Every runs fn immediately and then again after each of durations in turn,
// wrapping around. A positive return from fn overrides the next delay. With
// no durations and no override the interval ends.
func (s *Scheduler) Every(durations []time.Duration, fn IntervalFunc) TimerID {
	t := &timer{
		id:        s.issue(),
		interval:  fn,
		durations: slices.Clone(durations),
		index:     -1,
	}
	s.fireInterval(t)
	return t.id
}

// Cancel removes the callback. It reports false for unknown or finished ids.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = slices.Delete(s.timers, i, i+1)
			return true
		}
	}
	if t := s.firing; t != nil && t.id == id && !t.cancelled {
		t.cancelled = true
		return true
	}
	// Due in the Advance currently running but not fired yet.
	for _, t := range s.due {
		if t.id == id && !t.fired && !t.cancelled {
			t.cancelled = true
			return true
		}
	}
	return false
}

// Advance moves the clock to now and runs every callback due by then, in due
// order. Callbacks scheduled while advancing run no earlier than the next
// Advance. Moving backwards is ignored.
func (s *Scheduler) Advance(now time.Duration) {
	if now < s.now {
		return
	}
	s.now = now

	s.due = s.due[:0]
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.due <= now {
			s.due = append(s.due, t)
		} else {
			kept = append(kept, t)
		}
	}
	clear(s.timers[len(kept):])
	s.timers = kept
	slices.SortFunc(s.due, func(a, b *timer) int {
		if a.due != b.due {
			if a.due < b.due {
				return -1
			}
			return 1
		}
		if a.seq < b.seq {
			return -1
		}
		return 1
	})

	for _, t := range s.due {
		if t.cancelled {
			continue
		}
		t.fired = true
		if t.interval != nil {
			s.fireInterval(t)
			continue
		}
		t.fn()
	}
}

func (s *Scheduler) fireInterval(t *timer) {
	t.calls++
	prev := s.firing
	s.firing = t
	delay := t.interval(t.calls)
	s.firing = prev
	if t.cancelled {
		return
	}
	if delay <= 0 {
		if len(t.durations) == 0 {
			return
		}
		if t.index < len(t.durations)-1 {
			t.index++
		} else {
			t.index = 0
		}
		delay = t.durations[t.index]
	}
	s.arm(t, delay)
}

func (s *Scheduler) arm(t *timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.seq++
	t.seq = s.seq
	t.fired = false
	t.due = s.now + d
	s.timers = append(s.timers, t)
}

func (s *Scheduler) issue() TimerID {
	s.nextID++
	return s.nextID
}
