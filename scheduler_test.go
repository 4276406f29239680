package stage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerAfterRunsOnceWhenDue(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.After(100*time.Millisecond, func() { calls++ })

	s.Advance(50 * time.Millisecond)
	assert.Equal(t, 0, calls)
	s.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, calls)
	s.Advance(time.Second)
	assert.Equal(t, 1, calls)
	assert.Zero(t, s.Pending())
}

func TestSchedulerRunsInDueOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(30*time.Millisecond, func() { order = append(order, "c") })
	s.After(10*time.Millisecond, func() { order = append(order, "a") })
	s.After(10*time.Millisecond, func() { order = append(order, "b") })

	s.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestSchedulerCallbacksScheduledDuringAdvanceWait(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(0, func() {
		order = append(order, "outer")
		s.After(0, func() { order = append(order, "inner") })
	})

	s.Advance(0)
	assert.Equal(t, []string{"outer"}, order)
	s.Advance(16 * time.Millisecond)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestSchedulerIgnoresBackwardsTime(t *testing.T) {
	s := NewScheduler()
	s.Advance(time.Second)
	s.Advance(500 * time.Millisecond)
	assert.Equal(t, time.Second, s.Now())
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	ran := false
	id := s.After(10*time.Millisecond, func() { ran = true })

	assert.True(t, s.Cancel(id))
	assert.False(t, s.Cancel(id), "second cancel")
	assert.False(t, s.Cancel(TimerID(999)), "unknown id")
	s.Advance(time.Second)
	assert.False(t, ran)
}

func TestSchedulerCancelDueSibling(t *testing.T) {
	s := NewScheduler()
	ran := false
	var second TimerID
	s.After(10*time.Millisecond, func() { assert.True(t, s.Cancel(second)) })
	second = s.After(20*time.Millisecond, func() { ran = true })

	s.Advance(time.Second)
	assert.False(t, ran, "cancelled while due in the same advance")
}

func TestSchedulerEveryCyclesDurations(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	s.Every([]time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, func(n int) time.Duration {
		at = append(at, s.Now())
		return 0
	})
	require.Len(t, at, 1, "first call is immediate")

	for ms := 0; ms < 700; ms += 50 {
		s.Advance(time.Duration(ms) * time.Millisecond)
	}
	// 0, +100, +200, +100, +200
	assert.Equal(t, []time.Duration{
		0,
		100 * time.Millisecond,
		300 * time.Millisecond,
		400 * time.Millisecond,
		600 * time.Millisecond,
	}, at)
}

func TestSchedulerEveryOverrideAndCount(t *testing.T) {
	s := NewScheduler()
	var counts []int
	s.Every(nil, func(n int) time.Duration {
		counts = append(counts, n)
		if n < 3 {
			return 10 * time.Millisecond
		}
		return 0
	})
	for ms := 0; ms <= 100; ms += 10 {
		s.Advance(time.Duration(ms) * time.Millisecond)
	}
	assert.Equal(t, []int{1, 2, 3}, counts, "no durations and no override ends the interval")
	assert.Zero(t, s.Pending())
}

func TestSchedulerCancelIntervalFromItsCallback(t *testing.T) {
	s := NewScheduler()
	calls := 0
	var id TimerID
	id = s.Every([]time.Duration{10 * time.Millisecond}, func(n int) time.Duration {
		calls++
		if n == 2 {
			s.Cancel(id)
		}
		return 0
	})
	for ms := 0; ms <= 100; ms += 10 {
		s.Advance(time.Duration(ms) * time.Millisecond)
	}
	assert.Equal(t, 2, calls)
	assert.Zero(t, s.Pending())
}
