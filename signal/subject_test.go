package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectDeliversInSubscriptionOrder(t *testing.T) {
	s := New[int]()
	var got []string
	s.Subscribe(func(v int) { got = append(got, "a") })
	s.Subscribe(func(v int) { got = append(got, "b") })
	s.Subscribe(func(v int) { got = append(got, "c") })

	s.Next(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSubjectDoesNotReplay(t *testing.T) {
	s := New[string]()
	s.Next("lost")

	var got []string
	s.Subscribe(func(v string) { got = append(got, v) })
	s.Next("kept")
	assert.Equal(t, []string{"kept"}, got)
}

func TestUnsubscribe(t *testing.T) {
	s := New[int]()
	calls := 0
	sub := s.Subscribe(func(int) { calls++ })

	require.True(t, sub.Unsubscribe())
	assert.False(t, sub.Unsubscribe(), "second unsubscribe reports false")
	s.Next(1)
	assert.Zero(t, calls)
	assert.Zero(t, s.Len())
}

func TestUnsubscribeDuringNext(t *testing.T) {
	s := New[int]()
	var got []string
	var second *Subscription
	s.Subscribe(func(int) {
		got = append(got, "first")
		second.Unsubscribe()
	})
	second = s.Subscribe(func(int) { got = append(got, "second") })
	s.Subscribe(func(int) { got = append(got, "third") })

	s.Next(1)
	assert.Equal(t, []string{"first", "second", "third"}, got, "snapshot keeps the in-flight dispatch intact")

	got = nil
	s.Next(2)
	assert.Equal(t, []string{"first", "third"}, got)
}

func TestSubscribeDuringNext(t *testing.T) {
	s := New[int]()
	late := 0
	s.Subscribe(func(int) {
		s.Subscribe(func(int) { late++ })
	})

	s.Next(1)
	assert.Zero(t, late, "subscribers added mid-dispatch wait for the next value")
	s.Next(2)
	assert.Equal(t, 1, late)
}

func TestRemoveUnknownID(t *testing.T) {
	s := New[int]()
	keep := 0
	s.Subscribe(func(int) { keep++ })
	other := New[int]().Subscribe(func(int) {})

	assert.False(t, s.Remove(other.ID()))
	s.Next(0)
	assert.Equal(t, 1, keep)
}

func TestNilSubscriptionUnsubscribe(t *testing.T) {
	var sub *Subscription
	assert.False(t, sub.Unsubscribe())
}
