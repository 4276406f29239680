package stage

import "time"

// Clock measures time since it was started. The time source is injectable so
// frames can be replayed deterministically.
type Clock struct {
	now     func() time.Time
	start   time.Time
	last    time.Time
	running bool
}

// NewClock creates a stopped clock reading now. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start (re)starts the clock at the current time.
func (c *Clock) Start() {
	c.start = c.now()
	c.last = c.start
	c.running = true
}

// Running reports whether the clock has been started.
func (c *Clock) Running() bool {
	return c.running
}

// Elapsed returns seconds since Start. The first read of a stopped clock
// starts it and returns 0.
func (c *Clock) Elapsed() float64 {
	if !c.running {
		c.Start()
		return 0
	}
	return c.now().Sub(c.start).Seconds()
}

// Delta returns seconds since the previous Delta call (or since Start).
func (c *Clock) Delta() float64 {
	if !c.running {
		c.Start()
		return 0
	}
	now := c.now()
	d := now.Sub(c.last).Seconds()
	c.last = now
	return d
}
