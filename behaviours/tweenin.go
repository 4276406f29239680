package behaviours

import (
	"time"

	"cogentcore.org/core/math32"
	"github.com/tanema/gween/ease"

	"github.com/rayportfolio/stage"
)

// TweenIn slides the entity group from Offset to its rest position when the
// entity starts.
type TweenIn struct {
	stage.MonoBehaviour

	// Offset is added to the rest position at start.
	Offset math32.Vector3
	// Duration of the slide in seconds.
	Duration float32
	// Ease shapes the slide. Nil means ease.OutCubic.
	Ease ease.TweenFunc
	// Unit is the duration of one unit of the frame time handed to Update:
	// time.Millisecond for frame timestamps, time.Second for clock time.
	Unit time.Duration

	tween *stage.TweenGroup
	last  float64
	ticks int
}

// NewTweenIn returns a constructor for a TweenIn with the given offset and
// duration, driven by millisecond frame timestamps.
func NewTweenIn(offset math32.Vector3, duration float32) stage.NewComponentFunc {
	return func(base stage.MonoBehaviour) (stage.Component, error) {
		return &TweenIn{
			MonoBehaviour: base,
			Offset:        offset,
			Duration:      duration,
			Unit:          time.Millisecond,
		}, nil
	}
}

// Start moves the group to its offset and starts the slide back.
func (c *TweenIn) Start() error {
	group := c.Entity().Group()
	rest := group.Position
	group.Position = rest.Add(c.Offset)
	fn := c.Ease
	if fn == nil {
		fn = ease.OutCubic
	}
	c.tween = stage.TweenPosition(group, rest, c.Duration, fn)
	return nil
}

// Update advances the slide by the time since the previous update.
func (c *TweenIn) Update(t float64) {
	if c.tween == nil || c.tween.Done {
		return
	}
	var dt float64
	if c.ticks > 0 {
		dt = (t - c.last) * c.Unit.Seconds()
	}
	c.last = t
	c.ticks++
	if dt < 0 {
		dt = 0
	}
	c.tween.Update(float32(dt))
}

// Done reports whether the slide has finished.
func (c *TweenIn) Done() bool {
	return c.tween != nil && c.tween.Done
}
