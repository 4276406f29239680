package behaviours

import (
	"cogentcore.org/core/math32"

	"github.com/rayportfolio/stage"
)

// CameraPanner eases the current camera toward the point the pointer aims at
// on a tilted plane through the origin. The camera keeps its viewing
// direction; only its X and Y follow, clamped to PanLimit.
type CameraPanner struct {
	stage.MonoBehaviour

	// PanLimit bounds the camera offset on X and Y.
	PanLimit float32
	// Easing is the fraction of the remaining distance covered per update.
	Easing float32
	// Normal is the normal of the aim plane.
	Normal math32.Vector3

	aim   math32.Vector3
	eased math32.Vector3
}

// NewCameraPanner creates a panner with a pan limit of 1 and easing of 0.01.
func NewCameraPanner(base stage.MonoBehaviour) (stage.Component, error) {
	return &CameraPanner{
		MonoBehaviour: base,
		PanLimit:      1,
		Easing:        0.01,
		Normal:        math32.Vec3(0, 1, 1.5),
	}, nil
}

// Update re-aims when the pointer moved and eases the camera one step.
func (c *CameraPanner) Update(float64) {
	s := c.Scene()
	if s == nil || s.CurrentCamera() == nil {
		return
	}
	cam := s.CurrentCamera()
	if p := s.Pointer(); p != nil && p.Moved() {
		c.reaim(cam, p)
	}

	target := math32.Vec3(
		math32.Clamp(c.aim.X, -c.PanLimit, c.PanLimit),
		math32.Clamp(c.aim.Y, -c.PanLimit, c.PanLimit),
		c.aim.Z,
	)
	c.eased = c.eased.Add(target.Sub(c.eased).MulScalar(c.Easing))

	pose := cam.Pose()
	pose.Translate(math32.Vec3(c.eased.X-pose.Position.X, c.eased.Y-pose.Position.Y, 0))
}

// Aim returns the last point hit on the aim plane.
func (c *CameraPanner) Aim() math32.Vector3 {
	return c.aim
}

func (c *CameraPanner) reaim(cam stage.Camera, p *stage.Pointer) {
	w, h := c.windowSize()
	x, y := p.NDC(w, h)
	origin, dir, ok := stage.Ray(cam, float32(x), float32(y))
	if !ok {
		return
	}
	denom := c.Normal.Dot(dir)
	if denom == 0 {
		return
	}
	t := -c.Normal.Dot(origin) / denom
	if t < 0 {
		return
	}
	c.aim = origin.Add(dir.MulScalar(t))
}

// windowSize is the viewport of the page, falling back to the canvas size.
func (c *CameraPanner) windowSize() (w, h float64) {
	s := c.Scene()
	if doc := s.Document(); doc != nil {
		vp := doc.Viewport()
		if vp.Width > 0 && vp.Height > 0 {
			return vp.Width, vp.Height
		}
	}
	if canvas := s.Canvas(); canvas != nil {
		return canvas.ClientSize()
	}
	return 0, 0
}
