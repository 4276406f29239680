package stage

import (
	"cogentcore.org/core/math32"
)

// Pose places a camera in the scene: where it is, what it looks at and which
// way is up.
type Pose struct {
	Position math32.Vector3
	Target   math32.Vector3
	Up       math32.Vector3
}

// DefaultPose sits on the positive Z axis at distance z looking at the origin.
func DefaultPose(z float32) Pose {
	return Pose{
		Position: math32.Vec3(0, 0, z),
		Up:       math32.Vec3(0, 1, 0),
	}
}

// basis returns the camera's right, up and viewing directions as unit
// vectors. ok is false when the pose looks at its own position.
func (p *Pose) basis() (side, up, fwd math32.Vector3, ok bool) {
	fwd = p.Target.Sub(p.Position)
	l := fwd.Length()
	if l == 0 {
		return side, up, fwd, false
	}
	fwd = fwd.MulScalar(1 / l)
	up = p.Up
	if up.Length() == 0 {
		up = math32.Vec3(0, 1, 0)
	}
	side = fwd.Cross(up)
	if side.Length() == 0 {
		// Looking along up; any perpendicular axis will do.
		side = fwd.Cross(math32.Vec3(0, 0, 1))
		if side.Length() == 0 {
			side = fwd.Cross(math32.Vec3(1, 0, 0))
		}
	}
	side = side.MulScalar(1 / side.Length())
	return side, side.Cross(fwd), fwd, true
}

// ViewMatrix returns the world-to-camera transform, the inverse of the
// camera's placement. A pose looking at its own position only translates.
func (p *Pose) ViewMatrix() *math32.Matrix4 {
	_, up, _, ok := p.basis()
	if !ok {
		m := math32.Identity4()
		m.SetPos(p.Position.MulScalar(-1))
		return m
	}
	world := math32.Identity4()
	world.LookAt(p.Position, p.Target, up)
	world.SetPos(p.Position)
	view, err := world.Inverse()
	if err != nil {
		return math32.Identity4()
	}
	return view
}

// Translate moves both the position and the target by d, keeping the
// viewing direction.
func (p *Pose) Translate(d math32.Vector3) {
	p.Position = p.Position.Add(d)
	p.Target = p.Target.Add(d)
}

// Camera projects the scene graph onto a canvas.
type Camera interface {
	// Pose returns the mutable placement of the camera.
	Pose() *Pose
	// ProjectionMatrix returns the camera-to-clip transform.
	ProjectionMatrix() *math32.Matrix4
}

// --- Perspective ---

// PerspectiveCamera is a pinhole camera. Its projection depends on Aspect and
// is recomputed lazily after UpdateProjectionMatrix or SetAspect.
type PerspectiveCamera struct {
	View Pose
	// FOV is the vertical field of view in degrees.
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	projection math32.Matrix4
	dirty      bool
}

// NewPerspectiveCamera creates a camera with the given vertical field of view
// in degrees, aspect 1 and clip planes 0.1 and 1000, placed by DefaultPose(5).
func NewPerspectiveCamera(fov float32) *PerspectiveCamera {
	return &PerspectiveCamera{
		View:   DefaultPose(5),
		FOV:    fov,
		Aspect: 1,
		Near:   0.1,
		Far:    1000,
		dirty:  true,
	}
}

// Pose implements Camera.
func (c *PerspectiveCamera) Pose() *Pose {
	return &c.View
}

// SetAspect changes the aspect ratio and marks the projection stale.
func (c *PerspectiveCamera) SetAspect(aspect float32) {
	c.Aspect = aspect
	c.dirty = true
}

// UpdateProjectionMatrix marks the projection stale so the next
// ProjectionMatrix call rebuilds it from the current fields.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.dirty = true
}

// ProjectionMatrix implements Camera.
func (c *PerspectiveCamera) ProjectionMatrix() *math32.Matrix4 {
	if c.dirty {
		c.projection = perspective(c.FOV, c.Aspect, c.Near, c.Far)
		c.dirty = false
	}
	return &c.projection
}

// perspective builds an OpenGL style projection for a vertical field of view
// in degrees. Unusable aspect or clip planes fall back to the defaults.
func perspective(fov, aspect, near, far float32) math32.Matrix4 {
	if aspect == 0 || near == far {
		aspect, near, far = 1, 0.1, 1000
	}
	var m math32.Matrix4
	m.SetPerspective(fov, aspect, near, far)
	return m
}

// --- Orthographic ---

// OrthographicCamera projects along parallel rays onto a fixed frustum. It is
// never adapted to the canvas aspect.
type OrthographicCamera struct {
	View Pose

	Left, Right float32
	Top, Bottom float32
	Near, Far   float32
}

// NewOrthographicCamera creates a camera viewing the given frustum, placed by
// DefaultPose(5).
func NewOrthographicCamera(left, right, top, bottom, near, far float32) *OrthographicCamera {
	return &OrthographicCamera{
		View:   DefaultPose(5),
		Left:   left,
		Right:  right,
		Top:    top,
		Bottom: bottom,
		Near:   near,
		Far:    far,
	}
}

// Pose implements Camera.
func (c *OrthographicCamera) Pose() *Pose {
	return &c.View
}

// ProjectionMatrix implements Camera. The frustum may be off-center; the
// symmetric projection is shifted by its center.
func (c *OrthographicCamera) ProjectionMatrix() *math32.Matrix4 {
	w := c.Right - c.Left
	h := c.Top - c.Bottom
	if w == 0 || h == 0 || c.Far == c.Near {
		return math32.Identity4()
	}
	m := &math32.Matrix4{}
	m.SetOrthographic(w, h, c.Near, c.Far)
	m[12] = -(c.Right + c.Left) / w
	m[13] = -(c.Top + c.Bottom) / h
	return m
}

// --- Projection ---

// Project maps a world point to normalized device coordinates through cam.
// ok is false when the point lies behind the camera.
func Project(cam Camera, world math32.Vector3) (ndc math32.Vector3, ok bool) {
	clip := math32.Vector4FromVector3(world, 1).
		MulMatrix4(cam.Pose().ViewMatrix()).
		MulMatrix4(cam.ProjectionMatrix())
	if clip.W <= 0 {
		return math32.Vector3{}, false
	}
	return clip.PerspDiv(), true
}

// Ray returns the world space ray from cam through the ndc point of its
// image plane. dir is a unit vector. ok is false for degenerate poses and for
// camera types other than the perspective and orthographic ones.
func Ray(cam Camera, ndcX, ndcY float32) (origin, dir math32.Vector3, ok bool) {
	pose := cam.Pose()
	side, up, fwd, ok := pose.basis()
	if !ok {
		return origin, dir, false
	}
	switch c := cam.(type) {
	case *PerspectiveCamera:
		ty := math32.Tan(math32.DegToRad(c.FOV) / 2)
		tx := ty * c.Aspect
		dir = fwd.Add(side.MulScalar(ndcX * tx)).Add(up.MulScalar(ndcY * ty))
		return pose.Position, dir.MulScalar(1 / dir.Length()), true
	case *OrthographicCamera:
		x := (c.Left+c.Right)/2 + ndcX*(c.Right-c.Left)/2
		y := (c.Top+c.Bottom)/2 + ndcY*(c.Top-c.Bottom)/2
		origin = pose.Position.Add(side.MulScalar(x)).Add(up.MulScalar(y))
		return origin, fwd, true
	}
	return origin, dir, false
}

// ToScreen converts normalized device coordinates to pixel coordinates of a
// w by h surface (origin top left, y down).
func ToScreen(ndc math32.Vector3, w, h int) (x, y float64) {
	x = (float64(ndc.X) + 1) / 2 * float64(w)
	y = (1 - float64(ndc.Y)) / 2 * float64(h)
	return x, y
}
