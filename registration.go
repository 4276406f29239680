package stage

import (
	"go.uber.org/zap"
)

// DataNameAttr is the attribute tying an observed element to its render.
const DataNameAttr = "data-name"

// Options configure one render registration. The zero value is not the
// default; start from DefaultOptions.
type Options struct {
	// DisableWhenNotVisible pauses the render while its observer element is
	// outside the viewport.
	DisableWhenNotVisible bool
	// UseDefaultRendering draws the scene graph through the current camera
	// each frame. Disable it to draw from the OnRender hook instead.
	UseDefaultRendering bool
	// Responsive follows window resizes.
	Responsive bool
	// UseClock passes elapsed clock seconds to the scene instead of the frame
	// timestamp.
	UseClock bool
	// ObserverElement is watched for visibility. Nil means the canvas.
	ObserverElement *Box
	// Renderer configures the renderer.
	Renderer RendererOptions
}

// DefaultOptions returns the options every registration starts from.
func DefaultOptions() Options {
	return Options{
		DisableWhenNotVisible: true,
		UseDefaultRendering:   true,
		Responsive:            true,
	}
}

// Option modifies Options.
type Option func(*Options)

// WithoutVisibilityGate keeps the render running while it is off screen.
func WithoutVisibilityGate() Option {
	return func(o *Options) { o.DisableWhenNotVisible = false }
}

// WithCustomRendering skips the default draw call; the scene draws itself.
func WithCustomRendering() Option {
	return func(o *Options) { o.UseDefaultRendering = false }
}

// NonResponsive ignores window resizes.
func NonResponsive() Option {
	return func(o *Options) { o.Responsive = false }
}

// WithClock hands the scene elapsed clock seconds instead of frame time.
func WithClock() Option {
	return func(o *Options) { o.UseClock = true }
}

// WithObserverElement watches el instead of the canvas.
func WithObserverElement(el *Box) Option {
	return func(o *Options) { o.ObserverElement = el }
}

// WithRendererOptions sets the renderer configuration.
func WithRendererOptions(ro RendererOptions) Option {
	return func(o *Options) { o.Renderer = ro }
}

// WithOptions replaces every option at once.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

// Registration binds one canvas to one renderer and one scene and decides
// each frame whether the scene runs.
type Registration struct {
	name     string
	canvas   *Box
	renderer Renderer
	scene    *Scene
	opts     Options
	running  bool
	logger   *zap.Logger
}

// Name returns the registration name.
func (r *Registration) Name() string { return r.name }

// Canvas returns the canvas box.
func (r *Registration) Canvas() *Box { return r.canvas }

// Renderer returns the owned renderer.
func (r *Registration) Renderer() Renderer { return r.renderer }

// Scene returns the owned scene.
func (r *Registration) Scene() *Scene { return r.scene }

// Options returns the resolved options.
func (r *Registration) Options() Options { return r.opts }

// ObserverElement returns the element watched for visibility, or nil when
// the visibility gate is disabled.
func (r *Registration) ObserverElement() *Box {
	if !r.opts.DisableWhenNotVisible {
		return nil
	}
	if r.opts.ObserverElement != nil {
		return r.opts.ObserverElement
	}
	return r.canvas
}

// Running reports whether Render will run the scene. It is always true when
// the visibility gate is disabled; otherwise it is the last visibility state,
// false until the first report.
func (r *Registration) Running() bool {
	if !r.opts.DisableWhenNotVisible {
		return true
	}
	return r.running
}

// Render runs one frame of the scene: update, the draw call when default
// rendering is on, late update and the after-render hook. It does nothing
// without a current camera or while gated off, and reports whether it ran.
func (r *Registration) Render(t float64) bool {
	if r.scene == nil {
		return false
	}
	cam := r.scene.CurrentCamera()
	if cam == nil {
		return false
	}
	if !r.running && r.opts.DisableWhenNotVisible {
		return false
	}
	r.scene.Update(t)
	if r.opts.UseDefaultRendering {
		r.renderer.Render(r.scene.Graph(), cam)
	}
	r.scene.LateUpdate(t)
	r.scene.AfterRender()
	return true
}

// Resize forwards a window resize to the scene, refits the current
// perspective camera to the canvas parent and resizes the renderer to the
// parent box. Non-responsive registrations and registrations without a
// camera or canvas ignore it. It reports whether it handled the event.
func (r *Registration) Resize(ev ResizeEvent) bool {
	if !r.opts.Responsive {
		return false
	}
	cam := r.scene.CurrentCamera()
	if cam == nil || r.canvas == nil {
		return false
	}
	r.scene.Resize(ev)
	w, h := parentSize(r.canvas)
	if pc, ok := cam.(aspectCamera); ok && h > 0 {
		pc.SetAspect(float32(w) / float32(h))
		pc.UpdateProjectionMatrix()
	}
	r.renderer.SetSize(w, h)
	return true
}

// ViewEnter marks the registration visible and forwards to the scene.
func (r *Registration) ViewEnter() {
	r.running = true
	r.logger.Debug("view enter")
	r.scene.ViewEnter()
}

// ViewLeave marks the registration hidden and forwards to the scene.
func (r *Registration) ViewLeave() {
	r.running = false
	r.logger.Debug("view leave")
	r.scene.ViewLeave()
}

// parentSize returns the canvas parent's size in whole pixels, or zeros
// without a parent.
func parentSize(canvas *Box) (w, h int) {
	if canvas == nil || canvas.Parent() == nil {
		return 0, 0
	}
	pw, ph := canvas.Parent().ClientSize()
	return int(pw), int(ph)
}
