package stage

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Manager multiplexes every render registration through one frame loop and
// one visibility gate. It is not safe for concurrent use; drive it from the
// game loop goroutine.
type Manager struct {
	doc     *Document
	gate    *Gate
	handle  Handle
	clock   *Clock
	loading *LoadingManager
	input   *Pointer
	timers  *Scheduler
	logger  *zap.Logger
	store   EventStore

	renders []*Registration
	keyed   map[string]*Registration

	newRenderer NewRendererFunc
	debug       bool
	lastFrame   frameStats

	screenshotDir   string
	screenshotQueue []string
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger handed to every scene.
func WithLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithDocument uses doc instead of a fresh empty document.
func WithDocument(doc *Document) ManagerOption {
	return func(m *Manager) {
		if doc != nil {
			m.doc = doc
		}
	}
}

// WithTimeSource sets the time source of the shared clock.
func WithTimeSource(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.clock = NewClock(now) }
}

// WithRendererFactory replaces the ebiten renderer, mainly for tests.
func WithRendererFactory(fn NewRendererFunc) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.newRenderer = fn
		}
	}
}

// WithDebug enables per-frame timing logs and the FPS panel.
func WithDebug(debug bool) ManagerOption {
	return func(m *Manager) { m.debug = debug }
}

// NewManager creates a manager with an empty document and no registrations.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		doc:    NewDocument(),
		gate:   NewGate(),
		clock:  NewClock(nil),
		input:  NewPointer(),
		timers: NewScheduler(),
		logger: zap.NewNop(),
		keyed:  make(map[string]*Registration),

		screenshotDir: DefaultScreenshotDir,

		newRenderer: func(opts RendererOptions) Renderer {
			return NewEbitenRenderer(opts)
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.loading = NewLoadingManager(m.logger)
	m.handle = m.gate.Subscribe(m.onVisibility)
	return m
}

// InitArgs names a render, its canvas and the scene class to instantiate.
type InitArgs struct {
	Name       string
	Canvas     *Box
	SceneClass SceneClass
}

// Init sets up one render: it builds the renderer and scene, awakes and
// starts the scene and, unless the visibility gate is disabled, starts
// observing the observer element. Without a canvas in args or in the
// renderer options Init does nothing and returns nil. A failing scene setup
// aborts only this registration.
//
// Reusing a name replaces the keyed lookup; the earlier registration keeps
// rendering.
func (m *Manager) Init(args InitArgs, opts ...Option) error {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	canvas := args.Canvas
	if o.Renderer.Canvas != nil {
		canvas = o.Renderer.Canvas
	}
	if canvas == nil {
		return nil
	}
	if args.SceneClass == nil {
		return fmt.Errorf("stage: init %q: no scene class: %w", args.Name, ErrUnknownScene)
	}
	logger := m.logger.With(zap.String("render", args.Name))

	renderer := m.newRenderer(o.Renderer)
	renderer.SetSize(parentSize(canvas))

	scene := NewScene(args.SceneClass(), SceneContext{
		Canvas:   canvas,
		Document: m.doc,
		Renderer: renderer,
		Loading:  m.loading,
		Pointer:  m.input,
		Timers:   m.timers,
		Logger:   logger,
	})
	if err := scene.Awake(); err != nil {
		logger.Error("scene setup failed", zap.Error(err))
		return fmt.Errorf("stage: init %q: %w", args.Name, err)
	}
	if err := scene.Start(); err != nil {
		logger.Error("scene setup failed", zap.Error(err))
		return fmt.Errorf("stage: init %q: %w", args.Name, err)
	}

	reg := &Registration{
		name:     args.Name,
		canvas:   canvas,
		renderer: renderer,
		scene:    scene,
		opts:     o,
		logger:   logger,
	}
	if el := reg.ObserverElement(); el != nil {
		el.SetAttr(DataNameAttr, args.Name)
		m.gate.Observe(el)
	}
	if _, ok := m.keyed[args.Name]; ok {
		logger.Warn("render name reused, lookup now points at the new registration")
	}
	m.renders = append(m.renders, reg)
	m.keyed[args.Name] = reg

	if m.debug {
		debugCheckGraphDepth(logger, scene.Graph())
	}
	w, h := renderer.Size()
	logger.Info("render registered",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Bool("gated", o.DisableWhenNotVisible),
	)
	m.emit(RenderEvent{Type: EventInit, Name: args.Name, Width: w, Height: h})
	return nil
}

// Frame is one tick of the shared loop. t is the frame timestamp in
// milliseconds. Timers advance first, then every registration renders in
// insertion order, receiving t or, with UseClock, the elapsed clock seconds.
func (m *Manager) Frame(t float64) {
	var began time.Time
	if m.debug {
		began = time.Now()
	}
	m.timers.Advance(time.Duration(t * float64(time.Millisecond)))

	stats := frameStats{renders: len(m.renders)}
	for _, r := range m.renders {
		v := t
		if r.opts.UseClock {
			v = m.clock.Elapsed()
		}
		if r.Render(v) {
			stats.rendered++
		}
	}
	if m.debug {
		stats.elapsed = time.Since(began)
		m.debugLog(stats)
	}
	m.lastFrame = stats
}

// Resize hands ev to every registration once.
func (m *Manager) Resize(ev ResizeEvent) {
	for _, r := range m.renders {
		if r.Resize(ev) {
			w, h := r.renderer.Size()
			m.emit(RenderEvent{Type: EventResize, Name: r.name, Width: w, Height: h})
		}
	}
}

// ResizeWindow resizes the viewport, resizes every registration and
// rechecks visibility.
func (m *Manager) ResizeWindow(w, h int) {
	m.doc.SetViewportSize(float64(w), float64(h))
	m.Resize(ResizeEvent{Width: w, Height: h})
	m.CheckVisibility()
}

// Scroll moves the viewport to page offset y and rechecks visibility.
func (m *Manager) Scroll(y float64) {
	m.doc.ScrollTo(y)
	m.CheckVisibility()
}

// CheckVisibility runs the visibility gate against the current viewport.
func (m *Manager) CheckVisibility() {
	m.gate.Check(m.doc.Viewport())
}

// OnLoad sets the callback run once every pending asset has loaded.
func (m *Manager) OnLoad(fn func()) {
	m.loading.OnLoad(fn)
}

// SetEventStore sets the sink for render lifecycle events. nil disables it.
func (m *Manager) SetEventStore(store EventStore) {
	m.store = store
}

// Render returns the registration last initialized under name.
func (m *Manager) Render(name string) (*Registration, bool) {
	r, ok := m.keyed[name]
	return r, ok
}

// Registrations returns every registration in insertion order. The returned
// slice MUST NOT be mutated.
func (m *Manager) Registrations() []*Registration {
	return m.renders
}

// Close stops observing every element and detaches from the gate.
func (m *Manager) Close() {
	for _, r := range m.renders {
		if el := r.ObserverElement(); el != nil {
			m.gate.Unobserve(el)
		}
	}
	m.gate.Unsubscribe(m.handle)
}

// Document returns the page laid out by Mount or WithDocument.
func (m *Manager) Document() *Document { return m.doc }

// Gate returns the visibility gate shared by every registration.
func (m *Manager) Gate() *Gate { return m.gate }

// Input returns the pointer handed to every scene.
func (m *Manager) Input() *Pointer { return m.input }

// Clock returns the clock read by registrations with UseClock.
func (m *Manager) Clock() *Clock { return m.clock }

// Timers returns the frame-time scheduler advanced by Frame.
func (m *Manager) Timers() *Scheduler { return m.timers }

// Loading returns the loading manager shared by every scene.
func (m *Manager) Loading() *LoadingManager { return m.loading }

// Logger returns the manager logger, a no-op logger by default.
func (m *Manager) Logger() *zap.Logger { return m.logger }

// Debug reports whether debug mode is on.
func (m *Manager) Debug() bool { return m.debug }

// onVisibility routes a gate change to the registration named by the
// element's data-name attribute.
func (m *Manager) onVisibility(el Element, ratio float64) {
	box, ok := el.(*Box)
	if !ok {
		return
	}
	name := box.Attr(DataNameAttr)
	if name == "" {
		return
	}
	r, ok := m.keyed[name]
	if !ok {
		return
	}
	if ratio > 0 {
		r.ViewEnter()
		m.emit(RenderEvent{Type: EventViewEnter, Name: name, Ratio: ratio})
		return
	}
	r.ViewLeave()
	m.emit(RenderEvent{Type: EventViewLeave, Name: name, Ratio: ratio})
}

func (m *Manager) emit(ev RenderEvent) {
	if m.store != nil {
		m.store.EmitEvent(ev)
	}
}
