package stage

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultCameraKey is the camera a scene selects on awake unless
// Scene.DefaultCamera is changed first.
const DefaultCameraKey = "Main"

// SceneHooks are the scene-level extension points. Embed [NopSceneHooks] and
// override what is needed.
type SceneHooks interface {
	// ModifyScene runs once when the scene is constructed, before awake.
	ModifyScene(s *Scene)
	// OnSceneAwake runs after every entity has awoken.
	OnSceneAwake(s *Scene)
	// OnSceneStart runs after every entity has started.
	OnSceneStart(s *Scene)
	// OnBeforeFrameRender runs before the entity updates of a frame.
	OnBeforeFrameRender(s *Scene)
	// OnRender runs after the entity updates of a frame. Scenes registered
	// with custom rendering draw here.
	OnRender(s *Scene)
	// OnAfterRender runs after the late updates of a frame.
	OnAfterRender(s *Scene)
	// OnResize runs before the entities see a resize.
	OnResize(s *Scene, ev ResizeEvent)
}

// NopSceneHooks implements SceneHooks with no-op methods.
type NopSceneHooks struct{}

func (NopSceneHooks) ModifyScene(*Scene)           {}
func (NopSceneHooks) OnSceneAwake(*Scene)          {}
func (NopSceneHooks) OnSceneStart(*Scene)          {}
func (NopSceneHooks) OnBeforeFrameRender(*Scene)   {}
func (NopSceneHooks) OnRender(*Scene)              {}
func (NopSceneHooks) OnAfterRender(*Scene)         {}
func (NopSceneHooks) OnResize(*Scene, ResizeEvent) {}

var _ SceneHooks = NopSceneHooks{}

// SceneDefinition describes a scene: its entities in dispatch order, its
// cameras by key and its hooks.
type SceneDefinition interface {
	SceneHooks
	Entities() []EntityDef
	Cameras() map[string]Camera
}

// SceneClass produces a fresh definition for every registration that uses it.
type SceneClass func() SceneDefinition

// BasicScene is a SceneDefinition assembled from plain values.
type BasicScene struct {
	NopSceneHooks
	EntityDefs []EntityDef
	CameraSet  map[string]Camera
}

func (b *BasicScene) Entities() []EntityDef      { return b.EntityDefs }
func (b *BasicScene) Cameras() map[string]Camera { return b.CameraSet }

// SceneContext carries what a scene borrows from its registration and the
// manager.
type SceneContext struct {
	Canvas   *Box
	Document *Document
	Renderer Renderer
	Loading  *LoadingManager
	Pointer  *Pointer
	Timers   *Scheduler
	Logger   *zap.Logger
}

// Scene owns a scene graph, a set of cameras and the entities populating the
// graph.
type Scene struct {
	// DefaultCamera is selected by Awake.
	DefaultCamera string

	def       SceneDefinition
	ctx       SceneContext
	graph     *Object
	cameras   map[string]Camera
	current   Camera
	entities  []*Entity
	instances map[string]*Entity
	awoken    bool
	started   bool
}

// NewScene builds a scene for def and runs its ModifyScene hook.
func NewScene(def SceneDefinition, ctx SceneContext) *Scene {
	if ctx.Logger == nil {
		ctx.Logger = zap.NewNop()
	}
	s := &Scene{
		DefaultCamera: DefaultCameraKey,
		def:           def,
		ctx:           ctx,
		graph:         NewGroup("scene"),
		cameras:       make(map[string]Camera),
		instances:     make(map[string]*Entity),
	}
	for k, c := range def.Cameras() {
		s.cameras[k] = c
	}
	def.ModifyScene(s)
	return s
}

// Graph returns the root of the scene graph.
func (s *Scene) Graph() *Object { return s.graph }

// Canvas returns the canvas box the scene draws to.
func (s *Scene) Canvas() *Box { return s.ctx.Canvas }

// Document returns the page the canvas belongs to, or nil.
func (s *Scene) Document() *Document { return s.ctx.Document }

// Renderer returns the renderer of the owning registration.
func (s *Scene) Renderer() Renderer { return s.ctx.Renderer }

// Loading returns the shared loading manager.
func (s *Scene) Loading() *LoadingManager { return s.ctx.Loading }

// Pointer returns the shared pointer state.
func (s *Scene) Pointer() *Pointer { return s.ctx.Pointer }

// Timers returns the frame-driven scheduler.
func (s *Scene) Timers() *Scheduler { return s.ctx.Timers }

// Logger returns the scene logger. It is never nil.
func (s *Scene) Logger() *zap.Logger { return s.ctx.Logger }

// Definition returns the definition the scene was built from.
func (s *Scene) Definition() SceneDefinition { return s.def }

// Instance returns the entity created for key.
func (s *Scene) Instance(key string) (*Entity, bool) {
	e, ok := s.instances[key]
	return e, ok
}

// Entities returns the entities in dispatch order. The returned slice MUST
// NOT be mutated.
func (s *Scene) Entities() []*Entity {
	return s.entities
}

// Camera returns the camera registered under key.
func (s *Scene) Camera(key string) (Camera, bool) {
	c, ok := s.cameras[key]
	return c, ok
}

// AddCamera registers cam under key, replacing any earlier one.
func (s *Scene) AddCamera(key string, cam Camera) {
	s.cameras[key] = cam
}

// CurrentCamera returns the active camera, or nil.
func (s *Scene) CurrentCamera() Camera {
	return s.current
}

// SetCurrentCamera activates the camera registered under key. An unknown key
// leaves the scene without a current camera. Perspective cameras are adapted
// to the canvas parent's aspect.
func (s *Scene) SetCurrentCamera(key string) {
	s.current = s.cameras[key]
	if _, ok := s.current.(aspectCamera); ok {
		s.AdaptPerspectiveCamera()
	}
}

// aspectCamera is implemented by cameras whose projection follows the canvas
// aspect ratio.
type aspectCamera interface {
	Camera
	SetAspect(aspect float32)
	UpdateProjectionMatrix()
}

// AdaptPerspectiveCamera sets the current camera's aspect to the canvas
// parent's width over height and refreshes its projection. It does nothing
// without a current perspective camera, a canvas parent or a parent height.
func (s *Scene) AdaptPerspectiveCamera() {
	cam, ok := s.current.(aspectCamera)
	if !ok {
		return
	}
	if s.ctx.Canvas == nil || s.ctx.Canvas.Parent() == nil {
		return
	}
	w, h := s.ctx.Canvas.Parent().ClientSize()
	if h <= 0 {
		return
	}
	cam.SetAspect(float32(w / h))
	cam.UpdateProjectionMatrix()
}

// Awake selects the default camera, creates and awakes every entity in order
// and then runs OnSceneAwake. Only the first call has an effect.
func (s *Scene) Awake() error {
	if s.awoken {
		return nil
	}
	s.awoken = true
	s.SetCurrentCamera(s.DefaultCamera)
	for _, def := range s.def.Entities() {
		e := NewEntity(s, def)
		s.instances[def.Key] = e
		s.entities = append(s.entities, e)
		if err := e.Awake(); err != nil {
			return fmt.Errorf("stage: scene awake: %w", err)
		}
	}
	s.def.OnSceneAwake(s)
	return nil
}

// Start starts every entity in order, attaches each entity group to the
// graph and then runs OnSceneStart. Only the first call has an effect.
func (s *Scene) Start() error {
	if s.started {
		return nil
	}
	s.started = true
	for _, e := range s.entities {
		if err := e.Start(); err != nil {
			return fmt.Errorf("stage: scene start: %w", err)
		}
		s.graph.AddChild(e.Group())
	}
	s.def.OnSceneStart(s)
	return nil
}

// Update runs OnBeforeFrameRender, every entity update and OnRender.
func (s *Scene) Update(t float64) {
	s.def.OnBeforeFrameRender(s)
	for _, e := range s.entities {
		e.Update(t)
	}
	s.def.OnRender(s)
}

// LateUpdate runs every entity late update.
func (s *Scene) LateUpdate(t float64) {
	for _, e := range s.entities {
		e.LateUpdate(t)
	}
}

// AfterRender runs the OnAfterRender hook.
func (s *Scene) AfterRender() {
	s.def.OnAfterRender(s)
}

// Resize runs OnResize and then every entity resize.
func (s *Scene) Resize(ev ResizeEvent) {
	s.def.OnResize(s, ev)
	for _, e := range s.entities {
		e.Resize(ev)
	}
}

// ViewEnter forwards to every entity.
func (s *Scene) ViewEnter() {
	for _, e := range s.entities {
		e.ViewEnter()
	}
}

// ViewLeave forwards to every entity.
func (s *Scene) ViewLeave() {
	for _, e := range s.entities {
		e.ViewLeave()
	}
}

var _ Behaviour = (*Scene)(nil)
