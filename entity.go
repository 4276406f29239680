package stage

import "fmt"

// EntityDef declares an entity of a scene: a key and its components in
// dispatch order.
type EntityDef struct {
	Key        string
	Components []ComponentDef
}

// Entity is a named bundle of components with one combined lifecycle and one
// renderable group.
type Entity struct {
	key   string
	scene *Scene
	defs  []ComponentDef

	components []Component
	keyed      map[string]Component
	group      *Object
	awoken     bool
}

// NewEntity creates an unborn entity for scene. Components are instantiated
// by Awake.
func NewEntity(scene *Scene, def EntityDef) *Entity {
	return &Entity{
		key:   def.Key,
		scene: scene,
		defs:  def.Components,
		keyed: make(map[string]Component, len(def.Components)),
		group: NewGroup(def.Key),
	}
}

// Key returns the entity key within its scene.
func (e *Entity) Key() string {
	return e.key
}

// Scene returns the owning scene.
func (e *Entity) Scene() *Scene {
	return e.scene
}

// Group returns the object collecting everything the components export.
func (e *Entity) Group() *Object {
	return e.group
}

// Components returns the components in dispatch order. The returned slice
// MUST NOT be mutated.
func (e *Entity) Components() []Component {
	return e.components
}

// Component returns the component registered under key.
func (e *Entity) Component(key string) (Component, bool) {
	c, ok := e.keyed[key]
	return c, ok
}

// AddComponent constructs a component and appends it to the dispatch list.
// A key that is already taken is rebound to the new component in lookups;
// the earlier component stays in the dispatch list.
func (e *Entity) AddComponent(key string, ctor NewComponentFunc) (Component, error) {
	if ctor == nil {
		return nil, fmt.Errorf("stage: entity %q: component %q has no constructor", e.key, key)
	}
	c, err := ctor(MonoBehaviour{entity: e, scene: e.scene})
	if err != nil {
		return nil, fmt.Errorf("stage: entity %q: component %q: %w", e.key, key, err)
	}
	if c == nil {
		return nil, fmt.Errorf("stage: entity %q: component %q constructor returned nil", e.key, key)
	}
	e.keyed[key] = c
	e.components = append(e.components, c)
	return c, nil
}

// Awake instantiates every declared component, then awakes them in
// declaration order. Only the first call has an effect.
func (e *Entity) Awake() error {
	if e.awoken {
		return nil
	}
	e.awoken = true
	for _, def := range e.defs {
		if _, err := e.AddComponent(def.Key, def.New); err != nil {
			return err
		}
	}
	for i, c := range e.components {
		if err := c.Awake(); err != nil {
			return fmt.Errorf("stage: entity %q: awake component %d: %w", e.key, i, err)
		}
	}
	return nil
}

// Start starts components in declaration order and collects their exported
// objects into the group. Dispatch ends after the first component that does
// not implement Exporter: it is started, but nothing after it is.
func (e *Entity) Start() error {
	for i, c := range e.components {
		if err := c.Start(); err != nil {
			return fmt.Errorf("stage: entity %q: start component %d: %w", e.key, i, err)
		}
		exp, ok := c.(Exporter)
		if !ok {
			return nil
		}
		if obj := exp.Export(); obj != nil {
			e.group.AddChild(obj)
		}
	}
	return nil
}

// Update calls Update on every component.
func (e *Entity) Update(t float64) {
	for _, c := range e.components {
		c.Update(t)
	}
}

// LateUpdate calls LateUpdate on every component.
func (e *Entity) LateUpdate(t float64) {
	for _, c := range e.components {
		c.LateUpdate(t)
	}
}

// Resize calls Resize on every component.
func (e *Entity) Resize(ev ResizeEvent) {
	for _, c := range e.components {
		c.Resize(ev)
	}
}

// ViewEnter calls ViewEnter on every component.
func (e *Entity) ViewEnter() {
	for _, c := range e.components {
		c.ViewEnter()
	}
}

// ViewLeave calls ViewLeave on every component.
func (e *Entity) ViewLeave() {
	for _, c := range e.components {
		c.ViewLeave()
	}
}

var _ Behaviour = (*Entity)(nil)
