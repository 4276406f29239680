package stage

// Component is one unit of behaviour attached to an Entity.
type Component interface {
	Behaviour
}

// NewComponentFunc constructs a component. The MonoBehaviour argument is meant
// to be embedded in the returned value. Returning an error aborts the setup of
// the owning scene.
type NewComponentFunc func(base MonoBehaviour) (Component, error)

// ComponentDef declares a component of an entity under a lookup key.
type ComponentDef struct {
	Key string
	New NewComponentFunc
}

// MonoBehaviour is the base every component embeds. It provides no-op
// lifecycle methods and access to the owning entity and scene.
type MonoBehaviour struct {
	NopBehaviour

	entity *Entity
	scene  *Scene
}

// Entity returns the entity that owns the component.
func (m MonoBehaviour) Entity() *Entity {
	return m.entity
}

// Scene returns the scene the owning entity belongs to.
func (m MonoBehaviour) Scene() *Scene {
	return m.scene
}

// GetComponent returns the sibling component registered under key.
func (m MonoBehaviour) GetComponent(key string) (Component, bool) {
	if m.entity == nil {
		return nil, false
	}
	return m.entity.Component(key)
}

// ComponentOf returns the sibling registered under key as a T. It reports
// false when the key is absent or holds a different type.
func ComponentOf[T any](m MonoBehaviour, key string) (T, bool) {
	var zero T
	c, ok := m.GetComponent(key)
	if !ok {
		return zero, false
	}
	typed, ok := c.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
