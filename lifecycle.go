package stage

// Behaviour is the lifecycle shared by components, entities and scenes.
// Every method is always present; embed [NopBehaviour] to inherit no-op
// defaults and override only what is needed.
type Behaviour interface {
	// Awake runs once when the behaviour is created, before any Start.
	Awake() error
	// Start runs once after every sibling has awoken.
	Start() error
	// Update runs before the frame is drawn. t is the frame time.
	Update(t float64)
	// LateUpdate runs after the frame is drawn.
	LateUpdate(t float64)
	// Resize runs when the window size changes.
	Resize(ev ResizeEvent)
	// ViewEnter runs when the owning canvas scrolls into view.
	ViewEnter()
	// ViewLeave runs when the owning canvas scrolls out of view.
	ViewLeave()
}

// Exporter is implemented by behaviours that contribute an object to the
// scene graph. Whatever Export returns is added to the entity group at start.
type Exporter interface {
	Export() *Object
}

// NopBehaviour implements Behaviour with no-op methods.
type NopBehaviour struct{}

func (NopBehaviour) Awake() error       { return nil }
func (NopBehaviour) Start() error       { return nil }
func (NopBehaviour) Update(float64)     {}
func (NopBehaviour) LateUpdate(float64) {}
func (NopBehaviour) Resize(ResizeEvent) {}
func (NopBehaviour) ViewEnter()         {}
func (NopBehaviour) ViewLeave()         {}

var _ Behaviour = NopBehaviour{}
