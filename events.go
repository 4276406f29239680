package stage

// EventStore is the interface for optional ECS integration.
// When set on a Manager, render lifecycle events are forwarded to it.
type EventStore interface {
	EmitEvent(event RenderEvent)
}

// RenderEventType identifies a render lifecycle event.
type RenderEventType uint8

const (
	// EventInit fires after a registration has been set up.
	EventInit RenderEventType = iota
	// EventViewEnter fires when a registration becomes visible.
	EventViewEnter
	// EventViewLeave fires when a registration stops being visible.
	EventViewLeave
	// EventResize fires when a registration handles a resize.
	EventResize
)

// String returns the event name.
func (t RenderEventType) String() string {
	switch t {
	case EventInit:
		return "init"
	case EventViewEnter:
		return "view-enter"
	case EventViewLeave:
		return "view-leave"
	case EventResize:
		return "resize"
	}
	return "unknown"
}

// RenderEvent carries render lifecycle data for the ECS bridge.
type RenderEvent struct {
	Type RenderEventType
	Name string
	// Ratio is the visible fraction (view events).
	Ratio float64
	// Width and Height are the new renderer size (resize events).
	Width  int
	Height int
}
