package ecs

import (
	"sort"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/rayportfolio/stage"
)

// RenderEventType is the Donburi event type for stage render events.
// Subscribe to it in ECS systems to hear about inits, resizes and visibility
// changes.
var RenderEventType = events.NewEventType[stage.RenderEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Events
// are queued under RenderEventType until ProcessEvents runs.
func NewDonburiStore(world donburi.World) stage.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event stage.RenderEvent) {
	RenderEventType.Publish(s.world, event)
}

// RenderState mirrors one render registration.
type RenderState struct {
	Name    string
	Visible bool
	Ratio   float64
	Width   int
	Height  int
}

// RenderStateComponent holds the RenderState of a render entity.
var RenderStateComponent = donburi.NewComponentType[RenderState]()

// Tracker keeps one entity per render name up to date from processed
// render events.
type Tracker struct {
	world    donburi.World
	entities map[string]donburi.Entity
}

// NewTracker subscribes a tracker to RenderEventType in world.
func NewTracker(world donburi.World) *Tracker {
	t := &Tracker{world: world, entities: make(map[string]donburi.Entity)}
	RenderEventType.Subscribe(world, t.handle)
	return t
}

func (t *Tracker) handle(w donburi.World, ev stage.RenderEvent) {
	entry := t.entry(ev.Name)
	st := RenderStateComponent.Get(entry)
	switch ev.Type {
	case stage.EventInit, stage.EventResize:
		st.Width, st.Height = ev.Width, ev.Height
	case stage.EventViewEnter:
		st.Visible, st.Ratio = true, ev.Ratio
	case stage.EventViewLeave:
		st.Visible, st.Ratio = false, ev.Ratio
	}
}

func (t *Tracker) entry(name string) *donburi.Entry {
	if e, ok := t.entities[name]; ok && t.world.Valid(e) {
		return t.world.Entry(e)
	}
	e := t.world.Create(RenderStateComponent)
	entry := t.world.Entry(e)
	RenderStateComponent.SetValue(entry, RenderState{Name: name})
	t.entities[name] = e
	return entry
}

// State returns the tracked state of the named render.
func (t *Tracker) State(name string) (RenderState, bool) {
	e, ok := t.entities[name]
	if !ok || !t.world.Valid(e) {
		return RenderState{}, false
	}
	return *RenderStateComponent.Get(t.world.Entry(e)), true
}

var renderQuery = donburi.NewQuery(filter.Contains(RenderStateComponent))

// Visible returns the names of every visible render in world, sorted.
func Visible(world donburi.World) []string {
	var names []string
	renderQuery.Each(world, func(entry *donburi.Entry) {
		if st := RenderStateComponent.Get(entry); st.Visible {
			names = append(names, st.Name)
		}
	})
	sort.Strings(names)
	return names
}
