package stage

import (
	"github.com/google/uuid"

	"github.com/rayportfolio/stage/signal"
)

// Intersection is one visibility change of an observed element.
type Intersection struct {
	Element Element
	// Ratio is the visible fraction of the element, in [0, 1].
	Ratio float64
}

// Handle identifies a gate subscription.
type Handle uuid.UUID

// Gate is a single viewport-intersection watcher shared by every observed
// element. Callbacks subscribed to the gate hear about every element.
type Gate struct {
	observed   []*observation
	changes    *signal.Subject[Intersection]
	thresholds []float64
}

// DefaultThresholds report when an element starts or stops touching the
// viewport and when it becomes or stops being fully visible.
var DefaultThresholds = []float64{0, 1}

type observation struct {
	element  Element
	ratio    float64
	reported bool
}

// NewGate creates a gate with no observed elements and no subscribers.
// Check reports an element when its ratio crosses one of thresholds;
// without thresholds DefaultThresholds apply.
func NewGate(thresholds ...float64) *Gate {
	if len(thresholds) == 0 {
		thresholds = DefaultThresholds
	}
	return &Gate{
		changes:    signal.New[Intersection](),
		thresholds: append([]float64(nil), thresholds...),
	}
}

// Observe starts tracking el. Observing an element twice is a no-op.
// The first ratio is reported by the next Check.
func (g *Gate) Observe(el Element) {
	if g.find(el) >= 0 {
		return
	}
	g.observed = append(g.observed, &observation{element: el})
}

// Unobserve stops tracking el. Untracked elements are ignored.
func (g *Gate) Unobserve(el Element) {
	i := g.find(el)
	if i < 0 {
		return
	}
	copy(g.observed[i:], g.observed[i+1:])
	g.observed[len(g.observed)-1] = nil
	g.observed = g.observed[:len(g.observed)-1]
}

// Observing reports whether el is tracked.
func (g *Gate) Observing(el Element) bool {
	return g.find(el) >= 0
}

// Subscribe registers fn for every visibility change of any tracked element.
func (g *Gate) Subscribe(fn func(el Element, ratio float64)) Handle {
	sub := g.changes.Subscribe(func(in Intersection) { fn(in.Element, in.Ratio) })
	return Handle(sub.ID())
}

// Unsubscribe removes the callback registered under h. It reports false for
// handles that are unknown or already removed; other subscriptions are not
// affected either way.
func (g *Gate) Unsubscribe(h Handle) bool {
	return g.changes.Remove(uuid.UUID(h))
}

// Check recomputes every tracked element's visible fraction against the
// viewport. Elements never reported before, and elements whose ratio crossed
// a threshold since their last report, are reported.
func (g *Gate) Check(viewport Rect) {
	// Callbacks may observe or unobserve while we dispatch.
	snapshot := append([]*observation(nil), g.observed...)
	for _, ob := range snapshot {
		ratio := intersectionRatio(ob.element.Bounds(), viewport)
		if ob.reported && g.band(ratio) == g.band(ob.ratio) {
			continue
		}
		g.update(ob, ratio)
	}
}

// band counts the thresholds ratio has reached. A zero threshold is reached
// by any visible part.
func (g *Gate) band(ratio float64) int {
	n := 0
	for _, t := range g.thresholds {
		if (t == 0 && ratio > 0) || (t > 0 && ratio >= t) {
			n++
		}
	}
	return n
}

// Report records an externally computed ratio for a tracked element and
// dispatches it when it differs from the last report. Untracked elements are
// ignored.
func (g *Gate) Report(el Element, ratio float64) {
	i := g.find(el)
	if i < 0 {
		return
	}
	g.update(g.observed[i], clamp01(ratio))
}

// Ratio returns the last reported ratio for el and whether one exists.
func (g *Gate) Ratio(el Element) (float64, bool) {
	i := g.find(el)
	if i < 0 || !g.observed[i].reported {
		return 0, false
	}
	return g.observed[i].ratio, true
}

func (g *Gate) update(ob *observation, ratio float64) {
	if ob.reported && ob.ratio == ratio {
		return
	}
	ob.ratio = ratio
	ob.reported = true
	g.changes.Next(Intersection{Element: ob.element, Ratio: ratio})
}

func (g *Gate) find(el Element) int {
	for i, ob := range g.observed {
		if ob.element == el {
			return i
		}
	}
	return -1
}

// intersectionRatio returns the fraction of target inside viewport. A target
// with no area counts as fully visible when it touches the viewport.
func intersectionRatio(target, viewport Rect) float64 {
	area := target.Area()
	if area <= 0 {
		if target.Intersects(viewport) {
			return 1
		}
		return 0
	}
	return clamp01(target.Intersection(viewport).Area() / area)
}
