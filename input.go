package stage

import "github.com/hajimehoshi/ebiten/v2"

// Pointer holds the last known cursor position in window pixels. Poll reads
// it from ebiten; Move injects it for tests and scripts.
type Pointer struct {
	x, y  float64
	moved bool
	seen  bool

	injectQueue []pointerSample
}

// pointerSample is a single injected cursor position.
type pointerSample struct {
	x, y float64
}

// NewPointer creates a pointer at the window origin that has not moved.
func NewPointer() *Pointer {
	return &Pointer{}
}

// Poll consumes one injected sample if any is queued, otherwise it samples
// the cursor from ebiten. Must be called from the game loop.
func (p *Pointer) Poll() {
	if p.popInjected() {
		return
	}
	cx, cy := ebiten.CursorPosition()
	p.Move(float64(cx), float64(cy))
}

// InjectMove queues a cursor position consumed by the next Poll.
func (p *Pointer) InjectMove(x, y float64) {
	p.injectQueue = append(p.injectQueue, pointerSample{x: x, y: y})
}

// InjectSweep queues a linear cursor sweep from (fromX, fromY) to (toX, toY)
// consuming frames polls. Minimum frames is 2 (both end points).
func (p *Pointer) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		p.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// Injected returns the number of queued samples.
func (p *Pointer) Injected() int {
	return len(p.injectQueue)
}

// popInjected applies the oldest queued sample. It reports false when the
// queue is empty.
func (p *Pointer) popInjected() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	s := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]
	p.Move(s.x, s.y)
	return true
}

// Move sets the cursor position. Moved reports true until the next Move with
// an unchanged position.
func (p *Pointer) Move(x, y float64) {
	p.moved = !p.seen || x != p.x || y != p.y
	p.seen = true
	p.x, p.y = x, y
}

// Position returns the cursor position in window pixels.
func (p *Pointer) Position() (x, y float64) {
	return p.x, p.y
}

// Active reports whether the pointer has received any sample.
func (p *Pointer) Active() bool {
	return p.seen
}

// Moved reports whether the last Move or Poll changed the position.
func (p *Pointer) Moved() bool {
	return p.moved
}

// NDC maps the cursor into normalized device coordinates of a w by h area:
// x and y in [-1, 1] with y pointing up. A zero-sized area yields the origin.
func (p *Pointer) NDC(w, h float64) (x, y float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	x = (p.x/w)*2 - 1
	y = -(p.y/h)*2 + 1
	return x, y
}
