package stage

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer draws a scene graph through a camera onto a surface it owns.
type Renderer interface {
	// SetSize resizes the drawing surface in pixels.
	SetSize(w, h int)
	// Size returns the current surface size.
	Size() (w, h int)
	// Render draws graph as seen by cam.
	Render(graph *Object, cam Camera)
}

// Surfacer is implemented by renderers whose output can be composited.
type Surfacer interface {
	Surface() *ebiten.Image
}

// RendererOptions configures the renderer of a registration.
type RendererOptions struct {
	// Canvas overrides the canvas passed to Manager.Init.
	Canvas *Box
	// ClearColor fills the surface before every render. The zero value clears
	// to transparent.
	ClearColor Color
}

// NewRendererFunc constructs the renderer of a registration.
type NewRendererFunc func(opts RendererOptions) Renderer

// RenderStats counts the work of the last Render call.
type RenderStats struct {
	Drawn  int
	Culled int
	Depth  int
}

// drawCommand is a single projected sprite emitted during traversal.
type drawCommand struct {
	img       *ebiten.Image
	x, y      float64
	px        float64 // on-screen width in pixels
	depth     float32
	color     Color
	treeOrder int
}

// EbitenRenderer projects sprites through the camera and draws them onto an
// offscreen *ebiten.Image.
type EbitenRenderer struct {
	opts     RendererOptions
	surface  *ebiten.Image
	w, h     int
	commands []drawCommand
	stats    RenderStats
}

// NewEbitenRenderer creates a renderer with no surface. SetSize allocates it.
func NewEbitenRenderer(opts RendererOptions) *EbitenRenderer {
	return &EbitenRenderer{opts: opts, commands: make([]drawCommand, 0, 64)}
}

// SetSize reallocates the surface when the size changes. A zero or negative
// dimension releases the surface.
func (r *EbitenRenderer) SetSize(w, h int) {
	if w == r.w && h == r.h && (r.surface != nil || w <= 0 || h <= 0) {
		return
	}
	if r.surface != nil {
		r.surface.Deallocate()
		r.surface = nil
	}
	r.w, r.h = w, h
	if w <= 0 || h <= 0 {
		return
	}
	r.surface = ebiten.NewImage(w, h)
}

// Size implements Renderer.
func (r *EbitenRenderer) Size() (w, h int) {
	return r.w, r.h
}

// Surface returns the offscreen image, or nil before the first non-zero SetSize.
func (r *EbitenRenderer) Surface() *ebiten.Image {
	return r.surface
}

// Stats returns counters of the last Render call.
func (r *EbitenRenderer) Stats() RenderStats {
	return r.stats
}

// Render clears the surface and draws every visible sprite of graph, far to
// near. It is a no-op without a surface or camera.
func (r *EbitenRenderer) Render(graph *Object, cam Camera) {
	r.stats = RenderStats{}
	if r.surface == nil || cam == nil || graph == nil {
		return
	}
	r.surface.Fill(r.opts.ClearColor.RGBA())

	r.commands = r.commands[:0]
	order := 0
	r.traverse(graph, cam, &order, 0)
	sortFarToNear(r.commands)

	var op ebiten.DrawImageOptions
	for i := range r.commands {
		cmd := &r.commands[i]
		iw, ih := cmd.img.Bounds().Dx(), cmd.img.Bounds().Dy()
		if iw == 0 || ih == 0 {
			continue
		}
		s := cmd.px / float64(iw)
		op.GeoM.Reset()
		op.GeoM.Translate(-float64(iw)/2, -float64(ih)/2)
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(cmd.x, cmd.y)
		op.ColorScale.Reset()
		a := float32(cmd.color.A)
		op.ColorScale.Scale(float32(cmd.color.R)*a, float32(cmd.color.G)*a, float32(cmd.color.B)*a, a)
		r.surface.DrawImage(cmd.img, &op)
		r.stats.Drawn++
	}
}

func (r *EbitenRenderer) traverse(o *Object, cam Camera, order *int, depth int) {
	if !o.Visible {
		return
	}
	if depth > r.stats.Depth {
		r.stats.Depth = depth
	}
	if o.Type == ObjectTypeSprite && o.Image != nil {
		if cmd, ok := r.project(o, cam); ok {
			*order++
			cmd.treeOrder = *order
			r.commands = append(r.commands, cmd)
		} else {
			r.stats.Culled++
		}
	}
	for _, child := range o.children {
		r.traverse(child, cam, order, depth+1)
	}
}

// project computes the screen placement of a sprite. Sprites behind the
// camera or outside the depth range are culled.
func (r *EbitenRenderer) project(o *Object, cam Camera) (drawCommand, bool) {
	center := o.WorldPosition()
	ndc, ok := Project(cam, center)
	if !ok || ndc.Z < -1 || ndc.Z > 1 {
		return drawCommand{}, false
	}
	scale := o.WorldScale()
	edge := center
	edge.X += o.Size * scale.X / 2
	edgeNDC, ok := Project(cam, edge)
	if !ok {
		return drawCommand{}, false
	}
	x, y := ToScreen(ndc, r.w, r.h)
	ex, ey := ToScreen(edgeNDC, r.w, r.h)
	px := 2 * math.Hypot(ex-x, ey-y)
	if px <= 0 || math.IsNaN(px) {
		return drawCommand{}, false
	}
	return drawCommand{
		img:   o.Image,
		x:     x,
		y:     y,
		px:    px,
		depth: ndc.Z,
		color: o.Color,
	}, true
}

// sortFarToNear orders commands by decreasing depth, keeping tree order for
// equal depths. Insertion sort: stable and cheap for nearly sorted frames.
func sortFarToNear(cmds []drawCommand) {
	for i := 1; i < len(cmds); i++ {
		key := cmds[i]
		j := i - 1
		for j >= 0 && farther(key, cmds[j]) {
			cmds[j+1] = cmds[j]
			j--
		}
		cmds[j+1] = key
	}
}

func farther(a, b drawCommand) bool {
	return a.depth > b.depth
}
