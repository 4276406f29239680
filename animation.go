package stage

import (
	"cogentcore.org/core/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float32 fields of an Object simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenSize) and call Update(dt) each frame. The group writes values
// straight into the object.
//
// There is no global animation manager, components call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float32
	target *Object
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Target returns the animated object.
func (g *TweenGroup) Target() *Object {
	return g.target
}

// TweenPosition creates a TweenGroup that animates obj.Position to the given
// point over duration seconds using the easing function.
func TweenPosition(obj *Object, to math32.Vector3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: obj}
	g.tweens[0] = gween.New(obj.Position.X, to.X, duration, fn)
	g.tweens[1] = gween.New(obj.Position.Y, to.Y, duration, fn)
	g.tweens[2] = gween.New(obj.Position.Z, to.Z, duration, fn)
	g.fields[0] = &obj.Position.X
	g.fields[1] = &obj.Position.Y
	g.fields[2] = &obj.Position.Z
	return g
}

// TweenScale creates a TweenGroup that animates obj.Scale to the given
// factors over duration seconds using the easing function.
func TweenScale(obj *Object, to math32.Vector3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: obj}
	g.tweens[0] = gween.New(obj.Scale.X, to.X, duration, fn)
	g.tweens[1] = gween.New(obj.Scale.Y, to.Y, duration, fn)
	g.tweens[2] = gween.New(obj.Scale.Z, to.Z, duration, fn)
	g.fields[0] = &obj.Scale.X
	g.fields[1] = &obj.Scale.Y
	g.fields[2] = &obj.Scale.Z
	return g
}

// TweenSize creates a TweenGroup that animates obj.Size to the target value.
func TweenSize(obj *Object, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: obj}
	g.tweens[0] = gween.New(obj.Size, to, duration, fn)
	g.fields[0] = &obj.Size
	return g
}
