package stage

import (
	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

// objectIDCounter is a plain counter (no atomic, stage is single-threaded).
var objectIDCounter uint32

func nextObjectID() uint32 {
	objectIDCounter++
	return objectIDCounter
}

// ObjectType distinguishes groups from drawable sprites.
type ObjectType uint8

const (
	// ObjectTypeGroup has no visual representation of its own.
	ObjectTypeGroup ObjectType = iota
	// ObjectTypeSprite draws its Image as a camera-facing billboard.
	ObjectTypeSprite
)

// Object is a node of the 3D scene graph. One flat struct serves groups and
// sprites alike.
type Object struct {
	ID   uint32
	Name string
	Type ObjectType

	parent   *Object
	children []*Object

	// Position is relative to the parent.
	Position math32.Vector3
	// Scale multiplies this object and its descendants.
	Scale math32.Vector3

	Visible bool

	// Sprite fields (ObjectTypeSprite)
	Image *ebiten.Image
	Color Color
	// Size is the sprite extent in world units at scale 1.
	Size float32

	UserData any
}

func objectDefaults(o *Object) {
	o.ID = nextObjectID()
	o.Scale = math32.Vec3(1, 1, 1)
	o.Visible = true
	o.Color = ColorWhite
	o.Size = 1
}

// NewGroup creates an object that only collects children.
func NewGroup(name string) *Object {
	o := &Object{Name: name, Type: ObjectTypeGroup}
	objectDefaults(o)
	return o
}

// NewSprite creates a billboard object drawing img. img may be nil and set later.
func NewSprite(name string, img *ebiten.Image) *Object {
	o := &Object{Name: name, Type: ObjectTypeSprite, Image: img}
	objectDefaults(o)
	return o
}

// --- Tree manipulation ---

// AddChild appends child to this object's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this object (cycle).
func (o *Object) AddChild(child *Object) {
	if child == nil {
		panic("stage: cannot add nil child")
	}
	if isAncestor(child, o) {
		panic("stage: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = o
	o.children = append(o.children, child)
}

// RemoveChild detaches child from this object.
// Panics if child's parent is not o.
func (o *Object) RemoveChild(child *Object) {
	if child.parent != o {
		panic("stage: child's parent is not this object")
	}
	o.removeChildByPtr(child)
	child.parent = nil
}

// RemoveFromParent detaches this object from its parent.
// No-op if this object has no parent.
func (o *Object) RemoveFromParent() {
	if o.parent == nil {
		return
	}
	o.parent.RemoveChild(o)
}

// Parent returns the enclosing object, or nil.
func (o *Object) Parent() *Object {
	return o.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (o *Object) Children() []*Object {
	return o.children
}

// NumChildren returns the number of children.
func (o *Object) NumChildren() int {
	return len(o.children)
}

// WorldPosition returns the position in scene space, applying every
// ancestor's scale and position.
func (o *Object) WorldPosition() math32.Vector3 {
	p := o.Position
	for a := o.parent; a != nil; a = a.parent {
		p = math32.Vector3{
			X: a.Position.X + p.X*a.Scale.X,
			Y: a.Position.Y + p.Y*a.Scale.Y,
			Z: a.Position.Z + p.Z*a.Scale.Z,
		}
	}
	return p
}

// WorldScale returns the product of this object's scale and every ancestor's.
func (o *Object) WorldScale() math32.Vector3 {
	s := o.Scale
	for a := o.parent; a != nil; a = a.parent {
		s = math32.Vector3{X: s.X * a.Scale.X, Y: s.Y * a.Scale.Y, Z: s.Z * a.Scale.Z}
	}
	return s
}

// Walk visits o and its descendants depth first. Returning false from fn
// skips the subtree of that object.
func (o *Object) Walk(fn func(*Object) bool) {
	if !fn(o) {
		return
	}
	for _, child := range o.children {
		child.Walk(fn)
	}
}

// Find returns the first object named name in the subtree, or nil.
func (o *Object) Find(name string) *Object {
	var found *Object
	o.Walk(func(c *Object) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// isAncestor reports whether candidate is an ancestor of obj (or obj itself).
func isAncestor(candidate, obj *Object) bool {
	for p := obj; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from o.children without clearing child.parent.
func (o *Object) removeChildByPtr(child *Object) {
	for i, c := range o.children {
		if c == child {
			copy(o.children[i:], o.children[i+1:])
			o.children[len(o.children)-1] = nil
			o.children = o.children[:len(o.children)-1]
			return
		}
	}
}
