package stage

// Element is anything the visibility gate can observe.
type Element interface {
	ID() string
	Bounds() Rect
}

// Box is a laid-out element of the page. Canvases are boxes too: their
// drawable size follows their parent box.
type Box struct {
	// Rect is the box in page coordinates.
	Rect Rect

	id       string
	parent   *Box
	children []*Box
	attrs    map[string]string
}

// ID returns the element id.
func (b *Box) ID() string {
	return b.id
}

// Bounds returns the box in page coordinates.
func (b *Box) Bounds() Rect {
	return b.Rect
}

// Parent returns the enclosing box, or nil for top-level boxes.
func (b *Box) Parent() *Box {
	return b.parent
}

// Children returns the child boxes. The returned slice MUST NOT be mutated.
func (b *Box) Children() []*Box {
	return b.children
}

// ClientSize returns the box width and height.
func (b *Box) ClientSize() (w, h float64) {
	return b.Rect.Width, b.Rect.Height
}

// SetAttr sets a string attribute, like a DOM data attribute.
func (b *Box) SetAttr(key, value string) {
	if b.attrs == nil {
		b.attrs = make(map[string]string)
	}
	b.attrs[key] = value
}

// Attr returns the attribute value, or "" when unset.
func (b *Box) Attr(key string) string {
	return b.attrs[key]
}

// Document owns the boxes of one page and the viewport scrolled over them.
type Document struct {
	boxes    map[string]*Box
	order    []*Box
	viewport Rect
}

// NewDocument creates an empty document with a zero-sized viewport.
func NewDocument() *Document {
	return &Document{boxes: make(map[string]*Box)}
}

// NewBox adds a box. A later box with the same id replaces the earlier one
// in id lookups. parent may be nil.
func (d *Document) NewBox(id string, parent *Box, rect Rect) *Box {
	b := &Box{id: id, parent: parent, Rect: rect}
	if parent != nil {
		parent.children = append(parent.children, b)
	}
	d.boxes[id] = b
	d.order = append(d.order, b)
	return b
}

// ElementByID returns the box with the given id, or nil.
func (d *Document) ElementByID(id string) *Box {
	return d.boxes[id]
}

// Boxes returns every box in creation order. The returned slice MUST NOT be mutated.
func (d *Document) Boxes() []*Box {
	return d.order
}

// Height returns the bottom edge of the lowest box.
func (d *Document) Height() float64 {
	h := 0.0
	for _, b := range d.order {
		if bottom := b.Rect.Y + b.Rect.Height; bottom > h {
			h = bottom
		}
	}
	return h
}

// Viewport returns the visible part of the page.
func (d *Document) Viewport() Rect {
	return d.viewport
}

// SetViewportSize resizes the viewport, keeping the scroll offset in range.
func (d *Document) SetViewportSize(w, h float64) {
	d.viewport.Width = w
	d.viewport.Height = h
	d.ScrollTo(d.viewport.Y)
}

// ScrollTo moves the viewport to page offset y, clamped so the viewport
// never runs past the end of the page.
func (d *Document) ScrollTo(y float64) {
	maxY := d.Height() - d.viewport.Height
	if y > maxY {
		y = maxY
	}
	if y < 0 {
		y = 0
	}
	d.viewport.Y = y
}
