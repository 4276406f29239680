package stage

import (
	"image/color"
	"testing"
)

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
		{"far outside", 999, 999, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Rect.Intersects ---

func TestRectIntersects(t *testing.T) {
	base := Rect{10, 10, 100, 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"fully contained", Rect{20, 20, 10, 10}, true},
		{"adjacent right", Rect{110, 10, 50, 50}, true},
		{"disjoint right", Rect{111, 10, 50, 50}, false},
		{"disjoint below", Rect{10, 111, 50, 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Intersects(tt.other)
			if got != tt.expect {
				t.Errorf("Rect%v.Intersects(%v) = %v, want %v", base, tt.other, got, tt.expect)
			}
		})
	}
}

// --- Rect.Intersection ---

func TestRectIntersection(t *testing.T) {
	a := Rect{0, 0, 100, 100}
	got := a.Intersection(Rect{50, 25, 100, 100})
	want := Rect{50, 25, 50, 75}
	if got != want {
		t.Errorf("Intersection = %v, want %v", got, want)
	}
	if area := a.Intersection(Rect{200, 200, 10, 10}).Area(); area != 0 {
		t.Errorf("disjoint Intersection area = %v, want 0", area)
	}
	if area := a.Intersection(Rect{100, 0, 10, 10}).Area(); area != 0 {
		t.Errorf("edge-only Intersection area = %v, want 0", area)
	}
}

func TestRectOffset(t *testing.T) {
	got := Rect{1, 2, 3, 4}.Offset(10, -2)
	if got != (Rect{11, 0, 3, 4}) {
		t.Errorf("Offset = %v", got)
	}
}

// --- Color ---

func TestColorRGBA(t *testing.T) {
	if got := ColorWhite.RGBA(); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("white = %v", got)
	}
	if got := ColorTransparent.RGBA(); got != (color.RGBA{}) {
		t.Errorf("transparent = %v", got)
	}
	half := Color{R: 1, G: 0, B: 0, A: 0.5}.RGBA()
	if half.A != 128 || half.R != 128 || half.G != 0 {
		t.Errorf("half red = %v, want premultiplied (128,0,0,128)", half)
	}
}

func BenchmarkRectIntersection(b *testing.B) {
	r := Rect{0, 0, 800, 600}
	other := Rect{100, 500, 400, 400}
	for i := 0; i < b.N; i++ {
		_ = r.Intersection(other)
	}
}
