package stage

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

func spriteAt(name string, img *ebiten.Image, x, y, z float32) *Object {
	s := NewSprite(name, img)
	s.Position = math32.Vec3(x, y, z)
	return s
}

func TestEbitenRendererSetSize(t *testing.T) {
	r := NewEbitenRenderer(RendererOptions{})
	if r.Surface() != nil {
		t.Fatal("surface should not exist before SetSize")
	}
	r.SetSize(64, 32)
	if r.Surface() == nil {
		t.Fatal("surface should exist after SetSize")
	}
	if w, h := r.Surface().Bounds().Dx(), r.Surface().Bounds().Dy(); w != 64 || h != 32 {
		t.Errorf("surface = %dx%d, want 64x32", w, h)
	}
	first := r.Surface()
	r.SetSize(64, 32)
	if r.Surface() != first {
		t.Error("same size should keep the surface")
	}
	r.SetSize(0, 32)
	if r.Surface() != nil {
		t.Error("zero width should release the surface")
	}
	if w, h := r.Size(); w != 0 || h != 32 {
		t.Errorf("Size = %dx%d, want 0x32", w, h)
	}
}

func TestEbitenRendererStats(t *testing.T) {
	img := ebiten.NewImage(4, 4)
	root := NewGroup("root")
	inner := NewGroup("inner")
	inner.AddChild(spriteAt("front", img, 0, 0, 0))
	root.AddChild(inner)
	root.AddChild(spriteAt("behind", img, 0, 0, 10))
	hidden := spriteAt("hidden", img, 0, 0, 0)
	hidden.Visible = false
	root.AddChild(hidden)
	root.AddChild(NewSprite("no-image", nil))

	r := NewEbitenRenderer(RendererOptions{ClearColor: Color{0, 0, 0, 1}})
	r.SetSize(100, 100)
	r.Render(root, NewPerspectiveCamera(75))

	st := r.Stats()
	if st.Drawn != 1 {
		t.Errorf("Drawn = %d, want 1", st.Drawn)
	}
	if st.Culled != 1 {
		t.Errorf("Culled = %d, want 1 (sprite behind the camera)", st.Culled)
	}
	if st.Depth != 2 {
		t.Errorf("Depth = %d, want 2", st.Depth)
	}
}

func TestEbitenRendererNoSurfaceOrCamera(t *testing.T) {
	root := NewGroup("root")
	root.AddChild(spriteAt("s", ebiten.NewImage(2, 2), 0, 0, 0))

	r := NewEbitenRenderer(RendererOptions{})
	r.Render(root, NewPerspectiveCamera(75))
	if r.Stats().Drawn != 0 {
		t.Error("no surface: nothing should draw")
	}
	r.SetSize(10, 10)
	r.Render(root, nil)
	if r.Stats().Drawn != 0 {
		t.Error("no camera: nothing should draw")
	}
}

func TestSortFarToNear(t *testing.T) {
	cmds := []drawCommand{
		{depth: 0.1, treeOrder: 1},
		{depth: 0.9, treeOrder: 2},
		{depth: 0.5, treeOrder: 3},
		{depth: 0.9, treeOrder: 4},
	}
	sortFarToNear(cmds)
	want := []int{2, 4, 3, 1}
	for i, w := range want {
		if cmds[i].treeOrder != w {
			t.Fatalf("order[%d] = %d, want %d", i, cmds[i].treeOrder, w)
		}
	}
}

func TestProjectedSizeShrinksWithDistance(t *testing.T) {
	img := ebiten.NewImage(8, 8)
	r := NewEbitenRenderer(RendererOptions{})
	r.SetSize(200, 200)
	cam := NewPerspectiveCamera(90)

	near, ok := r.project(spriteAt("near", img, 0, 0, 0), cam)
	if !ok {
		t.Fatal("near sprite culled")
	}
	far, ok := r.project(spriteAt("far", img, 0, 0, -5), cam)
	if !ok {
		t.Fatal("far sprite culled")
	}
	if far.px >= near.px {
		t.Errorf("far px %v should be smaller than near px %v", far.px, near.px)
	}
	if far.depth <= near.depth {
		t.Errorf("far depth %v should exceed near depth %v", far.depth, near.depth)
	}
	// 90 degree fov at distance 5: one world unit spans a tenth of the height.
	if diff := near.px - 20; diff > 0.01 || diff < -0.01 {
		t.Errorf("near px = %v, want 20", near.px)
	}
}
