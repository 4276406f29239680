package stage

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	o := NewSprite("s", nil)
	g := TweenPosition(o, math32.Vec3(10, 20, 30), 1, ease.Linear)
	if g.Target() != o {
		t.Fatal("Target should be the animated object")
	}

	g.Update(0.5)
	if g.Done {
		t.Error("should not be done halfway")
	}
	if o.Position.X < 4.9 || o.Position.X > 5.1 {
		t.Errorf("halfway X = %v, want ~5", o.Position.X)
	}

	g.Update(0.6)
	if !g.Done {
		t.Error("should be done after the full duration")
	}
	if o.Position != math32.Vec3(10, 20, 30) {
		t.Errorf("Position = %v, want (10,20,30)", o.Position)
	}
}

func TestTweenScaleAndSize(t *testing.T) {
	o := NewSprite("s", nil)
	sc := TweenScale(o, math32.Vec3(0, 0, 0), 0.25, ease.Linear)
	sz := TweenSize(o, 4, 0.25, ease.Linear)
	for i := 0; i < 10; i++ {
		sc.Update(0.05)
		sz.Update(0.05)
	}
	if !sc.Done || !sz.Done {
		t.Fatal("tweens should be done")
	}
	if o.Scale != (math32.Vector3{}) {
		t.Errorf("Scale = %v, want zero", o.Scale)
	}
	if o.Size != 4 {
		t.Errorf("Size = %v, want 4", o.Size)
	}
}

func TestTweenDoneIgnoresUpdates(t *testing.T) {
	o := NewSprite("s", nil)
	g := TweenSize(o, 2, 0.1, ease.Linear)
	g.Update(1)
	o.Size = 7
	g.Update(1)
	if o.Size != 7 {
		t.Errorf("finished tween wrote Size = %v", o.Size)
	}
}
