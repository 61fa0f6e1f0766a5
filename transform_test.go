package tactile

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Transform) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- Vec2 / Rect ---

func TestVec2Ops(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{1, 2}
	assertVec(t, "Add", a.Add(b), Vec2{4, 6})
	assertVec(t, "Sub", a.Sub(b), Vec2{2, 2})
	assertVec(t, "Scale", a.Scale(0.5), Vec2{1.5, 2})
	assertNear(t, "Len", a.Len(), 5)
	assertNear(t, "Dist", a.Dist(Vec2{}), 5)
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}
	tests := []struct {
		x, y float64
		want bool
	}{
		{15, 15, true},
		{10, 10, true}, // edge
		{30, 20, true}, // far corner
		{9.9, 15, false},
		{15, 20.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

// --- Transform ---

func TestTransformIdentityApply(t *testing.T) {
	p := Vec2{7, -3}
	assertVec(t, "identity", IdentityTransform.Apply(p), p)
}

func TestTransformTranslated(t *testing.T) {
	tr := IdentityTransform.Translated(10, 20).Translated(1, 2)
	assertMatrix(t, "translated", tr, Transform{1, 0, 0, 1, 11, 22})
	assertVec(t, "apply", tr.Apply(Vec2{1, 1}), Vec2{12, 23})
}

func TestTransformFlippedYTwiceIsIdentity(t *testing.T) {
	tr := IdentityTransform.FlippedY(50).FlippedY(50)
	assertMatrix(t, "flip twice", tr, IdentityTransform)
}

func TestTransformFlippedY(t *testing.T) {
	tr := IdentityTransform.FlippedY(100)
	assertVec(t, "flip", tr.Apply(Vec2{5, 30}), Vec2{5, 70})
}

func TestTransformConcatOrder(t *testing.T) {
	// translate first, then flip
	tr := IdentityTransform.Translated(0, -10).FlippedY(100)
	assertVec(t, "concat", tr.Apply(Vec2{0, 30}), Vec2{0, 80})
}

func TestTransformInvert(t *testing.T) {
	tr := IdentityTransform.Translated(-40, -25).FlippedY(60).Translated(-3, -4)
	inv := tr.Invert()
	p := Vec2{123, 45}
	assertVec(t, "roundtrip", inv.Apply(tr.Apply(p)), p)
	assertMatrix(t, "product", tr.Concat(inv), IdentityTransform)
}

func TestTransformInvertSingular(t *testing.T) {
	assertMatrix(t, "singular", Transform{0, 0, 0, 0, 5, 5}.Invert(), IdentityTransform)
}

// --- childTransform ---

func TestChildTransformSameOrientationIsTranslation(t *testing.T) {
	frames := []Rect{
		{X: 10, Y: 20, Width: 100, Height: 50},
		{X: 5, Y: 5, Width: 30, Height: 30},
	}
	for _, flipped := range []bool{false, true} {
		tr := IdentityTransform
		for _, f := range frames {
			tr = childTransform(tr, f, flipped, flipped)
		}
		got := tr.Apply(Vec2{40, 40})
		assertVec(t, "naive", got, Vec2{40 - 15, 40 - 25})
	}
}

func TestChildTransformFlipBoundary(t *testing.T) {
	// Unflipped parent, flipped child 100 tall at y=50: window y=60 is 10
	// below the child's top edge, so 90 in child space.
	frame := Rect{X: 0, Y: 50, Width: 200, Height: 100}
	tr := childTransform(IdentityTransform, frame, false, true)
	assertVec(t, "flipped local", tr.Apply(Vec2{20, 60}), Vec2{20, 90})

	// Back through an equivalent inverse boundary.
	back := childTransform(tr, Rect{Width: 200, Height: 100}, true, false)
	assertVec(t, "unflipped again", back.Apply(Vec2{20, 60}), Vec2{20, 10})

	p := Vec2{33, 77}
	assertVec(t, "inverse", tr.Invert().Apply(tr.Apply(p)), p)
}
