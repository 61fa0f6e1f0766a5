package tactile

import (
	"math"
	"testing"
)

func touchPtrs(ts ...Touch) []*Touch {
	out := make([]*Touch, len(ts))
	for i := range ts {
		out[i] = &ts[i]
	}
	return out
}

func TestComputePropertiesEmpty(t *testing.T) {
	p := computeProperties(nil)
	if p != (TouchProperties{}) {
		t.Errorf("empty = %+v, want zero", p)
	}
}

func TestComputePropertiesSingle(t *testing.T) {
	p := computeProperties(touchPtrs(NewTouch(1, 0, TouchDown, Vec2{10, 20}, 0)))
	if p.Count != 1 {
		t.Errorf("Count = %d, want 1", p.Count)
	}
	assertVec(t, "COG", p.COG, Vec2{10, 20})
	assertNear(t, "Angle", p.Angle, 0)
	assertNear(t, "Spread", p.Spread, 0)
}

func TestComputePropertiesPair(t *testing.T) {
	p := computeProperties(touchPtrs(
		NewTouch(2, 0, TouchDown, Vec2{10, 0}, 0),
		NewTouch(1, 0, TouchDown, Vec2{0, 0}, 0),
	))
	assertVec(t, "COG", p.COG, Vec2{5, 0})
	// Reference touch is id 1 at (0,0): to the left of COG.
	assertNear(t, "Angle", p.Angle, math.Pi)
	assertNear(t, "Spread", p.Spread, 5)
}

func TestComputePropertiesOrderIndependent(t *testing.T) {
	a := NewTouch(4, 1, TouchDown, Vec2{3, 7}, 0)
	b := NewTouch(9, 0, TouchDown, Vec2{-2, 5}, 0)
	c := NewTouch(1, 1, TouchDown, Vec2{8, -1}, 0)
	p1 := computeProperties(touchPtrs(a, b, c))
	p2 := computeProperties(touchPtrs(c, a, b))
	if p1 != p2 {
		t.Errorf("order changed properties: %+v vs %+v", p1, p2)
	}
	// Screen 0 sorts before screen 1, so b is the reference.
	d := b.Position.Sub(p1.COG)
	assertNear(t, "Angle", p1.Angle, math.Atan2(d.Y, d.X))
}

func TestComputePropertiesSpreadScales(t *testing.T) {
	near := computeProperties(touchPtrs(
		NewTouch(1, 0, TouchDown, Vec2{-10, 0}, 0),
		NewTouch(2, 0, TouchDown, Vec2{10, 0}, 0),
	))
	far := computeProperties(touchPtrs(
		NewTouch(1, 0, TouchDown, Vec2{-20, 0}, 0),
		NewTouch(2, 0, TouchDown, Vec2{20, 0}, 0),
	))
	assertNear(t, "ratio", far.Spread/near.Spread, 2)
}
