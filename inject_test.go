package tactile

import (
	"math"
	"testing"
	"time"
)

func TestSyntheticTap(t *testing.T) {
	frames := SyntheticTap(3, 1, Vec2{5, 6})
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames))
	}
	if frames[0][0].State != TouchDown || frames[1][0].State != TouchUp {
		t.Errorf("states = %v, %v", frames[0][0].State, frames[1][0].State)
	}
	if frames[1][0].Key() != (TouchKey{ID: 3, Screen: 1}) {
		t.Errorf("key = %+v", frames[1][0].Key())
	}
}

func TestSyntheticDrag(t *testing.T) {
	frames := SyntheticDrag(1, 0, Vec2{10, 10}, Vec2{50, 10}, 5)
	if len(frames) != 5 {
		t.Fatalf("frames = %d, want 5", len(frames))
	}
	wantX := []float64{10, 20, 30, 40, 50}
	for i, f := range frames {
		assertNear(t, "x", f[0].Position.X, wantX[i])
	}
	if frames[2][0].State != TouchMoved {
		t.Errorf("middle state = %v, want moved", frames[2][0].State)
	}
	if got := len(SyntheticDrag(1, 0, Vec2{}, Vec2{1, 1}, 0)); got != 2 {
		t.Errorf("minimum frames = %d, want 2", got)
	}
}

func TestSyntheticPinchGeometry(t *testing.T) {
	frames := SyntheticPinch([2]int32{1, 2}, 0, Vec2{100, 100}, 10, 30, 0, math.Pi/2, 3)
	first, last := frames[0], frames[len(frames)-1]
	assertVec(t, "first a", first[0].Position, Vec2{110, 100})
	assertVec(t, "first b", first[1].Position, Vec2{90, 100})
	assertVec(t, "last a", last[0].Position, Vec2{100, 130})
	assertVec(t, "last b", last[1].Position, Vec2{100, 70})
}

func TestInjectorDrivesRecognizers(t *testing.T) {
	m, sched, root := newTestManager()
	s := addNode(root, "s", 0, 0, 200, 200)
	pan := NewPanGesture(PanConfig{NoMomentum: true})
	var total Vec2
	pan.OnUpdate = func(g *PanGesture) { total = total.Add(g.Delta) }
	m.Add(pan, s)

	in := NewInjector(m)
	in.Enqueue(SyntheticDrag(1, 0, Vec2{10, 10}, Vec2{110, 10}, 6)...)
	start := sched.Now()
	in.Flush()

	assertVec(t, "total", total, Vec2{100, 0})
	if in.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", in.Pending())
	}
	// Six frames delivered plus the final empty step.
	if got := sched.Now().Sub(start); got != 7*frame {
		t.Errorf("elapsed = %v, want %v", got, 7*frame)
	}
}

func TestInjectorPinch(t *testing.T) {
	m, _, root := newTestManager()
	s := addNode(root, "s", 0, 0, 200, 200)
	pinch := NewPinchGesture(PinchConfig{NoMomentum: true})
	product := 1.0
	pinch.OnUpdate = func(g *PinchGesture) { product *= g.Scale }
	m.Add(pinch, s)

	in := NewInjector(m)
	in.Enqueue(SyntheticPinch([2]int32{1, 2}, 0, Vec2{100, 100}, 20, 50, 0, 0, 8)...)
	in.Flush()
	assertNear(t, "scale product", product, 50.0/20)
}

func TestNewInjectorNeedsFrameScheduler(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewInjector(NewManager(NewNode("root", 1, 1), fakeScheduler{}))
}

type fakeScheduler struct{}

func (fakeScheduler) Now() time.Time { return time.Time{} }
func (fakeScheduler) Every(time.Duration, func() bool) Task { return nil }
