package tactile

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestGlideTo(t *testing.T) {
	n := NewNode("n", 10, 10)
	g := GlideTo(n, 100, 200, 1.0, ease.Linear)

	g.Update(0.5)
	assertNear(t, "X mid", n.X, 50)
	assertNear(t, "Y mid", n.Y, 100)
	if g.Done {
		t.Error("should not be done halfway")
	}
	g.Update(0.5)
	assertNear(t, "X end", n.X, 100)
	assertNear(t, "Y end", n.Y, 200)
	if !g.Done {
		t.Error("should be done")
	}
}

func TestGlideFrame(t *testing.T) {
	n := NewNode("n", 10, 20)
	done := 0
	g := GlideFrame(n, Rect{5, 6, 30, 40}, 0.25, ease.Linear)
	g.OnDone = func(*Glide) { done++ }
	g.Update(1)
	g.Update(1)
	if n.Frame() != (Rect{5, 6, 30, 40}) {
		t.Errorf("Frame = %v, want {5 6 30 40}", n.Frame())
	}
	if done != 1 {
		t.Errorf("OnDone calls = %d, want 1", done)
	}
}

func TestGlideStopsOnDisposedNode(t *testing.T) {
	n := NewNode("n", 10, 10)
	g := GlideSize(n, 100, 100, 1.0, ease.Linear)
	n.Dispose()
	g.Update(0.5)
	if !g.Done {
		t.Error("glide on disposed node should be done")
	}
	if n.Width != 10 {
		t.Errorf("Width = %v, want unchanged 10", n.Width)
	}
}

func TestGlideRunOnScheduler(t *testing.T) {
	n := NewNode("n", 10, 10)
	sched := NewFrameScheduler(epoch)
	g := GlideTo(n, 60, 0, 0.5, ease.Linear)
	g.Run(sched)
	for i := 0; i < 60 && !g.Done; i++ {
		sched.Advance(frame)
	}
	if !g.Done {
		t.Fatal("glide should finish within a second")
	}
	assertNear(t, "X", n.X, 60)
	if sched.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", sched.Pending())
	}
}
