package tactile

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Glide animates up to 4 float64 fields on a Node simultaneously, e.g. a
// window snapping back inside the table after a fling. Create one with
// GlideTo or GlideSize and call Update(dt) each frame, or Run it on a
// Scheduler. If the target node is disposed the glide stops immediately.
type Glide struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool

	// OnDone fires once when the glide finishes.
	OnDone func(*Glide)
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *Glide) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.Done && g.OnDone != nil {
		g.OnDone(g)
	}
}

// Run drives the glide from sched at the display refresh rate until it is
// done. The returned task can stop it early.
func (g *Glide) Run(sched Scheduler) Task {
	interval := time.Second / RefreshRate
	return sched.Every(interval, func() bool {
		g.Update(float32(interval.Seconds()))
		return !g.Done
	})
}

// GlideTo creates a Glide that moves node to (x, y) over duration seconds.
func GlideTo(node *Node, x, y float64, duration float32, fn ease.TweenFunc) *Glide {
	g := &Glide{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(x), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(y), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// GlideSize creates a Glide that resizes node to w×h over duration seconds.
func GlideSize(node *Node, w, h float64, duration float32, fn ease.TweenFunc) *Glide {
	g := &Glide{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.Width), float32(w), duration, fn)
	g.tweens[1] = gween.New(float32(node.Height), float32(h), duration, fn)
	g.fields[0] = &node.Width
	g.fields[1] = &node.Height
	return g
}

// GlideFrame creates a Glide that moves and resizes node to frame.
func GlideFrame(node *Node, frame Rect, duration float32, fn ease.TweenFunc) *Glide {
	g := &Glide{count: 4, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(frame.X), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(frame.Y), duration, fn)
	g.tweens[2] = gween.New(float32(node.Width), float32(frame.Width), duration, fn)
	g.tweens[3] = gween.New(float32(node.Height), float32(frame.Height), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	g.fields[2] = &node.Width
	g.fields[3] = &node.Height
	return g
}
