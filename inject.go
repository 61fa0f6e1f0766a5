package tactile

import (
	"math"
	"time"
)

// TouchFrame is the set of touch events delivered together in one frame.
type TouchFrame []Touch

// SyntheticTap returns a press and a release of touch id at pos, one frame
// each.
func SyntheticTap(id, screen int32, pos Vec2) []TouchFrame {
	return []TouchFrame{
		{{ID: id, Screen: screen, State: TouchDown, Position: pos}},
		{{ID: id, Screen: screen, State: TouchUp, Position: pos}},
	}
}

// SyntheticDrag returns a full drag sequence: press at from, linearly
// interpolated moves over frames-2 intermediate frames, and release at to.
// The sequence spans frames frames. Minimum frames is 2 (press + release).
func SyntheticDrag(id, screen int32, from, to Vec2, frames int) []TouchFrame {
	if frames < 2 {
		frames = 2
	}
	out := make([]TouchFrame, 0, frames)
	out = append(out, TouchFrame{{ID: id, Screen: screen, State: TouchDown, Position: from}})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		p := from.Add(to.Sub(from).Scale(t))
		out = append(out, TouchFrame{{ID: id, Screen: screen, State: TouchMoved, Position: p}})
	}
	out = append(out, TouchFrame{{ID: id, Screen: screen, State: TouchUp, Position: to}})
	return out
}

// SyntheticPinch returns a two-finger sequence around center. Touch ids[0]
// and ids[1] sit on opposite sides of center at angle (radians), their
// distance from center moving from fromSpread to toSpread while the pair
// turns by rotate radians. Both land in the first frame, reach the final
// geometry in the second to last, and lift in place in the last. Minimum
// frames is 2.
func SyntheticPinch(ids [2]int32, screen int32, center Vec2, fromSpread, toSpread, angle, rotate float64, frames int) []TouchFrame {
	if frames < 2 {
		frames = 2
	}
	at := func(t float64, state TouchState) TouchFrame {
		spread := fromSpread + (toSpread-fromSpread)*t
		a := angle + rotate*t
		off := Vec2{math.Cos(a) * spread, math.Sin(a) * spread}
		return TouchFrame{
			{ID: ids[0], Screen: screen, State: state, Position: center.Add(off)},
			{ID: ids[1], Screen: screen, State: state, Position: center.Sub(off)},
		}
	}
	out := make([]TouchFrame, 0, frames)
	out = append(out, at(0, TouchDown))
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		out = append(out, at(float64(i)/float64(steps), TouchMoved))
	}
	out = append(out, at(1, TouchUp))
	return out
}

// Injector feeds synthetic touch frames to a Manager, one frame per Step,
// advancing a FrameScheduler by one display frame after each so recognizer
// timers behave as they would live.
type Injector struct {
	manager *Manager
	sched   *FrameScheduler
	start   time.Time
	queue   []TouchFrame

	// FrameDuration is how far the clock moves per Step. Defaults to one
	// frame at RefreshRate.
	FrameDuration time.Duration
}

// NewInjector creates an injector for m. The manager's scheduler must be a
// *FrameScheduler; panics otherwise.
func NewInjector(m *Manager) *Injector {
	sched, ok := m.Scheduler().(*FrameScheduler)
	if !ok {
		panic("tactile: injector needs a manager driven by a FrameScheduler")
	}
	return &Injector{
		manager:       m,
		sched:         sched,
		start:         sched.Now(),
		FrameDuration: time.Second / RefreshRate,
	}
}

// Enqueue appends frames to the injection queue.
func (in *Injector) Enqueue(frames ...TouchFrame) {
	in.queue = append(in.queue, frames...)
}

// Pending returns the number of queued frames.
func (in *Injector) Pending() int { return len(in.queue) }

// Step delivers the next queued frame, if any, then advances the clock by
// one frame. Returns true if a frame was delivered.
func (in *Injector) Step() bool {
	delivered := false
	if len(in.queue) > 0 {
		frame := in.queue[0]
		copy(in.queue, in.queue[1:])
		in.queue[len(in.queue)-1] = nil
		in.queue = in.queue[:len(in.queue)-1]

		stamp := in.sched.Now().Sub(in.start).Seconds()
		for _, t := range frame {
			if t.Time == 0 {
				t.Time = stamp
			}
			in.manager.Handle(t)
		}
		delivered = true
	}
	in.sched.Advance(in.FrameDuration)
	return delivered
}

// Flush steps until the queue is empty.
func (in *Injector) Flush() {
	for in.Step() {
	}
}
