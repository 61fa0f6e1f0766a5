package tactile

import "time"

// GestureRecognizer is a state machine that turns a surface's touch stream
// into gesture updates. The implementations are [TapGesture],
// [LongTapGesture], [PanGesture], and [PinchGesture].
//
// Recognizers are driven only by the [GestureHandler] that owns them, on the
// dispatch goroutine.
type GestureRecognizer interface {
	Kind() GestureKind
	State() GestureState
	// Reset returns the recognizer to StatePossible and forgets tracked
	// touches. Pan and pinch momentum keeps running across a reset.
	Reset()
	// Invalidate fails the recognizer immediately, stops any running
	// timer, and fires one final update so observers can clean up.
	Invalidate()

	base() *gestureBase
	start(t *Touch, p TouchProperties)
	move(t *Touch, p TouchProperties)
	end(t *Touch, p TouchProperties)
	event() GestureEvent
}

// gestureBase holds the bookkeeping shared by every recognizer kind.
type gestureBase struct {
	kind  GestureKind
	state GestureState
	owner *GestureHandler
	self  GestureRecognizer
}

func (b *gestureBase) base() *gestureBase { return b }

// Kind returns the recognizer family.
func (b *gestureBase) Kind() GestureKind { return b.kind }

// State returns the current state.
func (b *gestureBase) State() GestureState { return b.state }

// now returns the owning handler's clock, or wall time when detached.
func (b *gestureBase) now() time.Time {
	if b.owner != nil && b.owner.sched != nil {
		return b.owner.sched.Now()
	}
	return time.Now()
}

func (b *gestureBase) schedule(interval time.Duration, fn func() bool) Task {
	if b.owner == nil || b.owner.sched == nil {
		return nil
	}
	return b.owner.sched.Every(interval, fn)
}

// recognize moves to state and lets the owning handler fail same-kind
// siblings before the caller fires its own update.
func (b *gestureBase) recognize(state GestureState) {
	b.state = state
	if b.owner != nil {
		b.owner.recognized(b.self)
	}
}

// emit forwards the recognizer's current snapshot to manager-level
// listeners.
func (b *gestureBase) emit() {
	if b.owner != nil {
		b.owner.emit(b.self)
	}
}

func stopTask(t *Task) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

// momentum is the friction-decayed continuation shared by pan and pinch.
type momentum struct {
	task     Task
	friction float64
}

// decay advances the friction divisor and returns the next residual factor
// to divide by.
func (m *momentum) decay(step float64) float64 {
	if m.friction < 1 {
		m.friction = 1
	}
	m.friction += step
	return m.friction
}

func (m *momentum) stop() {
	stopTask(&m.task)
	m.friction = 1
}

func (m *momentum) active() bool {
	return m.task != nil
}
