package tactile

import "time"

// LongTapGesture reports presses. In Immediate mode it fires with
// StateRecognized as soon as a touch lands; otherwise it fires with
// StateEnded when the touch lifts, provided it was held for MinDuration.
// Movement is ignored.
type LongTapGesture struct {
	gestureBase
	cfg LongTapConfig

	Position Vec2
	Touch    Touch
	// Held is how long the touch was down, set on release.
	Held time.Duration

	OnUpdate func(*LongTapGesture)
	OnTouch  func(*LongTapGesture, Touch)

	starts map[TouchKey]time.Time
}

// NewLongTapGesture creates a long-tap recognizer.
func NewLongTapGesture(cfg LongTapConfig) *LongTapGesture {
	g := &LongTapGesture{cfg: cfg, starts: make(map[TouchKey]time.Time)}
	g.kind = KindLongTap
	g.self = g
	return g
}

// Config returns the effective configuration.
func (g *LongTapGesture) Config() LongTapConfig { return g.cfg }

func (g *LongTapGesture) fire(t Touch) {
	g.Touch = t
	g.Position = t.Position
	if g.OnTouch != nil {
		g.OnTouch(g, t)
	}
	if g.OnUpdate != nil {
		g.OnUpdate(g)
	}
	g.emit()
}

func (g *LongTapGesture) start(t *Touch, p TouchProperties) {
	if g.state == StateFailed {
		return
	}
	g.starts[t.Key()] = g.now()
	g.Held = 0
	if g.cfg.Immediate {
		g.recognize(StateRecognized)
		g.fire(*t)
		return
	}
	g.state = StateBegan
}

func (g *LongTapGesture) move(t *Touch, p TouchProperties) {}

func (g *LongTapGesture) end(t *Touch, p TouchProperties) {
	if g.state == StateFailed {
		return
	}
	key := t.Key()
	began, ok := g.starts[key]
	if !ok {
		return
	}
	delete(g.starts, key)
	g.Held = g.now().Sub(began)
	if g.cfg.Immediate || g.Held < g.cfg.MinDuration {
		return
	}
	g.recognize(StateEnded)
	g.fire(*t)
}

// Reset implements GestureRecognizer.
func (g *LongTapGesture) Reset() {
	clear(g.starts)
	g.state = StatePossible
}

// Invalidate implements GestureRecognizer.
func (g *LongTapGesture) Invalidate() {
	clear(g.starts)
	g.state = StateFailed
	if g.OnUpdate != nil {
		g.OnUpdate(g)
	}
	g.emit()
}

func (g *LongTapGesture) event() GestureEvent {
	return GestureEvent{
		Kind:     KindLongTap,
		State:    g.state,
		Position: g.Position,
		Touch:    g.Touch.Key(),
		HasTouch: true,
	}
}
