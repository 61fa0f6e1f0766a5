package tactile

import "time"

// PanGesture reports the averaged movement of all touches on a surface.
//
// Each move contributes the touch's positional change divided by the number
// of active touches, so a multi-finger drag moves as fast as a single finger.
// Deltas accumulate and are reported at most once per RefreshInterval. When
// the last touch lifts shortly after an update the pan enters StateMomentum
// and keeps reporting a friction-decayed delta every frame until it falls
// below MomentumMin, then reports a zero delta in StatePossible.
type PanGesture struct {
	gestureBase
	cfg PanConfig

	// Delta is the movement reported by the last update.
	Delta Vec2
	// Position is the center of gravity of the active touches.
	Position Vec2
	// TouchCount is the number of active touches at the last update.
	TouchCount int

	OnUpdate func(*PanGesture)

	last      map[TouchKey]Vec2
	pending   Vec2
	lastFired time.Time
	velocity  Vec2
	momentum  momentum
}

// NewPanGesture creates a pan recognizer. Zero config fields take the
// defaults.
func NewPanGesture(cfg PanConfig) *PanGesture {
	g := &PanGesture{cfg: cfg.withDefaults(), last: make(map[TouchKey]Vec2)}
	g.kind = KindPan
	g.self = g
	g.momentum.friction = 1
	return g
}

// Config returns the effective configuration.
func (g *PanGesture) Config() PanConfig { return g.cfg }

func (g *PanGesture) fire() {
	if g.OnUpdate != nil {
		g.OnUpdate(g)
	}
	g.emit()
}

func (g *PanGesture) start(t *Touch, p TouchProperties) {
	if g.state == StateFailed {
		return
	}
	if g.state == StateMomentum {
		g.momentum.stop()
		g.state = StatePossible
	}
	g.last[t.Key()] = t.Position
	g.Position = p.COG
	g.TouchCount = p.Count
	if g.state == StatePossible || g.state == StateEnded {
		g.state = StateBegan
		g.pending = Vec2{}
		g.lastFired = time.Time{}
	}
}

func (g *PanGesture) move(t *Touch, p TouchProperties) {
	if g.state != StateBegan && g.state != StateRecognized {
		return
	}
	key := t.Key()
	prev, ok := g.last[key]
	if !ok {
		return
	}
	g.last[key] = t.Position
	if p.Count > 0 {
		g.pending = g.pending.Add(t.Position.Sub(prev).Scale(1 / float64(p.Count)))
	}
	g.Position = p.COG
	g.TouchCount = p.Count

	if g.state == StateBegan {
		if p.Count < g.cfg.MinTouches {
			return
		}
		g.recognize(StateRecognized)
	}
	now := g.now()
	if !g.lastFired.IsZero() && now.Sub(g.lastFired) < g.cfg.RefreshInterval {
		return
	}
	g.flush(now)
}

// flush reports the accumulated delta.
func (g *PanGesture) flush(now time.Time) {
	g.Delta = g.pending
	g.velocity = g.pending
	g.pending = Vec2{}
	g.lastFired = now
	g.fire()
}

func (g *PanGesture) end(t *Touch, p TouchProperties) {
	key := t.Key()
	prev, ok := g.last[key]
	if !ok {
		return
	}
	delete(g.last, key)
	if g.state == StateFailed {
		return
	}
	// The release position may differ from the last move.
	if (g.state == StateBegan || g.state == StateRecognized) && t.Position != prev {
		g.pending = g.pending.Add(t.Position.Sub(prev).Scale(1 / float64(p.Count+1)))
	}
	g.TouchCount = p.Count
	if p.Count > 0 {
		g.Position = p.COG
		return
	}
	if g.state != StateRecognized {
		g.state = StateEnded
		return
	}

	now := g.now()
	recent := now.Sub(g.lastFired) <= g.cfg.MomentumWindow
	if g.pending != (Vec2{}) {
		g.flush(now)
		recent = true
	}
	if !g.cfg.NoMomentum && recent && g.velocity.Len() >= g.cfg.MomentumMin {
		g.startMomentum()
		return
	}
	g.state = StateEnded
	g.Delta = Vec2{}
	g.fire()
}

func (g *PanGesture) startMomentum() {
	g.momentum.stop()
	g.momentum.task = g.schedule(time.Second/RefreshRate, g.momentumTick)
	if g.momentum.task == nil {
		g.state = StateEnded
		g.Delta = Vec2{}
		g.fire()
		return
	}
	g.state = StateMomentum
}

// momentumTick divides the residual velocity by a growing friction divisor.
// Returns false once momentum is over.
func (g *PanGesture) momentumTick() bool {
	if g.state != StateMomentum {
		return false
	}
	g.velocity = g.velocity.Scale(1 / g.momentum.decay(g.cfg.FrictionStep))
	if g.velocity.Len() < g.cfg.MomentumMin {
		g.velocity = Vec2{}
		g.Delta = Vec2{}
		g.momentum.task = nil
		g.momentum.friction = 1
		g.state = StatePossible
		g.fire()
		return false
	}
	g.Delta = g.velocity
	g.fire()
	return true
}

// InMomentum reports whether a momentum continuation is running.
func (g *PanGesture) InMomentum() bool {
	return g.state == StateMomentum
}

// Reset implements GestureRecognizer.
func (g *PanGesture) Reset() {
	clear(g.last)
	g.pending = Vec2{}
	if g.state == StateMomentum {
		return
	}
	g.momentum.stop()
	g.state = StatePossible
}

// Invalidate implements GestureRecognizer.
func (g *PanGesture) Invalidate() {
	g.momentum.stop()
	clear(g.last)
	g.pending = Vec2{}
	g.velocity = Vec2{}
	g.Delta = Vec2{}
	g.state = StateFailed
	g.fire()
}

func (g *PanGesture) event() GestureEvent {
	return GestureEvent{
		Kind:     KindPan,
		State:    g.state,
		Position: g.Position,
		Delta:    g.Delta,
	}
}
