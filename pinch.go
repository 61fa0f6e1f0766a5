package tactile

import (
	"math"
	"time"
)

// PinchGesture reports scaling and rotation of two or more touches around
// their center of gravity.
//
// Scale is the ratio of the reference touch's spread to its spread at the
// previous dispatch, accumulated multiplicatively until the next update, so
// the product of every reported Scale equals final spread / initial spread.
// Rotation is the accumulated change of the reference angle in radians.
// Adding or lifting a finger re-baselines without reporting a jump.
type PinchGesture struct {
	gestureBase
	cfg PinchConfig

	// Scale is the scale factor since the previous update.
	Scale float64
	// Rotation is the rotation in radians since the previous update.
	Rotation float64
	// Center is the center of gravity of the active touches.
	Center Vec2

	OnUpdate func(*PinchGesture)

	tracked    map[TouchKey]struct{}
	lastSpread float64
	lastAngle  float64
	pendScale  float64
	pendRot    float64
	lastFired  time.Time

	// residuals carried into momentum
	scaleVel float64
	rotVel   float64
	momentum momentum
}

// NewPinchGesture creates a pinch recognizer. Zero config fields take the
// defaults.
func NewPinchGesture(cfg PinchConfig) *PinchGesture {
	g := &PinchGesture{
		cfg:       cfg.withDefaults(),
		tracked:   make(map[TouchKey]struct{}),
		Scale:     1,
		pendScale: 1,
	}
	g.kind = KindPinch
	g.self = g
	g.momentum.friction = 1
	return g
}

// Config returns the effective configuration.
func (g *PinchGesture) Config() PinchConfig { return g.cfg }

func (g *PinchGesture) fire() {
	if g.OnUpdate != nil {
		g.OnUpdate(g)
	}
	g.emit()
}

func (g *PinchGesture) baseline(p TouchProperties) {
	g.lastSpread = p.Spread
	g.lastAngle = p.Angle
	g.Center = p.COG
}

func (g *PinchGesture) start(t *Touch, p TouchProperties) {
	if g.state == StateFailed {
		return
	}
	if g.state == StateMomentum {
		g.momentum.stop()
		g.state = StatePossible
	}
	g.tracked[t.Key()] = struct{}{}
	g.baseline(p)
	if p.Count >= 2 && (g.state == StatePossible || g.state == StateEnded) {
		g.state = StateBegan
		g.pendScale, g.pendRot = 1, 0
		g.lastFired = time.Time{}
	}
}

func (g *PinchGesture) move(t *Touch, p TouchProperties) {
	if g.state != StateBegan && g.state != StateRecognized {
		return
	}
	if _, ok := g.tracked[t.Key()]; !ok {
		return
	}
	if p.Count < 2 || g.lastSpread <= 0 || p.Spread <= 0 {
		g.baseline(p)
		return
	}
	g.pendScale *= p.Spread / g.lastSpread
	g.pendRot += wrapAngle(p.Angle - g.lastAngle)
	g.baseline(p)

	if g.state == StateBegan {
		g.recognize(StateRecognized)
	}
	now := g.now()
	if !g.lastFired.IsZero() && now.Sub(g.lastFired) < g.cfg.RefreshInterval {
		return
	}
	g.flush(now)
}

func (g *PinchGesture) flush(now time.Time) {
	g.Scale = g.pendScale
	g.Rotation = g.pendRot
	g.scaleVel = g.pendScale - 1
	g.rotVel = g.pendRot
	g.pendScale, g.pendRot = 1, 0
	g.lastFired = now
	g.fire()
}

func (g *PinchGesture) pending() bool {
	return g.pendScale != 1 || g.pendRot != 0
}

func (g *PinchGesture) end(t *Touch, p TouchProperties) {
	key := t.Key()
	if _, ok := g.tracked[key]; !ok {
		return
	}
	delete(g.tracked, key)
	if g.state == StateFailed {
		return
	}
	if p.Count > 0 {
		g.baseline(p)
		return
	}
	if g.state != StateRecognized {
		g.state = StateEnded
		return
	}

	now := g.now()
	recent := now.Sub(g.lastFired) <= g.cfg.MomentumWindow
	if g.pending() {
		g.flush(now)
		recent = true
	}
	moving := math.Abs(g.scaleVel) >= g.cfg.ScaleMomentumMin ||
		math.Abs(g.rotVel) >= g.cfg.RotationMomentumMin
	if !g.cfg.NoMomentum && recent && moving {
		g.momentum.stop()
		g.momentum.task = g.schedule(time.Second/RefreshRate, g.momentumTick)
		if g.momentum.task != nil {
			g.state = StateMomentum
			return
		}
	}
	g.state = StateEnded
	g.Scale, g.Rotation = 1, 0
	g.fire()
}

func (g *PinchGesture) momentumTick() bool {
	if g.state != StateMomentum {
		return false
	}
	f := g.momentum.decay(g.cfg.FrictionStep)
	g.scaleVel /= f
	g.rotVel /= f
	if math.Abs(g.scaleVel) < g.cfg.ScaleMomentumMin && math.Abs(g.rotVel) < g.cfg.RotationMomentumMin {
		g.scaleVel, g.rotVel = 0, 0
		g.Scale, g.Rotation = 1, 0
		g.momentum.task = nil
		g.momentum.friction = 1
		g.state = StatePossible
		g.fire()
		return false
	}
	g.Scale = 1 + g.scaleVel
	g.Rotation = g.rotVel
	g.fire()
	return true
}

// Reset implements GestureRecognizer.
func (g *PinchGesture) Reset() {
	clear(g.tracked)
	g.pendScale, g.pendRot = 1, 0
	g.lastSpread, g.lastAngle = 0, 0
	if g.state == StateMomentum {
		return
	}
	g.momentum.stop()
	g.state = StatePossible
}

// Invalidate implements GestureRecognizer.
func (g *PinchGesture) Invalidate() {
	g.momentum.stop()
	clear(g.tracked)
	g.pendScale, g.pendRot = 1, 0
	g.scaleVel, g.rotVel = 0, 0
	g.Scale, g.Rotation = 1, 0
	g.state = StateFailed
	g.fire()
}

func (g *PinchGesture) event() GestureEvent {
	return GestureEvent{
		Kind:     KindPinch,
		State:    g.state,
		Position: g.Center,
		Scale:    g.Scale,
		Rotation: g.Rotation,
	}
}

// wrapAngle maps a into [-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
