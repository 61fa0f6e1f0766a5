package tactile

import "time"

type tapTrack struct {
	start     Vec2
	startTime time.Time
	// untracked is set once an AllowMove touch leaves MaxMove.
	untracked bool
	reported  bool
	timer     Task
}

type tapEnd struct {
	key TouchKey
	pos Vec2
	at  time.Time
}

// TapGesture recognizes taps and double taps. Every touch on the surface is a
// tap candidate; a second tap by a different touch that lifts within
// DoubleTapMaxTime and DoubleTapMaxDistance of an earlier one reports
// StateDoubleTapped.
//
// In the default delayed mode a quick tap reports once, with StateEnded, when
// the touch lifts. A touch held past StartThreshold reports StateRecognized
// first. In Immediate mode the tap reports StateRecognized on touch down and
// only reports again on release for a double tap.
type TapGesture struct {
	gestureBase
	cfg TapConfig

	// Position is the position of the touch that caused the last update.
	Position Vec2
	// Touch is the touch that caused the last update.
	Touch Touch

	// OnUpdate fires on every state-affecting dispatch.
	OnUpdate func(*TapGesture)
	// OnTouch fires alongside OnUpdate with the originating touch.
	OnTouch func(*TapGesture, Touch)

	tracks map[TouchKey]*tapTrack
	ends   []tapEnd
}

// NewTapGesture creates a tap recognizer. Zero config fields take the
// defaults.
func NewTapGesture(cfg TapConfig) *TapGesture {
	g := &TapGesture{
		cfg:    cfg.withDefaults(),
		tracks: make(map[TouchKey]*tapTrack),
	}
	g.kind = KindTap
	g.self = g
	return g
}

// Config returns the effective configuration.
func (g *TapGesture) Config() TapConfig { return g.cfg }

func (g *TapGesture) fire(t Touch) {
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

func (g *TapGesture) start(t *Touch, p TouchProperties) {
	if g.state == StateFailed {
		return
	}
	key := t.Key()
	if old, ok := g.tracks[key]; ok {
		stopTask(&old.timer)
	}
	tr := &tapTrack{start: t.Position, startTime: g.now()}
	g.tracks[key] = tr

	if g.cfg.Immediate {
		tr.reported = true
		g.recognize(StateRecognized)
		g.fire(*t)
		return
	}

	if g.state == StatePossible || g.state == StateEnded || g.state == StateDoubleTapped {
		g.state = StateBegan
	}
	snapshot := *t
	tr.timer = g.schedule(g.cfg.StartThreshold, func() bool {
		cur, ok := g.tracks[key]
		if !ok || cur != tr || g.state == StateFailed {
			return false
		}
		tr.timer = nil
		tr.reported = true
		g.recognize(StateRecognized)
		g.fire(snapshot)
		return false
	})
}

func (g *TapGesture) move(t *Touch, p TouchProperties) {
	if g.state == StateFailed {
		return
	}
	tr, ok := g.tracks[t.Key()]
	if !ok || tr.untracked {
		return
	}
	if t.Position.Dist(tr.start) <= g.cfg.MaxMove {
		return
	}
	if g.cfg.AllowMove {
		tr.untracked = true
		return
	}
	g.cancelTracks()
	g.state = StateFailed
	g.fire(*t)
}

func (g *TapGesture) end(t *Touch, p TouchProperties) {
	if g.state == StateFailed {
		return
	}
	key := t.Key()
	tr, ok := g.tracks[key]
	if !ok {
		return
	}
	stopTask(&tr.timer)
	delete(g.tracks, key)

	now := g.now()
	double := g.matchDoubleTap(key, t.Position, now)
	switch {
	case double:
		g.recognize(StateDoubleTapped)
	case g.cfg.Immediate:
		g.state = StateEnded
		return
	default:
		g.recognize(StateEnded)
	}
	g.fire(*t)
}

// matchDoubleTap prunes stale tap ends, then either consumes a matching end
// left by another touch or records this one.
func (g *TapGesture) matchDoubleTap(key TouchKey, pos Vec2, now time.Time) bool {
	live := g.ends[:0]
	for _, e := range g.ends {
		if now.Sub(e.at) <= g.cfg.DoubleTapMaxTime {
			live = append(live, e)
		}
	}
	g.ends = live

	for i, e := range g.ends {
		if e.key != key && e.pos.Dist(pos) <= g.cfg.DoubleTapMaxDistance {
			g.ends = append(g.ends[:i], g.ends[i+1:]...)
			return true
		}
	}
	g.ends = append(g.ends, tapEnd{key: key, pos: pos, at: now})
	return false
}

func (g *TapGesture) cancelTracks() {
	for key, tr := range g.tracks {
		stopTask(&tr.timer)
		delete(g.tracks, key)
	}
}

// Reset implements GestureRecognizer. Recent tap ends are kept so a double
// tap can span two touch cycles.
func (g *TapGesture) Reset() {
	g.cancelTracks()
	g.state = StatePossible
}

// Invalidate implements GestureRecognizer.
func (g *TapGesture) Invalidate() {
	g.cancelTracks()
	g.ends = g.ends[:0]
	g.state = StateFailed
	if g.OnUpdate != nil {
		g.OnUpdate(g)
	}
	g.emit()
}

func (g *TapGesture) event() GestureEvent {
	return GestureEvent{
		Kind:     KindTap,
		State:    g.state,
		Position: g.Position,
		Touch:    g.Touch.Key(),
		HasTouch: true,
	}
}
