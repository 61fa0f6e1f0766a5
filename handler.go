package tactile

import "slices"

// GestureHandler owns the active touches and the recognizers of one surface.
// It fans every touch event out to all of its recognizers.
type GestureHandler struct {
	surface  Surface
	manager  *Manager
	sched    Scheduler
	touches  []*Touch
	gestures []GestureRecognizer
	// transforms map a touch's window-space position into this surface's
	// local space. Set at hit-test time, dropped on up.
	transforms map[TouchKey]Transform
}

func newGestureHandler(surface Surface, m *Manager) *GestureHandler {
	h := &GestureHandler{
		surface:    surface,
		manager:    m,
		transforms: make(map[TouchKey]Transform),
	}
	if m != nil {
		h.sched = m.sched
	}
	return h
}

// NewGestureHandler creates a standalone handler for surface, for hosts that
// do their own routing. Recognizer timers run on sched.
func NewGestureHandler(surface Surface, sched Scheduler) *GestureHandler {
	h := newGestureHandler(surface, nil)
	h.sched = sched
	return h
}

// Surface returns the surface this handler serves.
func (h *GestureHandler) Surface() Surface { return h.surface }

// Add registers a recognizer on this surface. Panics if the recognizer is
// already attached to a handler.
func (h *GestureHandler) Add(g GestureRecognizer) {
	if g == nil {
		panic("tactile: cannot add nil gesture")
	}
	b := g.base()
	if b.owner != nil {
		panic("tactile: gesture is already attached to a surface")
	}
	b.owner = h
	h.gestures = append(h.gestures, g)
}

// Remove detaches a recognizer, stopping any timer it runs. It may be called
// from a recognizer callback; the dispatch in progress skips g from then on
// and still reaches every other recognizer once.
func (h *GestureHandler) Remove(g GestureRecognizer) {
	if !slices.Contains(h.gestures, g) {
		return
	}
	h.gestures = without(h.gestures, func(each GestureRecognizer) bool { return each == g })
	detach(g)
}

// attached reports whether g still belongs to h. Recognizers removed during
// a dispatch stay in that dispatch's slice but must not see more events.
func (h *GestureHandler) attached(g GestureRecognizer) bool {
	return g.base().owner == h
}

// detach clears ownership so the recognizer can be added elsewhere.
func detach(g GestureRecognizer) {
	b := g.base()
	b.owner = nil
	if b.state == StateMomentum {
		b.state = StateFailed
	}
	g.Reset()
}

func (h *GestureHandler) detachAll() {
	for _, g := range h.gestures {
		detach(g)
	}
	h.gestures = nil
	h.touches = nil
	clear(h.transforms)
}

// Gestures returns the registered recognizers. The returned slice MUST NOT be
// mutated by the caller.
func (h *GestureHandler) Gestures() []GestureRecognizer { return h.gestures }

// Touches returns copies of the active touches in arrival order.
func (h *GestureHandler) Touches() []Touch {
	out := make([]Touch, len(h.touches))
	for i, t := range h.touches {
		out[i] = *t
	}
	return out
}

// OwnsTouch reports whether t is one of this surface's active touches.
func (h *GestureHandler) OwnsTouch(t Touch) bool {
	return h.indexOf(t.Key()) >= 0
}

// OwnsGesture reports whether g is registered on this surface.
func (h *GestureHandler) OwnsGesture(g GestureRecognizer) bool {
	for _, each := range h.gestures {
		if each == g {
			return true
		}
	}
	return false
}

// SetTransform records the window-to-local transform for a touch.
func (h *GestureHandler) SetTransform(t Transform, touch Touch) {
	h.transforms[touch.Key()] = t
}

func (h *GestureHandler) indexOf(key TouchKey) int {
	for i, t := range h.touches {
		if t.Key() == key {
			return i
		}
	}
	return -1
}

func (h *GestureHandler) properties() TouchProperties {
	return computeProperties(h.touches)
}

// Handle dispatches one touch event. The touch's position is first mapped
// through the transform recorded for it, if any.
func (h *GestureHandler) Handle(touch Touch) {
	key := touch.Key()
	if tr, ok := h.transforms[key]; ok {
		touch.Position = tr.Apply(touch.Position)
	}
	h.dispatch(touch)
	if touch.State == TouchUp {
		delete(h.transforms, key)
	}
}

// dispatch runs one local-space touch event through every recognizer.
func (h *GestureHandler) dispatch(touch Touch) {
	key := touch.Key()
	switch touch.State {
	case TouchDown:
		if i := h.indexOf(key); i >= 0 {
			// A down for a live identity means the up was lost.
			stale := *h.touches[i]
			stale.State = TouchUp
			h.dispatch(stale)
		}
		t := touch
		t.samples = 0
		t.record()
		h.touches = append(h.touches, &t)
		p := h.properties()
		for _, g := range h.gestures {
			if !h.attached(g) {
				continue
			}
			g.start(&t, p)
		}

	case TouchMoved:
		i := h.indexOf(key)
		if i < 0 {
			return
		}
		t := h.touches[i]
		t.Update(touch)
		p := h.properties()
		for _, g := range h.gestures {
			if !h.attached(g) {
				continue
			}
			g.move(t, p)
		}

	case TouchUp:
		i := h.indexOf(key)
		if i < 0 {
			return
		}
		t := h.touches[i]
		t.Update(touch)
		h.removeAt(i)
		p := h.properties()
		for _, g := range h.gestures {
			if !h.attached(g) {
				continue
			}
			g.end(t, p)
		}
		if len(h.touches) == 0 {
			for _, g := range h.gestures {
				g.Reset()
			}
		}
	}
}

func (h *GestureHandler) removeAt(i int) {
	copy(h.touches[i:], h.touches[i+1:])
	h.touches[len(h.touches)-1] = nil
	h.touches = h.touches[:len(h.touches)-1]
}

// Active reports whether any touch is down on this surface.
func (h *GestureHandler) Active() bool {
	return len(h.touches) > 0
}

// InvalidateAll fails every recognizer on this surface.
func (h *GestureHandler) InvalidateAll() {
	for _, g := range h.gestures {
		g.Invalidate()
	}
}

// recognized fails every other recognizer of the same kind on this surface.
func (h *GestureHandler) recognized(g GestureRecognizer) {
	kind := g.Kind()
	for _, each := range h.gestures {
		if each != g && each.Kind() == kind && each.State() != StateFailed {
			each.Invalidate()
		}
	}
}

func (h *GestureHandler) emit(g GestureRecognizer) {
	if h.manager == nil {
		return
	}
	ev := g.event()
	if h.surface != nil {
		ev.Surface = h.surface.SurfaceID()
	}
	h.manager.fireGesture(ev)
}
