package tactile

import (
	"slices"
	"time"
)

// --- Listener registry ---

type touchListener struct {
	id uint32
	fn func(Touch)
}

type gestureListener struct {
	id uint32
	fn func(GestureEvent)
}

type listenerRegistry struct {
	touch   []touchListener
	gesture []gestureListener
	nextID  uint32
}

type listenerKind uint8

const (
	listenTouch listenerKind = iota
	listenGesture
)

// CallbackHandle allows removing a registered manager-level callback.
type CallbackHandle struct {
	id   uint32
	reg  *listenerRegistry
	kind listenerKind
}

// Remove unregisters this callback so it no longer fires. It is safe to call
// from inside a callback: the dispatch in progress still calls every other
// listener exactly once.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case listenTouch:
		h.reg.touch = without(h.reg.touch, func(l touchListener) bool { return l.id == h.id })
	case listenGesture:
		h.reg.gesture = without(h.reg.gesture, func(l gestureListener) bool { return l.id == h.id })
	}
}

// without returns a fresh slice holding the elements of s that do not match.
// s itself is left untouched, so a range over it stays valid.
func without[T any](s []T, match func(T) bool) []T {
	i := slices.IndexFunc(s, match)
	if i < 0 {
		return s
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// --- Manager ---

// Manager routes touches to the surfaces that own them. A touch-down is
// hit-tested through the surface tree under root to find the deepest visible
// surface with registered gestures; every later event for that touch goes
// straight to the same handler, so a drag keeps working after the finger
// leaves the surface it started on.
//
// Manager is not safe for concurrent use. Touches arriving on other
// goroutines must be handed over through a [TouchQueue].
type Manager struct {
	root     Surface
	sched    Scheduler
	store    EventStore
	handlers map[SurfaceID]*GestureHandler
	// order keeps handler scans deterministic.
	order     []*GestureHandler
	listeners listenerRegistry
	screens   map[int32]Vec2
}

// NewManager creates a manager routing touches through the tree under root.
// If sched is nil, a FrameScheduler starting at the current time is used; the
// host must then call Scheduler().(*FrameScheduler).Update every frame.
func NewManager(root Surface, sched Scheduler) *Manager {
	if root == nil {
		panic("tactile: manager needs a root surface")
	}
	if sched == nil {
		sched = NewFrameScheduler(time.Now())
	}
	return &Manager{
		root:     root,
		sched:    sched,
		handlers: make(map[SurfaceID]*GestureHandler),
		screens:  make(map[int32]Vec2),
	}
}

// Root returns the root surface.
func (m *Manager) Root() Surface { return m.root }

// Scheduler returns the scheduler recognizer timers run on.
func (m *Manager) Scheduler() Scheduler { return m.sched }

// SetEventStore forwards every gesture update to store. Pass nil to detach.
func (m *Manager) SetEventStore(store EventStore) { m.store = store }

// SetScreenOrigin places a physical screen in window space. Touches from that
// screen are offset by origin before routing.
func (m *Manager) SetScreenOrigin(screen int32, origin Vec2) {
	m.screens[screen] = origin
}

// OnTouch registers a callback fired for every incoming touch before routing,
// including touches that hit nothing.
func (m *Manager) OnTouch(fn func(Touch)) CallbackHandle {
	m.listeners.nextID++
	id := m.listeners.nextID
	m.listeners.touch = append(m.listeners.touch, touchListener{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &m.listeners, kind: listenTouch}
}

// OnGesture registers a callback fired for every recognizer update on every
// surface.
func (m *Manager) OnGesture(fn func(GestureEvent)) CallbackHandle {
	m.listeners.nextID++
	id := m.listeners.nextID
	m.listeners.gesture = append(m.listeners.gesture, gestureListener{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &m.listeners, kind: listenGesture}
}

func (m *Manager) fireGesture(ev GestureEvent) {
	for _, l := range m.listeners.gesture {
		l.fn(ev)
	}
	if m.store != nil {
		m.store.EmitEvent(ev)
	}
}

// Add registers g on surface, creating the surface's handler on first use.
// Panics if g is already attached to a surface.
func (m *Manager) Add(g GestureRecognizer, surface Surface) {
	if surface == nil {
		panic("tactile: cannot add gesture to nil surface")
	}
	m.handlerFor(surface).Add(g)
}

func (m *Manager) handlerFor(surface Surface) *GestureHandler {
	id := surface.SurfaceID()
	if h, ok := m.handlers[id]; ok {
		return h
	}
	h := newGestureHandler(surface, m)
	m.handlers[id] = h
	m.order = append(m.order, h)
	if globalDebug {
		debugCheckHandlerCount(len(m.order))
	}
	return h
}

// Handler returns the handler registered for surface, if any.
func (m *Manager) Handler(surface Surface) (*GestureHandler, bool) {
	h, ok := m.handlers[surface.SurfaceID()]
	return h, ok
}

// Remove drops the handlers of the given surfaces, detaching their
// recognizers. Touches they owned are forgotten.
func (m *Manager) Remove(surfaces ...Surface) {
	for _, s := range surfaces {
		id := s.SurfaceID()
		h, ok := m.handlers[id]
		if !ok {
			continue
		}
		delete(m.handlers, id)
		for i, each := range m.order {
			if each == h {
				copy(m.order[i:], m.order[i+1:])
				m.order[len(m.order)-1] = nil
				m.order = m.order[:len(m.order)-1]
				break
			}
		}
		h.detachAll()
	}
}

// RemoveAll drops every handler.
func (m *Manager) RemoveAll() {
	for _, h := range m.order {
		h.detachAll()
	}
	clear(m.handlers)
	clear(m.order)
	m.order = m.order[:0]
}

// SurfaceFor returns the surface g is registered on.
func (m *Manager) SurfaceFor(g GestureRecognizer) (Surface, bool) {
	h := g.base().owner
	if h == nil || h.manager != m {
		return nil, false
	}
	return h.surface, true
}

// IsActive reports whether any surface has a touch down.
func (m *Manager) IsActive() bool {
	for _, h := range m.order {
		if h.Active() {
			return true
		}
	}
	return false
}

// InvalidateAllGestures fails every recognizer on every surface. Touches stay
// owned; their recognizers recover on the next reset.
func (m *Manager) InvalidateAllGestures() {
	for _, h := range m.order {
		h.InvalidateAll()
	}
}

// owner returns the handler that owns t.
func (m *Manager) owner(t Touch) *GestureHandler {
	for _, h := range m.order {
		if h.OwnsTouch(t) {
			return h
		}
	}
	return nil
}

// Handle routes one touch event. This is the sole touch entry point.
func (m *Manager) Handle(t Touch) {
	if origin, ok := m.screens[t.Screen]; ok {
		t.Position = t.Position.Add(origin)
	}
	for _, l := range m.listeners.touch {
		l.fn(t)
	}

	if t.State != TouchDown {
		if h := m.owner(t); h != nil {
			h.Handle(t)
		}
		return
	}

	if h := m.owner(t); h != nil {
		// Lost up: close the stale contact before routing the new one.
		stale := t
		stale.State = TouchUp
		if i := h.indexOf(t.Key()); i >= 0 {
			stale.Position = h.touches[i].Position
		}
		h.dispatch(stale)
		delete(h.transforms, t.Key())
	}

	surface, tr, ok := m.hitTest(t.Position)
	if !ok {
		return
	}
	h := m.handlers[surface.SurfaceID()]
	h.SetTransform(tr, t)
	h.Handle(t)
}

// --- Hit testing ---

// HitTest returns the deepest visible surface under the window-space point p
// that has gestures registered, with the transform from window space into
// that surface's local space.
func (m *Manager) HitTest(p Vec2) (Surface, Transform, bool) {
	return m.hitTest(p)
}

func (m *Manager) hitTest(p Vec2) (Surface, Transform, bool) {
	return m.target(m.root, p, m.root.IsFlipped(), IdentityTransform)
}

// target walks the tree depth-first, front to back. tr maps window space
// into the space s's frame is expressed in, whose orientation is
// parentFlipped.
func (m *Manager) target(s Surface, p Vec2, parentFlipped bool, tr Transform) (Surface, Transform, bool) {
	if s.IsHidden() {
		return nil, Transform{}, false
	}
	frame := s.Frame()
	local := tr.Apply(p)
	if !frame.Contains(local.X, local.Y) {
		return nil, Transform{}, false
	}
	flipped := s.IsFlipped()
	tr = childTransform(tr, frame, parentFlipped, flipped)

	for i := s.NumSubsurfaces() - 1; i >= 0; i-- {
		if hit, htr, ok := m.target(s.SubsurfaceAt(i), p, flipped, tr); ok {
			return hit, htr, true
		}
	}
	if _, ok := m.handlers[s.SurfaceID()]; ok {
		return s, tr, true
	}
	return nil, Transform{}, false
}
