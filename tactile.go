package tactile

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector used for positions, offsets, and deltas throughout the
// API.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Rect is an axis-aligned rectangle. X and Y are the origin, expressed in the
// coordinate space of whatever contains the rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Origin returns the rectangle's origin.
func (r Rect) Origin() Vec2 { return Vec2{r.X, r.Y} }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// GestureKind discriminates recognizer families. Recognizers of the same kind
// registered on one surface invalidate each other on recognition.
type GestureKind uint8

const (
	KindTap     GestureKind = iota // single and double taps
	KindLongTap                    // press/release reporting
	KindPan                        // one or more fingers dragging
	KindPinch                      // two or more fingers scaling/rotating
)

func (k GestureKind) String() string {
	switch k {
	case KindTap:
		return "tap"
	case KindLongTap:
		return "longtap"
	case KindPan:
		return "pan"
	case KindPinch:
		return "pinch"
	}
	return fmt.Sprintf("GestureKind(%d)", uint8(k))
}

// GestureState is the state of a recognizer's state machine.
type GestureState uint8

const (
	StatePossible     GestureState = iota // idle, no touches tracked
	StateBegan                            // first qualifying touch received
	StateRecognized                       // criteria met, updates flowing
	StateEnded                            // touch cycle finished
	StateMomentum                         // synthetic post-release continuation (pan, pinch)
	StateFailed                           // invalidated until the next reset
	StateDoubleTapped                     // second tap close in time and space (tap)
)

func (s GestureState) String() string {
	switch s {
	case StatePossible:
		return "possible"
	case StateBegan:
		return "began"
	case StateRecognized:
		return "recognized"
	case StateEnded:
		return "ended"
	case StateMomentum:
		return "momentum"
	case StateFailed:
		return "failed"
	case StateDoubleTapped:
		return "doubleTapped"
	}
	return fmt.Sprintf("GestureState(%d)", uint8(s))
}

// SurfaceID is a stable opaque handle issued by whatever owns a surface. The
// manager keys its handlers by it.
type SurfaceID uint32

// Surface is the minimal capability set the hit-tester needs from a
// renderable node. Native view trees, scene graphs, and test fixtures can all
// satisfy it; [Node] is the implementation shipped with this package.
type Surface interface {
	SurfaceID() SurfaceID
	// Frame is the surface's rectangle in its parent's local coordinates.
	Frame() Rect
	// IsFlipped reports whether the surface's local y axis points down.
	IsFlipped() bool
	IsHidden() bool
	// NumSubsurfaces and SubsurfaceAt expose children back-to-front: the
	// last child is drawn on top.
	NumSubsurfaces() int
	SubsurfaceAt(i int) Surface
}

// GestureEvent is the kind-independent snapshot of a recognizer update. It is
// delivered to [Manager.OnGesture] listeners and to an attached [EventStore].
type GestureEvent struct {
	Kind    GestureKind
	State   GestureState
	Surface SurfaceID

	// Position is the tap/long-tap position or the pan/pinch center of
	// gravity, in the surface's local coordinates.
	Position Vec2

	// Pan fields
	Delta Vec2

	// Pinch fields
	Scale    float64
	Rotation float64

	// Touch is set for per-touch tap and long-tap updates.
	Touch    TouchKey
	HasTouch bool
}

// EventStore is the interface for optional ECS integration. When set on a
// Manager, every gesture update is forwarded to it.
type EventStore interface {
	EmitEvent(event GestureEvent)
}
