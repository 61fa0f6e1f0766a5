// Package ebiteninput turns ebiten's mouse and touch input into
// [tactile.Touch] events.
//
// A [Driver] is meant to be called once per ebiten Update. Each call drains
// the network touch queue, polls local input, and advances the manager's
// scheduler, all on the game goroutine.
package ebiteninput

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/tactile"
)

// MouseID is the touch id reported for the left mouse button.
const MouseID int32 = -1

// Contact is one pressed pointer in a poll.
type Contact struct {
	ID       int32
	Position tactile.Vec2
}

// Tracker turns successive polls of pressed pointers into touch events.
type Tracker struct {
	// Screen is stamped on every emitted touch.
	Screen int32

	prev []Contact
}

// Diff compares contacts to the previous poll and calls emit with a moved
// event for each contact that changed position, an up for each contact that
// disappeared (at its last known position), and a down for each new one, in
// that order.
func (tr *Tracker) Diff(contacts []Contact, time float64, emit func(tactile.Touch)) {
	for _, c := range contacts {
		if p, ok := find(tr.prev, c.ID); ok && p.Position != c.Position {
			emit(tactile.NewTouch(c.ID, tr.Screen, tactile.TouchMoved, c.Position, time))
		}
	}
	for _, p := range tr.prev {
		if _, ok := find(contacts, p.ID); !ok {
			emit(tactile.NewTouch(p.ID, tr.Screen, tactile.TouchUp, p.Position, time))
		}
	}
	for _, c := range contacts {
		if _, ok := find(tr.prev, c.ID); !ok {
			emit(tactile.NewTouch(c.ID, tr.Screen, tactile.TouchDown, c.Position, time))
		}
	}
	tr.prev = append(tr.prev[:0], contacts...)
}

// Release emits an up for every pressed contact and forgets them.
func (tr *Tracker) Release(time float64, emit func(tactile.Touch)) {
	tr.Diff(nil, time, emit)
}

// Active returns the number of contacts seen in the last poll.
func (tr *Tracker) Active() int { return len(tr.prev) }

func find(contacts []Contact, id int32) (Contact, bool) {
	for _, c := range contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

// Driver feeds a Manager from ebiten input and an optional network queue.
type Driver struct {
	manager *tactile.Manager
	queue   *tactile.TouchQueue
	tracker Tracker
	start   time.Time

	// Mouse enables the left mouse button as touch MouseID.
	Mouse bool
	// Touch enables touchscreen input.
	Touch bool
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time

	contacts []Contact
	ids      []ebiten.TouchID
}

// New creates a driver for m. queue may be nil when there is no network
// input. Mouse and touch input are both enabled.
func New(m *tactile.Manager, queue *tactile.TouchQueue) *Driver {
	if m == nil {
		panic("tactile/ebiteninput: nil manager")
	}
	return &Driver{
		manager: m,
		queue:   queue,
		Mouse:   true,
		Touch:   true,
		Now:     time.Now,
	}
}

// SetScreen sets the screen number stamped on local touches.
func (d *Driver) SetScreen(screen int32) { d.tracker.Screen = screen }

// Tracker returns the driver's local input tracker.
func (d *Driver) Tracker() *Tracker { return &d.tracker }

// Update polls ebiten input and dispatches. Call it from Game.Update.
func (d *Driver) Update() error {
	d.Step(d.poll())
	return nil
}

// Step runs one frame with the given local contacts: queued network
// touches first, then local input, then due scheduler tasks.
func (d *Driver) Step(contacts []Contact) {
	now := d.Now()
	if d.start.IsZero() {
		d.start = now
	}
	if d.queue != nil {
		d.queue.DrainInto(d.manager)
	}
	d.tracker.Diff(contacts, now.Sub(d.start).Seconds(), d.manager.Handle)
	if fs, ok := d.manager.Scheduler().(*tactile.FrameScheduler); ok {
		fs.Update(now)
	}
}

// Close releases every local contact, e.g. when the window loses focus.
func (d *Driver) Close() {
	d.tracker.Release(d.Now().Sub(d.start).Seconds(), d.manager.Handle)
}

func (d *Driver) poll() []Contact {
	d.contacts = d.contacts[:0]
	if d.Mouse && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		d.contacts = append(d.contacts, Contact{ID: MouseID, Position: tactile.Vec2{X: float64(x), Y: float64(y)}})
	}
	if d.Touch {
		d.ids = ebiten.AppendTouchIDs(d.ids[:0])
		for _, id := range d.ids {
			x, y := ebiten.TouchPosition(id)
			d.contacts = append(d.contacts, Contact{ID: int32(id), Position: tactile.Vec2{X: float64(x), Y: float64(y)}})
		}
	}
	return d.contacts
}
