package tactile

import (
	"errors"
	"sync/atomic"
)

// ErrQueueFull is returned by TouchQueue.Push when the queue is at capacity.
// The touch is dropped.
var ErrQueueFull = errors.New("tactile: touch queue full")

// TouchQueue hands touches from producer goroutines (network relays, input
// drivers) to the single goroutine that owns a Manager. Push is safe for
// concurrent use; Drain must only be called from the dispatch goroutine.
type TouchQueue struct {
	ch      chan Touch
	dropped atomic.Uint64
}

// NewTouchQueue creates a queue holding at most size touches. A size of zero
// or less uses the default of 1024.
func NewTouchQueue(size int) *TouchQueue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &TouchQueue{ch: make(chan Touch, size)}
}

// Push enqueues t without blocking.
func (q *TouchQueue) Push(t Touch) error {
	select {
	case q.ch <- t:
		return nil
	default:
		q.dropped.Add(1)
		return ErrQueueFull
	}
}

// Drain passes every queued touch to fn in arrival order and returns how many
// were delivered. Touches pushed while draining are left for the next call.
func (q *TouchQueue) Drain(fn func(Touch)) int {
	n := len(q.ch)
	for i := 0; i < n; i++ {
		fn(<-q.ch)
	}
	return n
}

// DrainInto delivers every queued touch to m.
func (q *TouchQueue) DrainInto(m *Manager) int {
	return q.Drain(m.Handle)
}

// Len returns the number of queued touches.
func (q *TouchQueue) Len() int { return len(q.ch) }

// Cap returns the queue capacity.
func (q *TouchQueue) Cap() int { return cap(q.ch) }

// Dropped returns the number of touches rejected because the queue was full.
func (q *TouchQueue) Dropped() uint64 { return q.dropped.Load() }
