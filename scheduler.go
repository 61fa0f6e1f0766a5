package tactile

import "time"

// Task is a handle to a scheduled callback.
type Task interface {
	Stop()
}

// Scheduler runs periodic callbacks on the dispatch goroutine. Recognizers
// use it for momentum ticks and tap thresholds; it never runs callbacks
// concurrently with touch dispatch.
type Scheduler interface {
	Now() time.Time
	// Every calls fn every interval until fn returns false or the task is
	// stopped. The first call happens one interval after scheduling.
	Every(interval time.Duration, fn func() bool) Task
}

// FrameScheduler is a cooperative Scheduler advanced by the host once per
// frame, typically from the game loop's Update. Its clock only moves when
// Update or Advance is called.
type FrameScheduler struct {
	now   time.Time
	tasks []*frameTask
	// running guards against Update being re-entered from a task.
	running bool
}

type frameTask struct {
	interval time.Duration
	next     time.Time
	fn       func() bool
	stopped  bool
}

func (t *frameTask) Stop() { t.stopped = true }

// NewFrameScheduler creates a scheduler whose clock starts at start.
func NewFrameScheduler(start time.Time) *FrameScheduler {
	return &FrameScheduler{now: start}
}

// Now returns the scheduler's current time.
func (s *FrameScheduler) Now() time.Time {
	return s.now
}

// Every implements Scheduler.
func (s *FrameScheduler) Every(interval time.Duration, fn func() bool) Task {
	if interval <= 0 {
		interval = time.Second / RefreshRate
	}
	t := &frameTask{interval: interval, next: s.now.Add(interval), fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Pending returns the number of live tasks.
func (s *FrameScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d and runs due tasks.
func (s *FrameScheduler) Advance(d time.Duration) {
	s.Update(s.now.Add(d))
}

// Update moves the clock to now and runs every task that came due, once per
// elapsed interval, in scheduling order. A clock that goes backwards is
// ignored.
func (s *FrameScheduler) Update(now time.Time) {
	if s.running {
		return
	}
	if now.After(s.now) {
		s.now = now
	}
	s.running = true
	defer func() { s.running = false }()

	// Tasks scheduled by callbacks land at the end of s.tasks and are
	// picked up by the index loop if already due.
	for i := 0; i < len(s.tasks); i++ {
		t := s.tasks[i]
		for !t.stopped && !t.next.After(s.now) {
			t.next = t.next.Add(t.interval)
			if !t.fn() {
				t.stopped = true
			}
		}
	}

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}
