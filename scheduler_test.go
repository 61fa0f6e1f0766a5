package tactile

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFrameSchedulerRunsOncePerInterval(t *testing.T) {
	s := NewFrameScheduler(epoch)
	calls := 0
	s.Every(10*time.Millisecond, func() bool { calls++; return true })

	s.Advance(5 * time.Millisecond)
	if calls != 0 {
		t.Errorf("calls after 5ms = %d, want 0", calls)
	}
	s.Advance(5 * time.Millisecond)
	if calls != 1 {
		t.Errorf("calls after 10ms = %d, want 1", calls)
	}
	s.Advance(35 * time.Millisecond)
	if calls != 4 {
		t.Errorf("calls after 45ms = %d, want 4", calls)
	}
}

func TestFrameSchedulerStopsWhenCallbackReturnsFalse(t *testing.T) {
	s := NewFrameScheduler(epoch)
	calls := 0
	s.Every(time.Millisecond, func() bool { calls++; return calls < 3 })
	s.Advance(10 * time.Millisecond)
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestFrameSchedulerTaskStop(t *testing.T) {
	s := NewFrameScheduler(epoch)
	calls := 0
	task := s.Every(time.Millisecond, func() bool { calls++; return true })
	s.Advance(time.Millisecond)
	task.Stop()
	s.Advance(10 * time.Millisecond)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestFrameSchedulerDefaultInterval(t *testing.T) {
	s := NewFrameScheduler(epoch)
	calls := 0
	s.Every(0, func() bool { calls++; return true })
	s.Advance(time.Second)
	if calls != 60 {
		t.Errorf("calls in 1s = %d, want 60", calls)
	}
}

func TestFrameSchedulerClockNeverGoesBack(t *testing.T) {
	s := NewFrameScheduler(epoch)
	s.Update(epoch.Add(time.Second))
	s.Update(epoch)
	if got := s.Now(); !got.Equal(epoch.Add(time.Second)) {
		t.Errorf("Now = %v, want %v", got, epoch.Add(time.Second))
	}
}

func TestFrameSchedulerTaskScheduledFromCallback(t *testing.T) {
	s := NewFrameScheduler(epoch)
	inner := 0
	s.Every(time.Millisecond, func() bool {
		s.Every(time.Millisecond, func() bool { inner++; return false })
		return false
	})
	s.Advance(time.Millisecond)
	if inner != 0 {
		t.Errorf("inner ran in the scheduling frame: %d", inner)
	}
	s.Advance(time.Millisecond)
	if inner != 1 {
		t.Errorf("inner = %d, want 1", inner)
	}
}
