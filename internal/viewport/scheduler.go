package viewport

import (
	"sync"
	"time"
)

// Scheduler is a single-slot delayed-action scheduler. Schedule cancels
// any pending action before arming the new one, so at most one timer is
// live at a time and rapid rescheduling only fires the last action.
type Scheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule arms fn to run after delay, replacing any pending action.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, fn)
}

// Cancel drops the pending action, if any. An action already started
// by the timer goroutine is not interrupted.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
