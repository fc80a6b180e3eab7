package sim

import (
	"sort"
	"sync"
	"time"
)

// Cancel stops a scheduled callback. It reports whether the callback was
// still pending; false means it already ran or was cancelled before.
type Cancel func() bool

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Cancel
}

// TimerScheduler schedules callbacks on wall-clock timers. Callbacks run on
// their own goroutine.
type TimerScheduler struct{}

// AfterFunc wraps time.AfterFunc.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) Cancel {
	return time.AfterFunc(d, f).Stop
}

// ManualScheduler is a Scheduler driven by a virtual clock. Nothing runs
// until Advance is called; due callbacks then run on the caller's goroutine.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	due time.Duration
	seq int
	f   func()
}

// NewManualScheduler returns a ManualScheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc queues f to run once the virtual clock has advanced by d.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &manualTask{due: s.now + d, seq: s.seq, f: f}
	s.seq++
	s.tasks = append(s.tasks, t)

	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, queued := range s.tasks {
			if queued == t {
				s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
				return true
			}
		}
		return false
	}
}

// Advance moves the virtual clock forward by d, running every callback that
// falls due in order, including callbacks scheduled by those callbacks.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		t := s.popDue(target)
		if t == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = t.due
		s.mu.Unlock()

		t.f()
	}
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) popDue(target time.Duration) *manualTask {
	if len(s.tasks) == 0 {
		return nil
	}
	sort.Slice(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	t := s.tasks[0]
	if t.due > target {
		return nil
	}
	s.tasks = s.tasks[1:]
	return t
}
