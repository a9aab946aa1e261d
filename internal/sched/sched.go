// Package sched provides cancellable delayed tasks. Components never call
// time.AfterFunc directly so the debounce and auto-dismiss rules can be
// driven by a fake clock in tests.
package sched

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a handle to a scheduled task
type Timer interface {
	// Stop cancels the task. It returns false if the task already ran or was
	// already stopped.
	Stop() bool
}

// Scheduler runs fn once after d
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Loop schedules tasks on wall-clock time and hands them to post when due.
// post is expected to run the task on the UI event loop.
type Loop struct {
	post func(func())
}

// NewLoop creates a wall-clock scheduler
func NewLoop(post func(func())) *Loop {
	if post == nil {
		panic("sched.NewLoop: post function cannot be nil")
	}
	return &Loop{post: post}
}

// AfterFunc schedules fn
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.post(func() {
			// A Stop that lands while the task is queued on the event loop
			// still wins.
			if t.done.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return t
}

type loopTimer struct {
	timer *time.Timer
	done  atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if !t.done.CompareAndSwap(false, true) {
		return false
	}
	t.timer.Stop()
	return true
}

// Manual is a scheduler driven by Advance. The zero value is not usable;
// use NewManual.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTimer
}

// NewManual creates a fake clock starting at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the fake current time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn relative to the fake clock
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{m: m, due: m.now.Add(d), seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Pending returns the number of scheduled tasks that have not run
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Advance moves the clock forward by d and runs every task that became due,
// earliest first. Tasks scheduled by a running task are eligible if they
// fall due within the same advance.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

func (m *Manual) popDue(target time.Time) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, t := range m.tasks {
		if t.due.After(target) {
			continue
		}
		if idx == -1 || t.due.Before(m.tasks[idx].due) ||
			(t.due.Equal(m.tasks[idx].due) && t.seq < m.tasks[idx].seq) {
			idx = i
		}
	}
	if idx == -1 {
		return nil
	}

	t := m.tasks[idx]
	m.tasks = append(m.tasks[:idx], m.tasks[idx+1:]...)
	if t.due.After(m.now) {
		m.now = t.due
	}
	return t
}

func (m *Manual) remove(t *manualTimer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, task := range m.tasks {
		if task == t {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return true
		}
	}
	return false
}

type manualTimer struct {
	m   *Manual
	due time.Time
	seq int
	fn  func()
}

func (t *manualTimer) Stop() bool {
	return t.m.remove(t)
}
