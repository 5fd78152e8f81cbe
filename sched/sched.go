// Package sched provides a single-threaded simulation-time scheduler.
//
// All periodic game work (physics ticks, spawn bursts, session timers) runs
// as tasks fired from Advance, which the frame loop calls once per update.
// There are no goroutines; callbacks always run on the caller's goroutine,
// in registration order, so tasks sharing state never race.
package sched

// Task is a cancellation handle for scheduled work.
type Task struct {
	fn        func()
	interval  float64 // 0 for one-shot tasks
	due       float64
	cancelled bool
	done      bool
}

// Cancel prevents any further firing of the task.
// Cancelling during a callback takes effect immediately.
func (t *Task) Cancel() {
	t.cancelled = true
}

// Sched fires registered tasks as simulation time advances.
type Sched struct {
	now   float64
	tasks []*Task
}

// New creates an empty scheduler at time zero.
func New() *Sched {
	return &Sched{}
}

// Now returns the scheduler's current simulation time in seconds.
func (s *Sched) Now() float64 {
	return s.now
}

// Repeating schedules fn every interval seconds, first firing one interval
// from now. A task that falls behind fires once and re-arms from the current
// time: missed occurrences are skipped, not queued.
func (s *Sched) Repeating(interval float64, fn func()) *Task {
	t := &Task{fn: fn, interval: interval, due: s.now + interval}
	s.tasks = append(s.tasks, t)
	return t
}

// Once schedules fn a single time, delay seconds from now.
func (s *Sched) Once(delay float64, fn func()) *Task {
	t := &Task{fn: fn, due: s.now + delay}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves simulation time forward and fires all due tasks in
// registration order. Tasks scheduled by a callback are eligible starting
// with the next Advance.
func (s *Sched) Advance(dt float64) {
	s.now += dt

	// Snapshot length so callbacks appending new tasks don't run this pass.
	n := len(s.tasks)
	for i := 0; i < n; i++ {
		t := s.tasks[i]
		if t.cancelled || t.done || t.due > s.now {
			continue
		}
		if t.interval > 0 {
			t.due = s.now + t.interval
		} else {
			t.done = true
		}
		t.fn()
	}

	s.compact()
}

// CancelAll cancels every pending task.
func (s *Sched) CancelAll() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = s.tasks[:0]
}

// compact drops finished and cancelled tasks while preserving order.
func (s *Sched) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled && !t.done {
			live = append(live, t)
		}
	}
	s.tasks = live
}
