package tetris

import (
	"sort"
	"time"
)

// task is a deferred callback due at a point on the session clock.
type task struct {
	id  uint64
	key string
	due time.Duration
	fn  func()
}

// Scheduler runs deferred callbacks against a manually advanced clock.
// Nothing runs on its own goroutine; callbacks fire inside Advance.
type Scheduler struct {
	now    time.Duration
	nextID uint64
	tasks  []task
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Schedule runs fn after d. A non-empty key replaces any pending task with
// the same key, so flag resets restart their timer instead of stacking.
func (s *Scheduler) Schedule(key string, d time.Duration, fn func()) uint64 {
	if key != "" {
		s.CancelKey(key)
	}
	s.nextID++
	s.tasks = append(s.tasks, task{id: s.nextID, key: key, due: s.now + d, fn: fn})
	return s.nextID
}

// Cancel drops a pending task by id.
func (s *Scheduler) Cancel(id uint64) {
	s.remove(func(t task) bool { return t.id == id })
}

// CancelKey drops pending tasks scheduled under key.
func (s *Scheduler) CancelKey(key string) {
	s.remove(func(t task) bool { return t.key == key })
}

// CancelAll drops every pending task.
func (s *Scheduler) CancelAll() {
	s.tasks = nil
}

// Pending returns the number of tasks not yet run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Has reports whether a task with key is pending.
func (s *Scheduler) Has(key string) bool {
	for _, t := range s.tasks {
		if t.key == key {
			return true
		}
	}
	return false
}

// Advance moves the clock forward by dt and runs every task that came due,
// earliest first. Tasks scheduled by a callback run in the same call if
// they are already due.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	for {
		t, ok := s.popDue()
		if !ok {
			return
		}
		t.fn()
	}
}

// popDue removes and returns the earliest due task.
func (s *Scheduler) popDue() (task, bool) {
	if len(s.tasks) == 0 {
		return task{}, false
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].id < s.tasks[j].id
	})
	if s.tasks[0].due > s.now {
		return task{}, false
	}
	t := s.tasks[0]
	s.tasks = s.tasks[1:]
	return t, true
}

func (s *Scheduler) remove(match func(task) bool) {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !match(t) {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}
