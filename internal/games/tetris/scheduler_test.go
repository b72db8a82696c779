package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsInDueOrder(t *testing.T) {
	var s Scheduler
	var order []string
	s.Schedule("", 30*time.Millisecond, func() { order = append(order, "c") })
	s.Schedule("", 10*time.Millisecond, func() { order = append(order, "a") })
	s.Schedule("", 10*time.Millisecond, func() { order = append(order, "b") })

	s.Advance(5 * time.Millisecond)
	assert.Empty(t, order)
	assert.Equal(t, 3, s.Pending())

	s.Advance(25 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 30*time.Millisecond, s.Now())
}

func TestSchedulerKeyReplacesPending(t *testing.T) {
	var s Scheduler
	fired := 0
	s.Schedule("flag", 100*time.Millisecond, func() { fired++ })
	s.Advance(60 * time.Millisecond)
	s.Schedule("flag", 100*time.Millisecond, func() { fired += 10 })
	assert.Equal(t, 1, s.Pending())

	s.Advance(60 * time.Millisecond)
	assert.Equal(t, 0, fired, "restarted timer is not due yet")
	s.Advance(40 * time.Millisecond)
	assert.Equal(t, 10, fired)
}

func TestSchedulerCancel(t *testing.T) {
	var s Scheduler
	fired := false
	id := s.Schedule("", time.Millisecond, func() { fired = true })
	s.Schedule("keep", time.Millisecond, func() {})
	s.Schedule("drop", time.Millisecond, func() { fired = true })

	s.Cancel(id)
	s.CancelKey("drop")
	assert.True(t, s.Has("keep"))
	assert.False(t, s.Has("drop"))

	s.Advance(time.Millisecond)
	assert.False(t, fired)

	s.Schedule("x", time.Second, func() { fired = true })
	s.CancelAll()
	s.Advance(time.Hour)
	assert.False(t, fired)
}

func TestSchedulerChainedTasks(t *testing.T) {
	var s Scheduler
	count := 0
	var again func()
	again = func() {
		count++
		if count < 3 {
			s.Schedule("", 10*time.Millisecond, again)
		}
	}
	s.Schedule("", 10*time.Millisecond, again)

	s.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, count)
	s.Advance(20 * time.Millisecond)
	assert.Equal(t, 2, count, "rescheduled task is due relative to the advanced clock")
	s.Advance(10 * time.Millisecond)
	assert.Equal(t, 3, count)
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerZeroDelayRunsOnNextAdvance(t *testing.T) {
	var s Scheduler
	fired := false
	s.Schedule("", 0, func() { fired = true })
	assert.False(t, fired)
	s.Advance(0)
	assert.True(t, fired)
}
