// Package delivery types a staged text into a captured window.
package delivery

import (
	"sync"
	"sync/atomic"
	"time"
)

// Control carries the live state of one run. The automaton writes cursor and
// state; any goroutine may pause, resume or request a stop. Signals are
// observed at the next poll point.
type Control struct {
	paused   atomic.Bool
	stopped  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	cursor   atomic.Int64
	state    atomic.Int32
}

// NewControl returns a control for a fresh run.
func NewControl() *Control {
	return &Control{stopCh: make(chan struct{})}
}

// Pause suspends typing before the next character.
func (c *Control) Pause() {
	c.paused.Store(true)
}

// Resume continues typing from the same cursor.
func (c *Control) Resume() {
	c.paused.Store(false)
}

// TogglePause flips the paused flag and returns the new value.
func (c *Control) TogglePause() bool {
	for {
		old := c.paused.Load()
		if c.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// RequestStop asks the run to end. Safe to call more than once.
func (c *Control) RequestStop() {
	c.stopOnce.Do(func() {
		c.stopped.Store(true)
		close(c.stopCh)
	})
}

// Paused reports whether a pause is in effect.
func (c *Control) Paused() bool {
	return c.paused.Load()
}

// StopRequested reports whether a stop was requested.
func (c *Control) StopRequested() bool {
	return c.stopped.Load()
}

// Cursor returns how many characters have been consumed.
func (c *Control) Cursor() int {
	return int(c.cursor.Load())
}

// State returns the automaton state.
func (c *Control) State() State {
	return State(c.state.Load())
}

func (c *Control) setState(s State) {
	c.state.Store(int32(s))
}

func (c *Control) advance() int {
	return int(c.cursor.Add(1))
}

// wait sleeps for d or until a stop is requested. It returns false on stop.
func (c *Control) wait(d time.Duration) bool {
	if d <= 0 {
		return !c.StopRequested()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-c.stopCh:
		return false
	case <-t.C:
		return true
	}
}
