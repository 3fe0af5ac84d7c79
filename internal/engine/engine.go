// Package engine runs at most one delivery at a time and relays its events.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pion/logging"

	"github.com/frudas24/overtype/internal/delivery"
	"github.com/frudas24/overtype/internal/diag"
	"github.com/frudas24/overtype/internal/target"
)

// DefaultStopWait bounds how long Close waits for a run to acknowledge a stop.
const DefaultStopWait = 500 * time.Millisecond

var (
	// ErrRunActive indicates a run is already in progress.
	ErrRunActive = errors.New("a delivery run is already active")

	// ErrUnknownRun indicates the handle does not name the active run.
	ErrUnknownRun = errors.New("unknown or finished run")

	// ErrStopTimeout indicates the run did not stop within the wait bound.
	ErrStopTimeout = errors.New("run did not acknowledge stop in time")

	// ErrClosed indicates the controller was closed.
	ErrClosed = errors.New("controller closed")
)

// Runner executes a single delivery run. *delivery.Automaton implements it.
type Runner interface {
	Run(text string, tgt *target.Descriptor, params delivery.Params, ctl *delivery.Control, emit delivery.Emitter) delivery.Outcome
}

// Sink receives events on the run goroutine in emission order.
type Sink func(delivery.Event)

// RunHandle names a started run.
type RunHandle struct {
	ID uuid.UUID
}

// String returns the run id.
func (h RunHandle) String() string {
	return h.ID.String()
}

// IsZero reports whether the handle names no run.
func (h RunHandle) IsZero() bool {
	return h.ID == uuid.Nil
}

type run struct {
	handle  RunHandle
	ctl     *delivery.Control
	done    chan struct{}
	outcome delivery.Outcome
}

// Controller owns the active run.
type Controller struct {
	mu       sync.Mutex
	runner   Runner
	sink     Sink
	stopWait time.Duration
	active   *run
	last     *run
	closed   bool
	log      logging.LeveledLogger
}

// New returns a controller relaying events to sink. stopWait <= 0 uses DefaultStopWait.
func New(runner Runner, sink Sink, stopWait time.Duration) (*Controller, error) {
	if runner == nil {
		return nil, errors.New("runner is required")
	}
	if sink == nil {
		sink = func(delivery.Event) {}
	}
	if stopWait <= 0 {
		stopWait = DefaultStopWait
	}
	return &Controller{runner: runner, sink: sink, stopWait: stopWait, log: diag.Logger("engine")}, nil
}

// Start launches a run on its own goroutine. Invalid input is reported to the
// sink as a final event and returned as an error; no run is created.
func (c *Controller) Start(text string, tgt *target.Descriptor, params delivery.Params) (RunHandle, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return RunHandle{}, ErrClosed
	}
	if c.active != nil {
		c.mu.Unlock()
		return RunHandle{}, ErrRunActive
	}
	if ev, err := delivery.Validate(text, tgt); err != nil {
		c.mu.Unlock()
		c.sink(ev)
		return RunHandle{}, err
	}
	if err := params.Validate(); err != nil {
		c.mu.Unlock()
		c.sink(delivery.Event{Kind: delivery.EventStatus, Status: "Invalid parameters: " + err.Error(), Final: true})
		return RunHandle{}, fmt.Errorf("invalid parameters: %w", err)
	}

	r := &run{
		handle: RunHandle{ID: uuid.New()},
		ctl:    delivery.NewControl(),
		done:   make(chan struct{}),
	}
	c.active = r
	c.last = r
	c.mu.Unlock()

	c.log.Debugf("run %s: %d chars to %s", r.handle, len([]rune(text)), tgt.Handle)
	go c.execute(r, text, tgt, params)
	return r.handle, nil
}

// execute runs r and releases it once the run emits its final event.
func (c *Controller) execute(r *run, text string, tgt *target.Descriptor, params delivery.Params) {
	emit := func(ev delivery.Event) {
		if ev.Final {
			c.release(r)
		}
		c.sink(ev)
	}
	outcome := c.runner.Run(text, tgt, params, r.ctl, emit)
	c.release(r)

	c.mu.Lock()
	r.outcome = outcome
	c.mu.Unlock()
	if st := r.ctl.State(); !st.Terminal() {
		c.log.Warnf("run %s: returned %s in state %s", r.handle, outcome, st)
	} else {
		c.log.Debugf("run %s: %s", r.handle, outcome)
	}
	close(r.done)
}

// release clears r as the active run.
func (c *Controller) release(r *run) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == r {
		c.active = nil
	}
}

// lookup returns the active run named by h.
func (c *Controller) lookup(h RunHandle) (*run, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil || c.active.handle != h {
		return nil, ErrUnknownRun
	}
	return c.active, nil
}

// Pause suspends the run before its next character.
func (c *Controller) Pause(h RunHandle) error {
	r, err := c.lookup(h)
	if err != nil {
		return err
	}
	r.ctl.Pause()
	return nil
}

// Resume continues a paused run.
func (c *Controller) Resume(h RunHandle) error {
	r, err := c.lookup(h)
	if err != nil {
		return err
	}
	r.ctl.Resume()
	return nil
}

// TogglePause flips the paused flag and reports whether the run is now paused.
func (c *Controller) TogglePause(h RunHandle) (bool, error) {
	r, err := c.lookup(h)
	if err != nil {
		return false, err
	}
	return r.ctl.TogglePause(), nil
}

// Stop requests the run to end at its next poll point.
func (c *Controller) Stop(h RunHandle) error {
	r, err := c.lookup(h)
	if err != nil {
		return err
	}
	r.ctl.RequestStop()
	return nil
}

// Active returns the handle of the active run, if any.
func (c *Controller) Active() (RunHandle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return RunHandle{}, false
	}
	return c.active.handle, true
}

// Progress returns the cursor and state of the active run.
func (c *Controller) Progress(h RunHandle) (int, delivery.State, error) {
	r, err := c.lookup(h)
	if err != nil {
		return 0, delivery.StateInit, err
	}
	return r.ctl.Cursor(), r.ctl.State(), nil
}

// Done returns a channel closed once the run named by h has returned.
func (c *Controller) Done(h RunHandle) (<-chan struct{}, error) {
	r, err := c.find(h)
	if err != nil {
		return nil, err
	}
	return r.done, nil
}

// find returns the active or most recent run named by h.
func (c *Controller) find(h RunHandle) (*run, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.active != nil && c.active.handle == h:
		return c.active, nil
	case c.last != nil && c.last.handle == h:
		return c.last, nil
	}
	return nil, ErrUnknownRun
}

// Wait blocks until the run named by h has returned or ctx is done.
func (c *Controller) Wait(ctx context.Context, h RunHandle) (delivery.Outcome, error) {
	r, err := c.find(h)
	if err != nil {
		return delivery.OutcomeRejected, err
	}

	select {
	case <-r.done:
		c.mu.Lock()
		defer c.mu.Unlock()
		return r.outcome, nil
	case <-ctx.Done():
		return delivery.OutcomeRejected, ctx.Err()
	}
}

// Close stops the active run and waits a bounded time for it to end.
// Later Starts fail with ErrClosed.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.closed = true
	var r *run
	switch {
	case c.active != nil:
		r = c.active
	case c.last != nil:
		r = c.last
	}
	c.mu.Unlock()
	if r == nil {
		return nil
	}

	r.ctl.RequestStop()
	select {
	case <-r.done:
		return nil
	case <-time.After(c.stopWait):
		return ErrStopTimeout
	}
}
