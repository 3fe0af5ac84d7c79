// Package app wires capture, session state and the delivery engine together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/frudas24/overtype/internal/delivery"
	"github.com/frudas24/overtype/internal/engine"
	"github.com/frudas24/overtype/internal/session"
	"github.com/frudas24/overtype/internal/target"
	"github.com/frudas24/overtype/internal/window"
)

// Operator-facing status lines.
const (
	StatusNoActiveWindow = "No active window to capture."
	StatusCapturedUIA    = "Captured target, accessibility available for background writing."
	StatusCapturedPlain  = "Captured target, but accessibility editable control not found, background write unavailable."
	StatusAlreadyRunning = "Worker already running."
	StatusNoText         = "No text to write."
	StatusNoTarget       = "No target captured."
	StatusStarted        = "Write worker started."
	StatusNotTyping      = "Not typing now."
	StatusStopping       = "Stopping worker..."
	StatusNothingToStop  = "Nothing to stop."
)

// StatusFunc receives every status line shown to the operator.
type StatusFunc func(string)

// App coordinates target capture and delivery runs.
type App struct {
	mu       sync.Mutex
	session  *session.Session
	tracker  window.Tracker
	prober   *target.Prober
	engine   *engine.Controller
	run      engine.RunHandle
	status   StatusFunc
	progress atomic.Int32
	outcome  chan delivery.Outcome
}

// New creates a new application with its dependencies wired.
func New(sess *session.Session, tracker window.Tracker, prober *target.Prober, runner engine.Runner, stopWait time.Duration, status StatusFunc) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if tracker == nil {
		return nil, errors.New("window tracker is required")
	}
	if prober == nil {
		return nil, errors.New("prober is required")
	}
	if status == nil {
		status = func(s string) { log.Printf("status: %s", s) }
	}

	a := &App{
		session: sess,
		tracker: tracker,
		prober:  prober,
		status:  status,
		outcome: make(chan delivery.Outcome, 1),
	}
	ctrl, err := engine.New(runner, a.handleEvent, stopWait)
	if err != nil {
		return nil, err
	}
	a.engine = ctrl
	return a, nil
}

// Session returns the operator session.
func (a *App) Session() *session.Session {
	return a.session
}

// Capture records the current foreground window as the delivery target.
func (a *App) Capture() (target.Descriptor, error) {
	h, err := a.tracker.Foreground()
	if err != nil || h.IsZero() {
		a.status(StatusNoActiveWindow)
		if err == nil {
			err = errors.New("no active window")
		}
		return target.Descriptor{}, fmt.Errorf("capture: %w", err)
	}

	d := a.prober.Probe(h)
	a.session.SetTarget(d)
	if d.AccessibilitySupported {
		a.status(StatusCapturedUIA)
	} else {
		a.status(StatusCapturedPlain)
	}
	a.status("Target: " + d.Label())
	return d, nil
}

// Start begins delivering the staged text to the captured target.
func (a *App) Start() error {
	if _, active := a.engine.Active(); active {
		a.status(StatusAlreadyRunning)
		return engine.ErrRunActive
	}
	snap := a.session.Snapshot()
	if snap.Text == "" {
		a.status(StatusNoText)
		return delivery.ErrNoText
	}
	if snap.Target == nil || snap.Target.Handle.IsZero() {
		a.status(StatusNoTarget)
		return delivery.ErrNoTarget
	}

	a.progress.Store(0)
	a.mu.Lock()
	h, err := a.engine.Start(snap.Text, snap.Target, snap.Params)
	if err != nil {
		a.mu.Unlock()
		a.status(fmt.Sprintf("Start failed: %v", err))
		return err
	}
	a.run = h
	a.mu.Unlock()
	a.status(StatusStarted)
	go a.watch(h)
	return nil
}

// watch publishes the run outcome once it returns.
func (a *App) watch(h engine.RunHandle) {
	out, err := a.engine.Wait(context.Background(), h)
	if err != nil {
		return
	}
	select {
	case <-a.outcome:
	default:
	}
	select {
	case a.outcome <- out:
	default:
	}
}

// TogglePause pauses a running delivery or resumes a paused one.
func (a *App) TogglePause() {
	if _, err := a.engine.TogglePause(a.current()); err != nil {
		a.status(StatusNotTyping)
	}
}

// Stop requests the active run to end.
func (a *App) Stop() {
	if err := a.engine.Stop(a.current()); err != nil {
		a.status(StatusNothingToStop)
		return
	}
	a.status(StatusStopping)
}

// current returns the handle of the last started run. The engine rejects it
// once that run has ended.
func (a *App) current() engine.RunHandle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.run
}

// Progress returns the last reported completion percentage.
func (a *App) Progress() int {
	return int(a.progress.Load())
}

// Outcomes delivers the outcome of each run that started.
func (a *App) Outcomes() <-chan delivery.Outcome {
	return a.outcome
}

// Shutdown stops any active run and waits a bounded time for it.
func (a *App) Shutdown() error {
	return a.engine.Close()
}

// handleEvent relays engine events to the operator.
func (a *App) handleEvent(ev delivery.Event) {
	if ev.Kind == delivery.EventProgress {
		a.progress.Store(int32(ev.Percent))
		return
	}
	a.status(ev.Status)
}
