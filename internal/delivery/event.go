// Package delivery types a staged text into a captured window.
package delivery

import (
	"errors"
	"fmt"
)

// Status texts emitted by a run.
const (
	StatusNoText            = "No text provided."
	StatusNoTarget          = "No target captured."
	StatusAccessibilityTry  = "Target supports UI Automation, attempting background set."
	StatusAccessibilityFail = "UI Automation write attempts failed."
	StatusFallback          = "Falling back to foreground typing. Target must be focused for this to work."
	StatusFocusLost         = "Paused, target not focused. Focus target to resume."
	StatusFocusBack         = "Target focused, resuming foreground typing."
	StatusPaused            = "Paused."
	StatusResumed           = "Resumed."
	StatusFinished          = "Typing finished."
	StatusStopped           = "Stopped by user."
)

var (
	// ErrNoText indicates an empty payload.
	ErrNoText = errors.New("no text provided")

	// ErrNoTarget indicates a missing or empty target descriptor.
	ErrNoTarget = errors.New("no target captured")
)

// EventKind distinguishes status lines from progress updates.
type EventKind int

const (
	// EventStatus carries a human-readable status line.
	EventStatus EventKind = iota
	// EventProgress carries a completion percentage.
	EventProgress
)

// Event is emitted by a run, in order, on the run's goroutine.
type Event struct {
	Kind    EventKind
	Status  string
	Percent int
	// Final marks the last event of a run.
	Final bool
}

// String formats the event for logs.
func (e Event) String() string {
	if e.Kind == EventProgress {
		return fmt.Sprintf("progress %d%%", e.Percent)
	}
	if e.Final {
		return "final: " + e.Status
	}
	return "status: " + e.Status
}

func statusEvent(text string) Event {
	return Event{Kind: EventStatus, Status: text}
}

func finalEvent(text string) Event {
	return Event{Kind: EventStatus, Status: text, Final: true}
}

func progressEvent(pct int) Event {
	return Event{Kind: EventProgress, Percent: pct}
}

// Outcome is how a run ended.
type Outcome int

const (
	// OutcomeRejected means the run never started.
	OutcomeRejected Outcome = iota
	// OutcomeFinished means all text was delivered.
	OutcomeFinished
	// OutcomeStopped means a stop request ended the run.
	OutcomeStopped
	// OutcomeFailed means input synthesis failed.
	OutcomeFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeFinished:
		return "finished"
	case OutcomeStopped:
		return "stopped"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// State is the automaton's position in its state machine.
type State int32

// Automaton states. Paused is a flag on Control, not a state.
const (
	StateInit State = iota
	StateAccessibilityAttempt
	StateForegroundTyping
	StateWaitingForFocus
	StateFinished
	StateStopped
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAccessibilityAttempt:
		return "accessibility_attempt"
	case StateForegroundTyping:
		return "foreground_typing"
	case StateWaitingForFocus:
		return "waiting_for_focus"
	case StateFinished:
		return "finished"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == StateFinished || s == StateStopped || s == StateFailed
}
