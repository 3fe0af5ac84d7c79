// Package delivery types a staged text into a captured window.
package delivery

import (
	"errors"
	"fmt"
	"time"

	"github.com/pion/logging"
	"github.com/pion/randutil"

	"github.com/frudas24/overtype/internal/diag"
	"github.com/frudas24/overtype/internal/target"
	"github.com/frudas24/overtype/internal/uia"
	"github.com/frudas24/overtype/internal/window"
	"github.com/frudas24/overtype/internal/wininput"
)

const (
	defaultPausePoll = 50 * time.Millisecond
	defaultFocusPoll = 120 * time.Millisecond
	defaultSettle    = 20 * time.Millisecond
)

// Rand is the randomness used for typo injection.
type Rand interface {
	Intn(n int) int
}

// Options tunes polling and typo timing. Zero values use defaults.
type Options struct {
	PausePoll time.Duration
	FocusPoll time.Duration
	Settle    time.Duration
	Rand      Rand
}

// Emitter receives run events in order.
type Emitter func(Event)

// Automaton executes runs against injected input and focus collaborators.
type Automaton struct {
	input wininput.Injector
	focus window.Tracker
	opts  Options
	log   logging.LeveledLogger
}

// New returns an automaton typing through input and gating on focus.
func New(input wininput.Injector, focus window.Tracker, opts Options) (*Automaton, error) {
	if input == nil {
		return nil, errors.New("input injector is required")
	}
	if focus == nil {
		return nil, errors.New("focus tracker is required")
	}
	if opts.PausePoll <= 0 {
		opts.PausePoll = defaultPausePoll
	}
	if opts.FocusPoll <= 0 {
		opts.FocusPoll = defaultFocusPoll
	}
	if opts.Settle <= 0 {
		opts.Settle = defaultSettle
	}
	if opts.Rand == nil {
		opts.Rand = randutil.NewMathRandomGenerator()
	}
	return &Automaton{input: input, focus: focus, opts: opts, log: diag.Logger("delivery")}, nil
}

// Validate checks run inputs and returns the terminal rejection event on failure.
func Validate(text string, tgt *target.Descriptor) (Event, error) {
	if text == "" {
		return finalEvent(StatusNoText), ErrNoText
	}
	if tgt == nil || tgt.Handle.IsZero() {
		return finalEvent(StatusNoTarget), ErrNoTarget
	}
	return Event{}, nil
}

// Run delivers text to tgt and blocks until the run ends. Every run that
// starts emits exactly one Final event.
func (a *Automaton) Run(text string, tgt *target.Descriptor, params Params, ctl *Control, emit Emitter) Outcome {
	if emit == nil {
		emit = func(Event) {}
	}
	if ctl == nil {
		ctl = NewControl()
	}
	if ev, err := Validate(text, tgt); err != nil {
		a.log.Debugf("rejected: %v", err)
		emit(ev)
		return OutcomeRejected
	}

	runes := []rune(text)
	if tgt.AccessibilitySupported && tgt.Control != nil {
		if ctl.StopRequested() {
			return a.stop(ctl, emit)
		}
		ctl.setState(StateAccessibilityAttempt)
		if a.setViaAccessibility(tgt.Control, text, emit) {
			ctl.cursor.Store(int64(len(runes)))
			ctl.setState(StateFinished)
			emit(finalEvent(StatusFinished))
			return OutcomeFinished
		}
	}

	emit(statusEvent(StatusFallback))
	return a.typeForeground(runes, tgt.Handle, params, ctl, emit)
}

// setViaAccessibility tries each strategy in order and reports whether one succeeded.
func (a *Automaton) setViaAccessibility(ctrl uia.Control, text string, emit Emitter) bool {
	emit(statusEvent(StatusAccessibilityTry))
	for _, s := range strategies {
		if err := s.apply(ctrl, text); err != nil {
			a.log.Debugf("%s: %v", s.name, err)
			emit(statusEvent(fmt.Sprintf("%s failed: %v", s.name, err)))
			continue
		}
		emit(progressEvent(100))
		emit(statusEvent(s.name + " completed."))
		return true
	}
	emit(statusEvent(StatusAccessibilityFail))
	return false
}

// typeForeground types runes one at a time while h holds focus.
func (a *Automaton) typeForeground(runes []rune, h window.Handle, params Params, ctl *Control, emit Emitter) Outcome {
	total := len(runes)
	delay := params.Delay()
	paused := false
	ctl.setState(StateForegroundTyping)

	for {
		idx := ctl.Cursor()
		if idx >= total {
			break
		}
		if ctl.StopRequested() {
			return a.stop(ctl, emit)
		}
		if ctl.Paused() {
			if !paused {
				paused = true
				emit(statusEvent(StatusPaused))
			}
			ctl.wait(a.opts.PausePoll)
			continue
		}
		if paused {
			paused = false
			emit(statusEvent(StatusResumed))
		}
		if !window.Focused(a.focus, h) {
			if !a.waitForFocus(h, ctl, emit) {
				return a.stop(ctl, emit)
			}
			continue
		}

		r := runes[idx]
		if err := a.apply(a.plan(r, params)); err != nil {
			a.log.Warnf("input at %d/%d: %v", idx, total, err)
			ctl.setState(StateFailed)
			emit(finalEvent(fmt.Sprintf("Typing failed: %v", err)))
			return OutcomeFailed
		}
		done := ctl.advance()
		emit(progressEvent(done * 100 / total))
		ctl.wait(delay)
	}

	if ctl.StopRequested() {
		return a.stop(ctl, emit)
	}
	ctl.setState(StateFinished)
	emit(finalEvent(StatusFinished))
	return OutcomeFinished
}

// waitForFocus polls until h is foreground again. It returns false on stop.
func (a *Automaton) waitForFocus(h window.Handle, ctl *Control, emit Emitter) bool {
	ctl.setState(StateWaitingForFocus)
	emit(statusEvent(StatusFocusLost))
	a.log.Debugf("waiting for %s", h)
	for {
		if ctl.StopRequested() {
			return false
		}
		if window.Focused(a.focus, h) {
			ctl.setState(StateForegroundTyping)
			emit(statusEvent(StatusFocusBack))
			return true
		}
		if !ctl.wait(a.opts.FocusPoll) {
			return false
		}
	}
}

// plan draws the typo decision for r and returns its keystrokes.
func (a *Automaton) plan(r rune, params Params) []Action {
	threshold := params.mistakeBasisPoints()
	if threshold == 0 || !mistakeEligible(r) {
		return ActionsForRune(r, 0, false)
	}
	if threshold < 10000 && a.opts.Rand.Intn(10000) >= threshold {
		return ActionsForRune(r, 0, false)
	}
	stray := rune(strayLetters[a.opts.Rand.Intn(len(strayLetters))])
	return ActionsForRune(r, stray, true)
}

// apply executes actions using the injector. Settles are not interrupted so a
// stray letter is always erased.
func (a *Automaton) apply(actions []Action) error {
	for _, action := range actions {
		var err error
		switch action.Type {
		case ActType:
			err = wininput.TypeRune(a.input, action.Rune)
		case ActBackspace:
			err = a.input.Backspace()
		case ActSettle:
			time.Sleep(a.opts.Settle)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *Automaton) stop(ctl *Control, emit Emitter) Outcome {
	ctl.setState(StateStopped)
	emit(finalEvent(StatusStopped))
	return OutcomeStopped
}
