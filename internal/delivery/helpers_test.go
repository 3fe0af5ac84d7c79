package delivery

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/frudas24/overtype/internal/target"
	"github.com/frudas24/overtype/internal/testutil"
	"github.com/frudas24/overtype/internal/window"
)

const targetHandle window.Handle = 0x1001

// fixedRand always returns v modulo n.
type fixedRand struct{ v int }

func (f fixedRand) Intn(n int) int { return f.v % n }

// recorder collects events emitted by a run.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) progress() []int {
	var out []int
	for _, e := range r.Events() {
		if e.Kind == EventProgress {
			out = append(out, e.Percent)
		}
	}
	return out
}

func (r *recorder) statuses() []string {
	var out []string
	for _, e := range r.Events() {
		if e.Kind == EventStatus {
			out = append(out, e.Status)
		}
	}
	return out
}

func (r *recorder) last() Event {
	events := r.Events()
	if len(events) == 0 {
		return Event{}
	}
	return events[len(events)-1]
}

type fixture struct {
	inj     *testutil.FakeInjector
	tracker *testutil.FakeTracker
	auto    *Automaton
	rec     *recorder
}

func newFixture(t *testing.T, rnd Rand) *fixture {
	t.Helper()
	f := &fixture{
		inj:     &testutil.FakeInjector{},
		tracker: testutil.NewFakeTracker(targetHandle),
		rec:     &recorder{},
	}
	auto, err := New(f.inj, f.tracker, Options{
		PausePoll: 5 * time.Millisecond,
		FocusPoll: 5 * time.Millisecond,
		Settle:    time.Millisecond,
		Rand:      rnd,
	})
	require.NoError(t, err)
	f.auto = auto
	return f
}

// start runs the automaton on its own goroutine.
func (f *fixture) start(text string, tgt *target.Descriptor, params Params, ctl *Control) <-chan Outcome {
	done := make(chan Outcome, 1)
	go func() {
		done <- f.auto.Run(text, tgt, params, ctl, f.rec.emit)
	}()
	return done
}

func waitOutcome(t *testing.T, done <-chan Outcome) Outcome {
	t.Helper()
	select {
	case o := <-done:
		return o
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not finish")
		return OutcomeRejected
	}
}

func plainTarget() *target.Descriptor {
	return &target.Descriptor{Handle: targetHandle}
}

var fast = Params{SpeedCharsPerSecond: 1000}
