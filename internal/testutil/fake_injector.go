package testutil

import (
	"sync"

	"github.com/frudas24/overtype/internal/wininput"
)

// Call records a single injected action.
type Call struct {
	Name string
	Text string
}

// FakeInjector implements wininput.Injector and records calls for tests.
// It is safe for use from the delivery goroutine and the test goroutine.
type FakeInjector struct {
	mu    sync.Mutex
	calls []Call

	// OnCall runs after each recorded call, outside the lock.
	OnCall func(c Call, n int)
	// Err is returned from every call when set.
	Err error
}

// Ensure FakeInjector implements the interface.
var _ wininput.Injector = (*FakeInjector)(nil)

// TypeUnicode records typed text.
func (f *FakeInjector) TypeUnicode(text string) error {
	return f.record(Call{Name: "TypeUnicode", Text: text})
}

// Backspace records a Backspace key press.
func (f *FakeInjector) Backspace() error {
	return f.record(Call{Name: "Backspace"})
}

// Enter records an Enter key press.
func (f *FakeInjector) Enter() error {
	return f.record(Call{Name: "Enter"})
}

// Calls returns a copy of the recorded calls.
func (f *FakeInjector) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Typed returns the concatenated text of all TypeUnicode calls.
func (f *FakeInjector) Typed() string {
	var out string
	for _, c := range f.Calls() {
		if c.Name == "TypeUnicode" {
			out += c.Text
		}
	}
	return out
}

func (f *FakeInjector) record(c Call) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	n := len(f.calls)
	hook := f.OnCall
	f.mu.Unlock()
	if hook != nil {
		hook(c, n)
	}
	return nil
}
