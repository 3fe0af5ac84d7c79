package testutil

import (
	"errors"
	"sync/atomic"

	"github.com/frudas24/overtype/internal/window"
)

// FakeTracker implements window.Tracker with a settable foreground handle.
type FakeTracker struct {
	active  atomic.Uintptr
	queries atomic.Int64
	failing atomic.Bool

	Titles map[window.Handle]string
}

// Ensure FakeTracker implements the interfaces.
var (
	_ window.Tracker = (*FakeTracker)(nil)
	_ window.Titler  = (*FakeTracker)(nil)
)

// NewFakeTracker returns a tracker reporting h as focused.
func NewFakeTracker(h window.Handle) *FakeTracker {
	f := &FakeTracker{}
	f.SetForeground(h)
	return f
}

// SetForeground changes the reported foreground window.
func (f *FakeTracker) SetForeground(h window.Handle) {
	f.active.Store(uintptr(h))
}

// SetFailing makes Foreground return an error.
func (f *FakeTracker) SetFailing(failing bool) {
	f.failing.Store(failing)
}

// Queries returns how many times Foreground was called.
func (f *FakeTracker) Queries() int64 {
	return f.queries.Load()
}

// Foreground returns the configured handle.
func (f *FakeTracker) Foreground() (window.Handle, error) {
	f.queries.Add(1)
	if f.failing.Load() {
		return 0, errors.New("foreground query failed")
	}
	return window.Handle(f.active.Load()), nil
}

// Title returns the configured caption.
func (f *FakeTracker) Title(h window.Handle) (string, error) {
	title, ok := f.Titles[h]
	if !ok {
		return "", errors.New("no title")
	}
	return title, nil
}
