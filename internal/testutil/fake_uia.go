package testutil

import (
	"sync"

	"github.com/frudas24/overtype/internal/uia"
	"github.com/frudas24/overtype/internal/window"
)

// FakeSetter records text written through one strategy.
type FakeSetter struct {
	mu    sync.Mutex
	Err   error
	texts []string
}

// SetText records text or returns Err.
func (s *FakeSetter) SetText(text string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	return nil
}

// Texts returns the recorded writes.
func (s *FakeSetter) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.texts))
	copy(out, s.texts)
	return out
}

// FakeControl implements uia.Control with a direct setter only.
type FakeControl struct {
	Direct  FakeSetter
	InfoErr error
	Role    uia.Role
}

// Ensure FakeControl implements the interface.
var _ uia.Control = (*FakeControl)(nil)

// SetText writes through the direct setter.
func (c *FakeControl) SetText(text string) error {
	return c.Direct.SetText(text)
}

// Info returns metadata or InfoErr.
func (c *FakeControl) Info() (uia.Info, error) {
	if c.InfoErr != nil {
		return uia.Info{}, c.InfoErr
	}
	return uia.Info{ClassName: "Edit", Role: c.Role}, nil
}

// FakePatternControl adds value pattern and wrapper capabilities to FakeControl.
type FakePatternControl struct {
	FakeControl
	Pattern    FakeSetter
	Wrapped    FakeSetter
	PatternErr error
	WrapperErr error
}

// Ensure FakePatternControl implements the optional capabilities.
var (
	_ uia.ValuePatternProvider = (*FakePatternControl)(nil)
	_ uia.WrapperProvider      = (*FakePatternControl)(nil)
)

// ValuePattern returns the pattern setter or PatternErr.
func (c *FakePatternControl) ValuePattern() (uia.TextSettable, error) {
	if c.PatternErr != nil {
		return nil, c.PatternErr
	}
	return &c.Pattern, nil
}

// Wrapper returns the wrapped setter or WrapperErr.
func (c *FakePatternControl) Wrapper() (uia.TextSettable, error) {
	if c.WrapperErr != nil {
		return nil, c.WrapperErr
	}
	return &c.Wrapped, nil
}

// FakeTree implements uia.Tree from a role map.
type FakeTree struct {
	Controls map[uia.Role]uia.Control
	Lookups  []uia.Role
}

// Find returns the control registered for role.
func (t *FakeTree) Find(role uia.Role) (uia.Control, error) {
	t.Lookups = append(t.Lookups, role)
	c, ok := t.Controls[role]
	if !ok {
		return nil, uia.ErrNotFound
	}
	return c, nil
}

// FakeAttacher implements uia.Attacher from a handle map.
type FakeAttacher struct {
	Trees    map[window.Handle]*FakeTree
	Err      error
	Panic    any
	Attached []window.Handle
}

// Attach returns the tree registered for h.
func (a *FakeAttacher) Attach(h window.Handle) (uia.Tree, error) {
	a.Attached = append(a.Attached, h)
	if a.Panic != nil {
		panic(a.Panic)
	}
	if a.Err != nil {
		return nil, a.Err
	}
	tree, ok := a.Trees[h]
	if !ok {
		return nil, uia.ErrGone
	}
	return tree, nil
}
