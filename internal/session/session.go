// Package session holds the operator's staged text, target and parameters.
package session

import (
	"sync"

	"github.com/frudas24/overtype/internal/delivery"
	"github.com/frudas24/overtype/internal/target"
)

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Text   string
	Target *target.Descriptor
	Params delivery.Params
}

// Session holds staged state between operator actions.
type Session struct {
	mu     sync.RWMutex
	text   string
	target *target.Descriptor
	params delivery.Params
}

// New returns a session with initial parameters.
func New(params delivery.Params) *Session {
	return &Session{params: params}
}

// SetText stages the text to deliver.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// SetTarget replaces the captured target. Earlier descriptors are left untouched.
func (s *Session) SetTarget(d target.Descriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = &d
}

// Target returns the current descriptor, or nil when nothing was captured.
func (s *Session) Target() *target.Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target
}

// SetParams sets the parameters used by the next run.
func (s *Session) SetParams(p delivery.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Text: s.text, Target: s.target, Params: s.params}
}
