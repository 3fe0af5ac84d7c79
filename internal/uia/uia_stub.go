//go:build !windows

// Package uia exposes the accessibility view of a window.
package uia

import "github.com/frudas24/overtype/internal/window"

// NoopAttacher is a placeholder attacher for non-Windows builds.
type NoopAttacher struct{}

// NewAttacher returns a non-functional attacher on non-Windows platforms.
func NewAttacher() (Attacher, error) {
	return &NoopAttacher{}, ErrUnsupported
}

// Attach returns ErrUnsupported.
func (n *NoopAttacher) Attach(h window.Handle) (Tree, error) {
	_ = h
	return nil, ErrUnsupported
}
