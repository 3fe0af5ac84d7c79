//go:build !windows

// Package wininput defines keyboard input synthesis for the focused window.
package wininput

import "errors"

// ErrUnsupported indicates WinAPI input injection is not available.
var ErrUnsupported = errors.New("wininput is only supported on Windows")

// NoopInjector is a placeholder injector for non-Windows builds.
type NoopInjector struct{}

// NewInjector returns a non-functional injector on non-Windows platforms.
func NewInjector() (Injector, error) {
	return &NoopInjector{}, ErrUnsupported
}

// TypeUnicode returns ErrUnsupported.
func (n *NoopInjector) TypeUnicode(text string) error {
	_ = text
	return ErrUnsupported
}

// Backspace returns ErrUnsupported.
func (n *NoopInjector) Backspace() error {
	return ErrUnsupported
}

// Enter returns ErrUnsupported.
func (n *NoopInjector) Enter() error {
	return ErrUnsupported
}
