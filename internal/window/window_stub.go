//go:build !windows

// Package window identifies top-level windows and reports which one holds focus.
package window

// NoopTracker is a placeholder tracker for non-Windows builds.
type NoopTracker struct{}

// NewTracker returns a non-functional tracker on non-Windows platforms.
func NewTracker() (Tracker, error) {
	return &NoopTracker{}, ErrUnsupported
}

// Exists reports false; windows cannot be queried on this platform.
func Exists(h Handle) bool {
	_ = h
	return false
}

// Foreground returns ErrUnsupported.
func (n *NoopTracker) Foreground() (Handle, error) {
	return 0, ErrUnsupported
}

// Title returns ErrUnsupported.
func (n *NoopTracker) Title(h Handle) (string, error) {
	_ = h
	return "", ErrUnsupported
}
