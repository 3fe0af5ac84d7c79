// Package window identifies top-level windows and reports which one holds focus.
package window

import (
	"errors"
	"fmt"
)

// ErrUnsupported indicates the window system cannot be queried on this platform.
var ErrUnsupported = errors.New("window queries are only supported on Windows")

// Handle is an opaque identifier of a top-level OS window. Zero means none.
type Handle uintptr

// IsZero reports whether the handle refers to no window.
func (h Handle) IsZero() bool {
	return h == 0
}

// String formats the handle the way Win32 tools print HWNDs.
func (h Handle) String() string {
	return fmt.Sprintf("0x%08X", uintptr(h))
}

// Tracker reports the window that currently holds input focus.
type Tracker interface {
	Foreground() (Handle, error)
}

// Titler reads a window caption.
type Titler interface {
	Title(h Handle) (string, error)
}

// Focused reports whether h is the current foreground window.
// Query failures count as not focused.
func Focused(t Tracker, h Handle) bool {
	if t == nil || h.IsZero() {
		return false
	}
	active, err := t.Foreground()
	if err != nil {
		return false
	}
	return active == h
}

// TitleOf returns the caption of h when t can read titles, otherwise an empty string.
func TitleOf(t Tracker, h Handle) string {
	titler, ok := t.(Titler)
	if !ok || h.IsZero() {
		return ""
	}
	title, err := titler.Title(h)
	if err != nil {
		return ""
	}
	return title
}

// Truncate shortens a caption to at most n runes for status lines.
func Truncate(title string, n int) string {
	runes := []rune(title)
	if n < 0 || len(runes) <= n {
		return title
	}
	return string(runes[:n])
}
