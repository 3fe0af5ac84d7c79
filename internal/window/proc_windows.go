//go:build windows

// Package window identifies top-level windows and reports which one holds focus.
package window

import "syscall"

var (
	user32       = syscall.NewLazyDLL("user32.dll")
	procIsWindow = user32.NewProc("IsWindow")
)

// Exists reports whether h names a window that has not been destroyed.
func Exists(h Handle) bool {
	if h.IsZero() {
		return false
	}
	ret, _, _ := procIsWindow.Call(uintptr(h))
	return ret != 0
}
