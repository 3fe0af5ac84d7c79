//go:build windows

// Package window identifies top-level windows and reports which one holds focus.
package window

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

// WinTracker queries focus and captions using WinAPI.
type WinTracker struct{}

// NewTracker returns a Windows foreground tracker.
func NewTracker() (Tracker, error) {
	return &WinTracker{}, nil
}

// Foreground returns the window currently holding input focus.
func (w *WinTracker) Foreground() (Handle, error) {
	hwnd := win.GetForegroundWindow()
	if hwnd == 0 {
		return 0, fmt.Errorf("GetForegroundWindow: no active window")
	}
	return Handle(hwnd), nil
}

// Title returns the window caption.
func (w *WinTracker) Title(h Handle) (string, error) {
	if !Exists(h) {
		return "", fmt.Errorf("window %s is gone", h)
	}
	hwnd := win.HWND(h)
	n := int(win.SendMessage(hwnd, win.WM_GETTEXTLENGTH, 0, 0))
	if n <= 0 {
		return "", nil
	}
	buf := make([]uint16, n+1)
	win.SendMessage(hwnd, win.WM_GETTEXT, uintptr(len(buf)), uintptr(unsafe.Pointer(&buf[0])))
	return syscall.UTF16ToString(buf), nil
}
