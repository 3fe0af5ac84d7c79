//go:build windows

// Package uia exposes the accessibility view of a window.
package uia

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/lxn/win"

	"github.com/frudas24/overtype/internal/window"
)

// enumChildCB is shared by every enumeration; syscall callbacks are never freed.
var (
	findStates  = newRegistry()
	enumChildCB = syscall.NewCallback(enumChild)
)

// WinAttacher walks Win32 child controls of a top-level window.
type WinAttacher struct{}

// NewAttacher returns a Windows accessibility attacher.
func NewAttacher() (Attacher, error) {
	return &WinAttacher{}, nil
}

// Attach returns the child control tree of h.
func (a *WinAttacher) Attach(h window.Handle) (Tree, error) {
	if !window.Exists(h) {
		return nil, fmt.Errorf("attach %s: %w", h, ErrGone)
	}
	return &winTree{root: win.HWND(h)}, nil
}

type winTree struct {
	root win.HWND
}

// Find returns the first child control whose class maps to role.
func (t *winTree) Find(role Role) (Control, error) {
	state := &findState{role: role}
	id := findStates.add(state)
	win.EnumChildWindows(t.root, enumChildCB, id)
	findStates.remove(id)
	if state.found == 0 {
		return nil, fmt.Errorf("find %s: %w", role, ErrNotFound)
	}
	return &winControl{root: t.root, hwnd: state.found, role: role, class: state.class}, nil
}

type findState struct {
	role  Role
	found win.HWND
	class string
}

// enumChild resolves the findState registered under lparam and stops at the first match.
func enumChild(hwnd win.HWND, lparam uintptr) uintptr {
	state, ok := findStates.get(lparam).(*findState)
	if !ok {
		return 0
	}
	class, err := className(hwnd)
	if err != nil {
		return 1
	}
	if RoleForClass(class) != state.role {
		return 1
	}
	state.found = hwnd
	state.class = class
	return 0
}

// winControl is a Win32 edit or rich edit control.
type winControl struct {
	root  win.HWND
	hwnd  win.HWND
	role  Role
	class string
}

// Info confirms the control still exists and reads its class.
func (c *winControl) Info() (Info, error) {
	if !isWindow(c.hwnd) {
		return Info{}, ErrGone
	}
	class, err := className(c.hwnd)
	if err != nil {
		return Info{}, err
	}
	return Info{Handle: window.Handle(c.hwnd), ClassName: class, Role: c.role}, nil
}

// SetText replaces the control text with WM_SETTEXT.
func (c *winControl) SetText(text string) error {
	return setWindowText(c.hwnd, text)
}

// ValuePattern returns a setter that selects all text and replaces the selection.
func (c *winControl) ValuePattern() (TextSettable, error) {
	if !isWindow(c.hwnd) {
		return nil, ErrGone
	}
	return replaceSelection{hwnd: c.hwnd}, nil
}

// Wrapper re-resolves the control from its window and wraps the fresh handle.
func (c *winControl) Wrapper() (TextSettable, error) {
	fresh, err := (&winTree{root: c.root}).Find(c.role)
	if err != nil {
		return nil, err
	}
	wc := fresh.(*winControl)
	return replaceSelection{hwnd: wc.hwnd}, nil
}

type replaceSelection struct {
	hwnd win.HWND
}

// SetText selects the whole content and replaces it.
func (r replaceSelection) SetText(text string) error {
	if !isWindow(r.hwnd) {
		return ErrGone
	}
	ptr, err := syscall.UTF16PtrFromString(text)
	if err != nil {
		return err
	}
	win.SendMessage(r.hwnd, win.EM_SETSEL, 0, ^uintptr(0))
	win.SendMessage(r.hwnd, win.EM_REPLACESEL, 1, uintptr(unsafe.Pointer(ptr)))
	return verifyLength(r.hwnd, text)
}

func setWindowText(hwnd win.HWND, text string) error {
	if !isWindow(hwnd) {
		return ErrGone
	}
	ptr, err := syscall.UTF16PtrFromString(text)
	if err != nil {
		return err
	}
	if win.SendMessage(hwnd, win.WM_SETTEXT, 0, uintptr(unsafe.Pointer(ptr))) == 0 {
		return fmt.Errorf("WM_SETTEXT rejected")
	}
	return verifyLength(hwnd, text)
}

// verifyLength checks the control accepted the text. Read-only controls
// acknowledge the message but keep their old content.
func verifyLength(hwnd win.HWND, text string) error {
	want := len(syscall.StringToUTF16(text)) - 1
	got := int(win.SendMessage(hwnd, win.WM_GETTEXTLENGTH, 0, 0))
	if got < want {
		return fmt.Errorf("control holds %d of %d characters", got, want)
	}
	return nil
}

func isWindow(hwnd win.HWND) bool {
	return window.Exists(window.Handle(hwnd))
}

func className(hwnd win.HWND) (string, error) {
	buf := make([]uint16, 256)
	n, err := win.GetClassName(hwnd, &buf[0], len(buf))
	if n == 0 {
		if err == nil {
			err = fmt.Errorf("GetClassName failed")
		}
		return "", err
	}
	return syscall.UTF16ToString(buf[:n]), nil
}
