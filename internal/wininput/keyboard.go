//go:build windows

// Package wininput defines keyboard input synthesis for the focused window.
package wininput

import (
	"unicode/utf16"

	"github.com/lxn/win"
)

// TypeUnicode types Unicode text into the focused window.
func (w *WinInjector) TypeUnicode(text string) error {
	if text == "" {
		return nil
	}
	for _, code := range utf16.Encode([]rune(text)) {
		if err := sendKeyboardInput(win.KEYBDINPUT{WScan: code, DwFlags: win.KEYEVENTF_UNICODE}); err != nil {
			return err
		}
		if err := sendKeyboardInput(win.KEYBDINPUT{WScan: code, DwFlags: win.KEYEVENTF_UNICODE | win.KEYEVENTF_KEYUP}); err != nil {
			return err
		}
	}
	return nil
}

// Backspace sends a Backspace key press.
func (w *WinInjector) Backspace() error {
	return pressKey(win.VK_BACK)
}

// Enter sends an Enter key press.
func (w *WinInjector) Enter() error {
	return pressKey(win.VK_RETURN)
}

// pressKey sends a virtual key down/up pair.
func pressKey(vk uint16) error {
	if err := sendKeyboardInput(win.KEYBDINPUT{WVk: vk}); err != nil {
		return err
	}
	return sendKeyboardInput(win.KEYBDINPUT{WVk: vk, DwFlags: win.KEYEVENTF_KEYUP})
}
