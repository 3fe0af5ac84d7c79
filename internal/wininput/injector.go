// Package wininput defines keyboard input synthesis for the focused window.
package wininput

// Injector emits keystrokes into whichever window currently holds focus.
type Injector interface {
	TypeUnicode(text string) error
	Backspace() error
	Enter() error
}

// TypeRune sends a single character, routing newlines through Enter.
func TypeRune(inj Injector, r rune) error {
	switch r {
	case '\n':
		return inj.Enter()
	case '\r':
		return nil
	default:
		return inj.TypeUnicode(string(r))
	}
}
