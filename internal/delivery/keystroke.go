// Package delivery types a staged text into a captured window.
package delivery

import "unicode"

// ActionType identifies the kind of keystroke action to execute.
type ActionType string

const (
	// ActType types one character.
	ActType ActionType = "type"
	// ActBackspace erases one character.
	ActBackspace ActionType = "backspace"
	// ActSettle waits briefly so the target can process the previous key.
	ActSettle ActionType = "settle"
)

// Action describes a single keystroke step.
type Action struct {
	Type ActionType
	Rune rune
}

// strayLetters are the candidates for an injected typo.
const strayLetters = "abcdefghijklmnopqrstuvwxyz"

// mistakeEligible reports whether a typo may precede r.
func mistakeEligible(r rune) bool {
	return r != '\n' && unicode.IsPrint(r)
}

// ActionsForRune builds the keystrokes for one character. When withMistake is
// set and r is eligible, stray is typed and erased first.
func ActionsForRune(r rune, stray rune, withMistake bool) []Action {
	if !withMistake || !mistakeEligible(r) {
		return []Action{{Type: ActType, Rune: r}}
	}
	return []Action{
		{Type: ActType, Rune: stray},
		{Type: ActSettle},
		{Type: ActBackspace},
		{Type: ActSettle},
		{Type: ActType, Rune: r},
	}
}
