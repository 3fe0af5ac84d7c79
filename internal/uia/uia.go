// Package uia exposes the accessibility view of a window: a tree of controls
// that can be located by role and, in some cases, written without focus.
package uia

import (
	"errors"
	"strings"

	"github.com/frudas24/overtype/internal/window"
)

var (
	// ErrUnsupported indicates the control or platform lacks the requested capability.
	ErrUnsupported = errors.New("accessibility capability not supported")

	// ErrNotFound indicates no control with the requested role exists.
	ErrNotFound = errors.New("accessibility control not found")

	// ErrGone indicates the control or its window no longer exists.
	ErrGone = errors.New("accessibility control is gone")
)

// Role classifies a control in the accessibility tree.
type Role string

const (
	// RoleEdit is a single or multi-line editable text field.
	RoleEdit Role = "edit"
	// RoleDocument is a rich document surface.
	RoleDocument Role = "document"
)

// SearchOrder is the order in which the probe looks for a writable control.
var SearchOrder = []Role{RoleEdit, RoleDocument}

// Child window classes mapped to roles. Matching is case-insensitive on the prefix.
var classRoles = []struct {
	prefix string
	role   Role
}{
	{prefix: "edit", role: RoleEdit},
	{prefix: "windowsforms10.edit", role: RoleEdit},
	{prefix: "richedit", role: RoleDocument},
	{prefix: "windowsforms10.richedit", role: RoleDocument},
}

// RoleForClass maps a window class name to a role, or "" when it is not writable text.
func RoleForClass(class string) Role {
	lower := strings.ToLower(class)
	for _, cr := range classRoles {
		if strings.HasPrefix(lower, cr.prefix) {
			return cr.role
		}
	}
	return ""
}

// Info is the metadata read from a control to confirm it is reachable.
type Info struct {
	Handle    window.Handle
	ClassName string
	Role      Role
}

// TextSettable replaces the whole text of a control.
type TextSettable interface {
	SetText(text string) error
}

// Control is a located accessibility element. Its own SetText is the
// direct value-set path.
type Control interface {
	TextSettable
	Info() (Info, error)
}

// ValuePatternProvider is implemented by controls exposing a value pattern.
type ValuePatternProvider interface {
	ValuePattern() (TextSettable, error)
}

// WrapperProvider is implemented by controls that can hand out a freshly
// resolved wrapper around the same element.
type WrapperProvider interface {
	Wrapper() (TextSettable, error)
}

// Tree is the navigable accessibility tree of one window.
type Tree interface {
	Find(role Role) (Control, error)
}

// Attacher connects to the accessibility tree of a window.
type Attacher interface {
	Attach(h window.Handle) (Tree, error)
}
