// Package target captures a window as a delivery destination and probes it
// for a writable accessibility control.
package target

import (
	"errors"
	"fmt"

	"github.com/pion/logging"

	"github.com/frudas24/overtype/internal/diag"
	"github.com/frudas24/overtype/internal/uia"
	"github.com/frudas24/overtype/internal/window"
)

// Descriptor is an immutable snapshot of a captured target. AccessibilitySupported
// implies Control is set and answered a liveness check when the descriptor was built.
type Descriptor struct {
	Handle                 window.Handle
	AccessibilitySupported bool
	Control                uia.Control
	Title                  string
}

// Label returns a short description for status lines.
func (d *Descriptor) Label() string {
	if d == nil {
		return "(none)"
	}
	name := window.Truncate(d.Title, 60)
	if name == "" {
		name = d.Handle.String()
	}
	if d.AccessibilitySupported {
		return "(UIA) " + name
	}
	return name
}

// Prober builds descriptors from window handles.
type Prober struct {
	attacher uia.Attacher
	titles   window.Tracker
	log      logging.LeveledLogger
}

// NewProber returns a prober using attacher for the accessibility tree.
// titles is optional and only used to label descriptors.
func NewProber(attacher uia.Attacher, titles window.Tracker) (*Prober, error) {
	if attacher == nil {
		return nil, errors.New("accessibility attacher is required")
	}
	return &Prober{attacher: attacher, titles: titles, log: diag.Logger("probe")}, nil
}

// Probe inspects h without focusing or writing to it. Failures degrade to an
// unsupported descriptor.
func (p *Prober) Probe(h window.Handle) Descriptor {
	d := Descriptor{Handle: h}
	if h.IsZero() {
		return d
	}
	d.Title = window.TitleOf(p.titles, h)

	ctrl, err := p.findControl(h)
	if err != nil {
		p.log.Debugf("window %s: %v", h, err)
		return d
	}
	d.AccessibilitySupported = true
	d.Control = ctrl
	return d
}

// findControl attaches to h and returns the first live control in search order.
func (p *Prober) findControl(h window.Handle) (ctrl uia.Control, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctrl = nil
			err = fmt.Errorf("accessibility provider panicked: %v", r)
		}
	}()

	tree, err := p.attacher.Attach(h)
	if err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("attach: %w", uia.ErrNotFound)
	}
	for _, role := range uia.SearchOrder {
		candidate, err := tree.Find(role)
		if err != nil || candidate == nil {
			continue
		}
		if _, err := candidate.Info(); err != nil {
			return nil, fmt.Errorf("liveness %s: %w", role, err)
		}
		return candidate, nil
	}
	return nil, uia.ErrNotFound
}
