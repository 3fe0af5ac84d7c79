// Package delivery types a staged text into a captured window.
package delivery

import (
	"fmt"

	"github.com/frudas24/overtype/internal/uia"
)

// strategy is one way of writing the whole text through an accessibility control.
type strategy struct {
	name string
	set  func(ctrl uia.Control, text string) error
}

// strategies are tried in order; the first that returns nil wins.
var strategies = []strategy{
	{name: "Direct value set", set: setDirect},
	{name: "Value pattern set", set: setViaPattern},
	{name: "Wrapper value set", set: setViaWrapper},
}

func setDirect(ctrl uia.Control, text string) error {
	return ctrl.SetText(text)
}

func setViaPattern(ctrl uia.Control, text string) error {
	p, ok := ctrl.(uia.ValuePatternProvider)
	if !ok {
		return uia.ErrUnsupported
	}
	setter, err := p.ValuePattern()
	if err != nil {
		return err
	}
	return setter.SetText(text)
}

func setViaWrapper(ctrl uia.Control, text string) error {
	w, ok := ctrl.(uia.WrapperProvider)
	if !ok {
		return uia.ErrUnsupported
	}
	setter, err := w.Wrapper()
	if err != nil {
		return err
	}
	return setter.SetText(text)
}

// apply runs the strategy, converting a provider panic into an error.
func (s strategy) apply(ctrl uia.Control, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.set(ctrl, text)
}
