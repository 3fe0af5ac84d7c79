// Package presets stores named speed/mistake combinations in a YAML file.
package presets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Preset is a named pair of delivery parameters.
type Preset struct {
	Speed   int `yaml:"speed"`
	Mistake int `yaml:"mistake"`
}

// Validate checks the preset ranges.
func (p Preset) Validate() error {
	if p.Speed < 1 {
		return fmt.Errorf("speed must be >= 1")
	}
	if p.Mistake < 0 || p.Mistake > 100 {
		return fmt.Errorf("mistake must be 0-100")
	}
	return nil
}

// Set maps preset names to values.
type Set map[string]Preset

// Names returns the preset names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named preset.
func (s Set) Lookup(name string) (Preset, error) {
	p, ok := s[name]
	if !ok {
		return Preset{}, fmt.Errorf("preset %q not found", name)
	}
	return p, nil
}

type file struct {
	Presets Set `yaml:"presets"`
}

// Load reads presets from disk. Missing files return an empty set.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Set{}, nil
		}
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.Presets == nil {
		return Set{}, nil
	}
	for name, p := range f.Presets {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return f.Presets, nil
}

// Save writes presets to disk, creating parent directories as needed.
func Save(path string, s Set) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(file{Presets: s})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
