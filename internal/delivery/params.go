// Package delivery types a staged text into a captured window, either by
// writing through its accessibility control or by focus-gated keystrokes.
package delivery

import (
	"fmt"
	"math"
	"time"
)

// Params tunes a single run.
type Params struct {
	// SpeedCharsPerSecond is clamped to at least 1 when used.
	SpeedCharsPerSecond float64
	// MistakePercent is the chance, 0..100, of a typo before each printable character.
	MistakePercent float64
}

// Validate rejects values that cannot drive a run.
func (p Params) Validate() error {
	if math.IsNaN(p.SpeedCharsPerSecond) || math.IsInf(p.SpeedCharsPerSecond, 0) {
		return fmt.Errorf("speed must be a finite number")
	}
	if math.IsNaN(p.MistakePercent) || p.MistakePercent < 0 || p.MistakePercent > 100 {
		return fmt.Errorf("mistake percent must be 0-100")
	}
	return nil
}

// Delay returns the pause applied after each typed character.
func (p Params) Delay() time.Duration {
	speed := math.Max(1, p.SpeedCharsPerSecond)
	return time.Duration(float64(time.Second) / speed)
}

// mistakeBasisPoints converts the percentage into a 0..10000 threshold.
func (p Params) mistakeBasisPoints() int {
	switch {
	case p.MistakePercent <= 0 || math.IsNaN(p.MistakePercent):
		return 0
	case p.MistakePercent >= 100:
		return 10000
	default:
		return int(math.Round(p.MistakePercent * 100))
	}
}
