// Package core holds the small set of types shared by every front-end:
// runtime configuration, semantic input actions and player sides.
// It does not depend on Bubble Tea or any transport.
package core

import (
	"time"

	"github.com/vovakirdan/tui-rps/internal/rules"
)

// RuntimeConfig contains configuration passed to a front-end at startup.
type RuntimeConfig struct {
	ScreenW  int           // Screen width in characters
	ScreenH  int           // Screen height in characters
	TickRate int           // Animation ticks per second
	Seed     int64         // RNG seed for the computer player, 0 = time based
	Variant  rules.Variant // Preselected variant, VariantNone shows the menu
	Sound    bool          // Emit a terminal bell when a round resolves
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 10,
		Seed:     0,
		Sound:    true,
	}
}

// EffectiveSeed returns Seed, or a time based seed when Seed is 0.
func (c RuntimeConfig) EffectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// TickInterval returns the duration of one animation tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 10
	}
	return time.Second / time.Duration(rate)
}
