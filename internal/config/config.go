// Package config provides YAML-based game configuration loading with
// embedded defaults for the isotope idle game.
package config

import (
	"time"

	"github.com/isotopegame/isotope/internal/econ"
)

// GameConfig contains all tunable parameters of the game.
type GameConfig struct {
	Economy EconomyConfig `yaml:"economy"`
	Unlocks UnlockConfig  `yaml:"unlocks"`
	Session SessionConfig `yaml:"session"`
}

// EconomyConfig defines the starting balance and prestige pricing.
type EconomyConfig struct {
	StartingCash        float64 `yaml:"starting_cash"`
	PrestigeRequirement float64 `yaml:"prestige_requirement"`
}

// UnlockConfig defines the lifetime-earnings thresholds at which the
// higher particle tiers become available.
type UnlockConfig struct {
	BetaEarnings  float64 `yaml:"beta_earnings"`
	GammaEarnings float64 `yaml:"gamma_earnings"`
}

// SessionConfig defines runtime session behavior.
type SessionConfig struct {
	// MaxCatchupMinutes bounds offline progress granted on load.
	MaxCatchupMinutes int `yaml:"max_catchup_minutes"`
	// AutosaveSeconds is the interval between automatic saves. Zero
	// disables autosaving.
	AutosaveSeconds int `yaml:"autosave_seconds"`
}

// Rules converts the configuration into engine rules.
func (c GameConfig) Rules() econ.Rules {
	return econ.Rules{
		StartingCash:        econ.FromFloat(c.Economy.StartingCash),
		PrestigeRequirement: econ.FromFloat(c.Economy.PrestigeRequirement),
		BetaUnlockAt:        econ.FromFloat(c.Unlocks.BetaEarnings),
		GammaUnlockAt:       econ.FromFloat(c.Unlocks.GammaEarnings),
		MaxCatchUp:          time.Duration(c.Session.MaxCatchupMinutes) * time.Minute,
	}
}

// AutosaveInterval returns the autosave period, or zero when disabled.
func (c GameConfig) AutosaveInterval() time.Duration {
	if c.Session.AutosaveSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Session.AutosaveSeconds) * time.Second
}
