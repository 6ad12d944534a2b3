package config

import (
	_ "embed"
)

//go:embed defaults/isotope.yaml
var defaultYAML []byte

// DefaultConfig returns the default game configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Economy: EconomyConfig{
			StartingCash:        50,
			PrestigeRequirement: 1000,
		},
		Unlocks: UnlockConfig{
			BetaEarnings:  500,
			GammaEarnings: 5000,
		},
		Session: SessionConfig{
			MaxCatchupMinutes: 480,
			AutosaveSeconds:   30,
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
