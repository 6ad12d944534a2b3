package econ

import "time"

// Rules are the tunable economy parameters. They come from the YAML config
// in normal play and from DefaultRules in tests.
type Rules struct {
	StartingCash        Micros
	PrestigeRequirement Micros
	BetaUnlockAt        Micros // lifetime earnings that unlock beta
	GammaUnlockAt       Micros // lifetime earnings that unlock gamma
	MaxCatchUp          time.Duration
}

// DefaultRules returns the built-in tuning.
func DefaultRules() Rules {
	return Rules{
		StartingCash:        FromUnits(50),
		PrestigeRequirement: FromUnits(1000),
		BetaUnlockAt:        FromUnits(500),
		GammaUnlockAt:       FromUnits(5000),
		MaxCatchUp:          8 * time.Hour,
	}
}
