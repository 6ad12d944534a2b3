package econ

import "time"

// Particle is the mutable runtime state of one particle type.
// BaseProduction lives here rather than on the definition because upgrades
// modify it, and the modified value must survive a save/load cycle.
type Particle struct {
	ID             string
	Count          Micros
	BaseProduction float64 // units per owned unit per second
	Unlocked       bool
	Purchased      []string // upgrade names applied to this particle, in purchase order
}

// UpgradeState tracks whether a one-shot upgrade has been bought.
type UpgradeState struct {
	Name      string
	Purchased bool
}

// AchievementState tracks whether an achievement has fired.
type AchievementState struct {
	Name     string
	Unlocked bool
}

// State is the aggregate game state: the root of persistence and the single
// long-lived mutable object for the process's life.
type State struct {
	Cash          Micros
	TotalEarnings Micros // lifetime cash earned; never decreases, even across prestige
	PrestigeLevel int

	// AchievementBonus is the product of all unlocked achievement rewards.
	// It is kept separate from the level-derived base so that a prestige
	// reset can recompute the base without discarding achievement rewards.
	AchievementBonus float64

	LastUpdate time.Time

	Particles map[string]*Particle
	Order     []string // particle ids in catalog order, for deterministic iteration

	Upgrades     []UpgradeState
	Boosters     []UpgradeState
	Achievements []AchievementState
}

// NewState builds a fresh game state from the catalog and rules.
func NewState(cat *Catalog, rules Rules, now time.Time) *State {
	s := &State{
		Cash:             rules.StartingCash,
		AchievementBonus: 1.0,
		LastUpdate:       now,
		Particles:        make(map[string]*Particle, len(cat.Particles)),
	}
	for _, def := range cat.Particles {
		s.Particles[def.ID] = &Particle{
			ID:             def.ID,
			BaseProduction: def.BaseProduction,
			Unlocked:       def.StartUnlocked,
		}
		s.Order = append(s.Order, def.ID)
	}
	for _, u := range cat.Upgrades {
		s.Upgrades = append(s.Upgrades, UpgradeState{Name: u.Name})
	}
	for _, u := range cat.Boosters {
		s.Boosters = append(s.Boosters, UpgradeState{Name: u.Name})
	}
	for _, a := range cat.Achievements {
		s.Achievements = append(s.Achievements, AchievementState{Name: a.Name})
	}
	return s
}

// PrestigeBonus is the effective production multiplier: the level-derived
// base combined with accumulated achievement rewards.
func (s *State) PrestigeBonus() float64 {
	return (1 + 0.1*float64(s.PrestigeLevel)) * s.AchievementBonus
}

// TotalParticles sums every particle count.
func (s *State) TotalParticles() Micros {
	var total Micros
	for _, id := range s.Order {
		total += s.Particles[id].Count
	}
	return total
}

// upgradeState finds the runtime flag for an upgrade name.
func (s *State) upgradeState(name string, booster bool) *UpgradeState {
	list := s.Upgrades
	if booster {
		list = s.Boosters
	}
	for i := range list {
		if list[i].Name == name {
			return &list[i]
		}
	}
	return nil
}
