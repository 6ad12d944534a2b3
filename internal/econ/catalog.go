package econ

import (
	"github.com/charmbracelet/log"
)

// Currency is the id of the spendable cash resource. It is not a particle:
// particles that produce it credit the state's cash balance directly.
const Currency = "cash"

// EffectKind selects how an upgrade modifies its target particle's base
// production rate. Effects are data, not callbacks, so they serialize and
// test in isolation.
type EffectKind int

const (
	// EffectMultiplyBase multiplies the target's base production by Factor.
	EffectMultiplyBase EffectKind = iota
	// EffectSetBase sets the target's base production to Value.
	EffectSetBase
)

// Effect is the structural production change applied once when an upgrade
// is purchased. The generic 5%-per-upgrade stacking multiplier is layered
// on top of this by the engine.
type Effect struct {
	Kind   EffectKind
	Factor float64 // used by EffectMultiplyBase
	Value  float64 // used by EffectSetBase, units per second
}

// PredicateKind selects the condition an achievement checks against the
// full game state.
type PredicateKind int

const (
	// PredAnyParticleOwned is true once any particle count is positive.
	PredAnyParticleOwned PredicateKind = iota
	// PredTotalParticles is true once the summed particle count reaches Threshold.
	PredTotalParticles
	// PredTotalEarnings is true once lifetime earnings reach Threshold.
	PredTotalEarnings
)

// Predicate is a serializable achievement condition.
type Predicate struct {
	Kind      PredicateKind
	Threshold Micros
}

// ParticleDef is the static definition of a particle type.
type ParticleDef struct {
	ID             string
	Name           string
	BaseCost       Micros
	CostGrowth     float64
	BaseProduction float64 // units produced per owned unit per second
	Produces       string  // particle id, or Currency
	Color          [3]uint8
	Description    string
	StartUnlocked  bool
}

// UpgradeDef is the static definition of a one-shot upgrade.
type UpgradeDef struct {
	Name        string
	Cost        Micros
	CostGrowth  float64 // kept for save-schema parity; upgrades are one-shot
	Description string
	Requirement string // particle that must be unlocked for the upgrade to show
	Target      string // particle whose production the upgrade modifies
	Currency    string // Currency, or a particle id to spend from
	Effect      Effect
}

// AchievementDef is the static definition of an achievement.
type AchievementDef struct {
	Name        string
	Description string
	Predicate   Predicate
	Reward      float64 // multiplied into the prestige bonus once
}

// Catalog holds the full static game content. It is built once at startup
// and shared read-only by the engine; nothing mutates it after Validate.
type Catalog struct {
	Particles    []ParticleDef
	Upgrades     []UpgradeDef
	Boosters     []UpgradeDef
	Achievements []AchievementDef
}

// DefaultCatalog returns the built-in game content.
//
// Beta starts with zero base production: its rate is established by the
// Hyperspace Fabrication upgrade rather than a free zero-count rate.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Particles: []ParticleDef{
			{
				ID:             "alpha",
				Name:           "Alpha",
				BaseCost:       FromUnits(10),
				CostGrowth:     1.15,
				BaseProduction: 1.0,
				Produces:       Currency,
				Color:          [3]uint8{100, 200, 255},
				Description:    "Basic quantum particle, stable and reliable.",
				StartUnlocked:  true,
			},
			{
				ID:             "beta",
				Name:           "Beta",
				BaseCost:       FromUnits(50),
				CostGrowth:     1.2,
				BaseProduction: 0.0,
				Produces:       "beta",
				Color:          [3]uint8{255, 150, 100},
				Description:    "Generates Beta particles which boost Alpha production via upgrades.",
			},
			{
				ID:             "gamma",
				Name:           "Gamma",
				BaseCost:       FromUnits(250),
				CostGrowth:     1.25,
				BaseProduction: 10.0,
				Produces:       "gamma",
				Color:          [3]uint8{150, 255, 100},
				Description:    "Highly energetic particle used to boost Beta production.",
			},
		},
		Upgrades: []UpgradeDef{
			{
				Name:        "Quantum Computing",
				Cost:        FromUnits(100),
				CostGrowth:  1.5,
				Description: "Doubles Alpha particle production",
				Requirement: "alpha",
				Target:      "alpha",
				Currency:    Currency,
				Effect:      Effect{Kind: EffectMultiplyBase, Factor: 2},
			},
			{
				Name:        "Hyperspace Fabrication",
				Cost:        FromUnits(500),
				CostGrowth:  1.8,
				Description: "Establishes Beta particle output",
				Requirement: "beta",
				Target:      "beta",
				Currency:    Currency,
				Effect:      Effect{Kind: EffectSetBase, Value: 3.0},
			},
			{
				Name:        "Gamma Resonance",
				Cost:        FromUnits(2500),
				CostGrowth:  2.0,
				Description: "Quadruples Gamma particle output",
				Requirement: "gamma",
				Target:      "gamma",
				Currency:    Currency,
				Effect:      Effect{Kind: EffectMultiplyBase, Factor: 4},
			},
		},
		Boosters: []UpgradeDef{
			{
				Name:        "Beta Booster",
				Cost:        FromUnits(10),
				CostGrowth:  1.2,
				Description: "Boosts Alpha particle production by 10%",
				Requirement: "beta",
				Target:      "alpha",
				Currency:    "beta",
				Effect:      Effect{Kind: EffectMultiplyBase, Factor: 1.1},
			},
			{
				Name:        "Gamma Booster",
				Cost:        FromUnits(50),
				CostGrowth:  1.3,
				Description: "Boosts Beta particle production by 15%",
				Requirement: "gamma",
				Target:      "beta",
				Currency:    "gamma",
				Effect:      Effect{Kind: EffectMultiplyBase, Factor: 1.15},
			},
		},
		Achievements: []AchievementDef{
			{
				Name:        "Quantum Pioneer",
				Description: "Produce your first particle",
				Predicate:   Predicate{Kind: PredAnyParticleOwned},
				Reward:      1.1,
			},
			{
				Name:        "Particle Magnate",
				Description: "Own 50 total particles",
				Predicate:   Predicate{Kind: PredTotalParticles, Threshold: FromUnits(50)},
				Reward:      1.2,
			},
			{
				Name:        "Master of Energy",
				Description: "Reach $1,000,000 total earnings",
				Predicate:   Predicate{Kind: PredTotalEarnings, Threshold: FromUnits(1_000_000)},
				Reward:      1.5,
			},
		},
	}
}

// Particle returns the definition with the given id, or nil.
func (c *Catalog) Particle(id string) *ParticleDef {
	for i := range c.Particles {
		if c.Particles[i].ID == id {
			return &c.Particles[i]
		}
	}
	return nil
}

// Upgrade returns the definition with the given name, searching main
// upgrades then boosters. The second result reports whether the upgrade is
// a booster.
func (c *Catalog) Upgrade(name string) (*UpgradeDef, bool) {
	for i := range c.Upgrades {
		if c.Upgrades[i].Name == name {
			return &c.Upgrades[i], false
		}
	}
	for i := range c.Boosters {
		if c.Boosters[i].Name == name {
			return &c.Boosters[i], true
		}
	}
	return nil, false
}

// UpgradesFor lists the names of all upgrades targeting the given particle,
// in declared order. Used for display and for the save schema.
func (c *Catalog) UpgradesFor(particleID string) []string {
	var names []string
	for _, u := range c.Upgrades {
		if u.Target == particleID {
			names = append(names, u.Name)
		}
	}
	for _, u := range c.Boosters {
		if u.Target == particleID {
			names = append(names, u.Name)
		}
	}
	return names
}

// Validate checks cross-references and drops upgrades that point at
// unknown particles, logging a warning for each. A broken definition
// excludes that upgrade from play rather than aborting the game.
func (c *Catalog) Validate(logger *log.Logger) {
	c.Upgrades = c.validUpgrades(c.Upgrades, logger)
	c.Boosters = c.validUpgrades(c.Boosters, logger)
}

func (c *Catalog) validUpgrades(defs []UpgradeDef, logger *log.Logger) []UpgradeDef {
	valid := defs[:0]
	for _, u := range defs {
		if c.Particle(u.Target) == nil {
			logger.Warn("upgrade references unknown target particle, excluding",
				"upgrade", u.Name, "target", u.Target)
			continue
		}
		if c.Particle(u.Requirement) == nil {
			logger.Warn("upgrade references unknown required particle, excluding",
				"upgrade", u.Name, "requirement", u.Requirement)
			continue
		}
		if u.Currency != Currency && c.Particle(u.Currency) == nil {
			logger.Warn("upgrade references unknown cost currency, excluding",
				"upgrade", u.Name, "currency", u.Currency)
			continue
		}
		valid = append(valid, u)
	}
	return valid
}
