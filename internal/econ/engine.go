package econ

import (
	"fmt"
	"math"
	"time"
)

// upgradeStacking is the generic per-purchased-upgrade production
// multiplier, applied on top of each upgrade's structural effect.
const upgradeStacking = 1.05

// maxCostExponent caps the cost curve exponent so math.Pow cannot
// overflow at absurd particle counts.
const maxCostExponent = 1000.0

// Engine advances the economy and executes player transactions against a
// State. It holds the immutable catalog and tuning; all mutable data lives
// in the State it is handed.
type Engine struct {
	cat   *Catalog
	rules Rules
}

// NewEngine creates an engine over the given catalog and rules.
func NewEngine(cat *Catalog, rules Rules) *Engine {
	return &Engine{cat: cat, rules: rules}
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *Catalog { return e.cat }

// Rules returns the engine's tuning.
func (e *Engine) Rules() Rules { return e.rules }

// Cost evaluates the price of the next unit of a particle at the given
// owned count. The exponent is the continuous count, not a purchase index,
// and the result is rounded to cents.
func (e *Engine) Cost(def *ParticleDef, count Micros) Micros {
	exp := count.Float()
	if exp > maxCostExponent {
		exp = maxCostExponent
	}
	raw := def.BaseCost.Float() * math.Pow(def.CostGrowth, exp)
	return FromFloat(raw).RoundCents()
}

// ProductionPerSecond is the current output rate of a particle: owned count
// times base rate, scaled by the prestige bonus and the 5% stacking bonus
// per purchased upgrade.
func (e *Engine) ProductionPerSecond(s *State, p *Particle) float64 {
	return p.Count.Float() * p.BaseProduction * s.PrestigeBonus() *
		math.Pow(upgradeStacking, float64(len(p.Purchased)))
}

// Advance moves the economy forward by dt and stamps s.LastUpdate with now.
// It returns one notification string per particle newly unlocked by the
// lifetime-earnings thresholds crossed during this tick.
//
// dt is clamped to [0, MaxCatchUp]: a backwards or absurdly large clock
// step (suspend/resume, manual clock changes) neither errors nor grants
// unbounded retroactive production.
func (e *Engine) Advance(s *State, dt time.Duration, now time.Time) []string {
	if dt < 0 {
		dt = 0
	}
	if e.rules.MaxCatchUp > 0 && dt > e.rules.MaxCatchUp {
		dt = e.rules.MaxCatchUp
	}
	seconds := dt.Seconds()

	var earned Micros
	for _, id := range s.Order {
		p := s.Particles[id]
		if !p.Unlocked {
			continue
		}
		produced := e.ProductionPerSecond(s, p) * seconds
		if produced <= 0 {
			continue
		}

		def := e.cat.Particle(id)
		if def.Produces == Currency {
			amount := FromFloat(produced)
			s.Cash += amount
			earned += amount
			continue
		}

		target, ok := s.Particles[def.Produces]
		if !ok || !target.Unlocked {
			// Producing into an unknown or still-locked pool is dropped;
			// locked counts must stay at zero.
			continue
		}
		target.Count = (target.Count + FromFloat(produced)).RoundCents()
	}
	s.TotalEarnings += earned

	var unlocked []string
	unlocked = e.applyUnlock(s, "beta", e.rules.BetaUnlockAt, unlocked)
	unlocked = e.applyUnlock(s, "gamma", e.rules.GammaUnlockAt, unlocked)

	s.LastUpdate = now
	return unlocked
}

// applyUnlock flips a particle to unlocked once lifetime earnings cross its
// threshold. The transition happens at most once and notifies at most once.
func (e *Engine) applyUnlock(s *State, id string, threshold Micros, msgs []string) []string {
	if threshold <= 0 || s.TotalEarnings < threshold {
		return msgs
	}
	p, ok := s.Particles[id]
	if !ok || p.Unlocked {
		return msgs
	}
	p.Unlocked = true
	def := e.cat.Particle(id)
	name := id
	if def != nil {
		name = def.Name
	}
	return append(msgs, fmt.Sprintf("%s particles unlocked! >>", name))
}
