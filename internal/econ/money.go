// Package econ implements the incremental-economy engine: particle
// production, purchases, prestige resets and achievements. All quantity
// arithmetic uses a fixed-point representation so that repeated small
// production ticks accumulate without float drift.
package econ

import (
	"fmt"
	"math"
)

// Micros is a fixed-point quantity: 1 game unit = 1,000,000 micros.
// Cash, particle counts, costs and lifetime earnings are all Micros.
type Micros int64

const (
	// PerUnit is the number of micros in one whole unit.
	PerUnit Micros = 1_000_000

	// perCent is the number of micros in 0.01 units.
	perCent Micros = 10_000
)

// maxFloat is the largest float64 that still converts safely to Micros.
const maxFloat = float64(math.MaxInt64) / float64(PerUnit)

// FromUnits converts a whole number of units to Micros.
func FromUnits(n int64) Micros {
	return Micros(n) * PerUnit
}

// FromFloat converts a unit quantity to Micros, rounding to the nearest
// micro. Values beyond the representable range saturate instead of
// overflowing, so a runaway production formula cannot wrap negative.
func FromFloat(f float64) Micros {
	if math.IsNaN(f) {
		return 0
	}
	if f >= maxFloat {
		return Micros(math.MaxInt64)
	}
	if f <= -maxFloat {
		return Micros(math.MinInt64)
	}
	return Micros(math.Round(f * float64(PerUnit)))
}

// Float returns the quantity in units.
func (m Micros) Float() float64 {
	return float64(m) / float64(PerUnit)
}

// Units returns the whole-unit part, truncated toward zero.
func (m Micros) Units() int64 {
	return int64(m / PerUnit)
}

// RoundCents rounds to two decimal places (the resolution particle pools
// are clamped to after each production tick).
func (m Micros) RoundCents() Micros {
	half := perCent / 2
	if m < 0 {
		return ((m - half) / perCent) * perCent
	}
	return ((m + half) / perCent) * perCent
}

// String formats the quantity with two decimal places.
func (m Micros) String() string {
	return fmt.Sprintf("%.2f", m.Float())
}

// Format returns a compact human-readable form: 1234.56, 12.34K, 5.67M.
func (m Micros) Format() string {
	v := m.Float()
	switch {
	case v >= 1_000_000 || v <= -1_000_000:
		return fmt.Sprintf("%.2fM", v/1_000_000)
	case v >= 1_000 || v <= -1_000:
		return fmt.Sprintf("%.2fK", v/1_000)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
