package model

import (
	"math"
	"math/rand/v2"
)

// RNG is the source of uniform draws in [0, 1). *rand.Rand satisfies it;
// tests substitute fixed draws.
type RNG interface {
	Float64() float64
}

// NewRNG returns a seeded PCG generator.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Clamp01 clamps a probability to [0, 1]. NaN becomes 0.
func Clamp01(p float64) float64 {
	if math.IsNaN(p) || p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return p
}

// Roll draws once and reports success with probability chance (clamped).
// A zero chance never consumes a draw.
func Roll(rng RNG, chance float64) bool {
	chance = Clamp01(chance)
	if chance == 0 || rng == nil {
		return false
	}
	return rng.Float64() < chance
}

// RollPercent is Roll with chance given in percent.
func RollPercent(rng RNG, percent float64) bool {
	return Roll(rng, percent/100)
}
