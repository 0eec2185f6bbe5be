package testutil

// FixedRNG always returns the same draw.
//
// Draw 0 makes every roll with a positive chance succeed; draw 1 makes every
// roll fail, even at chance 1.
type FixedRNG float64

// Float64 implements model.RNG.
func (f FixedRNG) Float64() float64 { return float64(f) }

// Always-succeed and always-fail draws.
const (
	AlwaysSucceed FixedRNG = 0
	AlwaysFail    FixedRNG = 1
)

// SequenceRNG replays draws in order, repeating the last one when exhausted.
// Calls counts how many draws were consumed.
type SequenceRNG struct {
	Draws []float64
	Calls int
}

// Float64 implements model.RNG.
func (s *SequenceRNG) Float64() float64 {
	s.Calls++
	if len(s.Draws) == 0 {
		return 0
	}
	i := s.Calls - 1
	if i >= len(s.Draws) {
		i = len(s.Draws) - 1
	}
	return s.Draws[i]
}

// CountingRNG wraps a fixed draw and counts calls.
type CountingRNG struct {
	Draw  float64
	Calls int
}

// Float64 implements model.RNG.
func (c *CountingRNG) Float64() float64 {
	c.Calls++
	return c.Draw
}
