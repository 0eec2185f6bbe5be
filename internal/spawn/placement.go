package spawn

import "github.com/udisondev/soma/internal/model"

// randomPoint returns a uniform point inside bounds shrunk by margin on every
// side. An axis narrower than twice the margin collapses to its middle.
func randomPoint(rng model.RNG, bounds model.Bounds, margin float64) model.Vec2 {
	return model.Vec2{
		X: randomAxis(rng, bounds.Width, margin),
		Y: randomAxis(rng, bounds.Height, margin),
	}
}

func randomAxis(rng model.RNG, size, margin float64) float64 {
	lo, hi := margin, size-margin
	if lo >= hi {
		return size / 2
	}
	return lo + rng.Float64()*(hi-lo)
}

// placeClear picks a point that does not overlap the player. After
// MaxPlacementAttempts misses the last candidate is used anyway; a blocked
// indicator relocates again on its next expiry.
func (d *Director) placeClear(player model.Rect, bounds model.Bounds) model.Vec2 {
	attempts := max(1, d.cfg.MaxPlacementAttempts)

	var p model.Vec2
	for range attempts {
		p = randomPoint(d.rng, bounds, d.cfg.EdgeMargin)
		if !player.IntersectsCircle(p, d.cfg.IndicatorRadius) {
			return p
		}
	}
	return p
}
