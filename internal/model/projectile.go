package model

import "math"

// maxSweepSteps bounds the sub-steps of one Sweep call.
const maxSweepSteps = 256

// Projectile flies in a straight line fixed at fire time; it is never re-aimed.
type Projectile struct {
	ID       uint32
	WeaponID string
	Position Vec2
	Velocity Vec2 // px/s
	Radius   float64
	Damage   float64
	Crit     bool

	traveled  float64
	maxTravel float64
}

// NewProjectile creates a projectile moving along dir (unit vector) at speed.
func NewProjectile(id uint32, weaponID string, from, dir Vec2, speed, radius, damage float64, crit bool, maxTravel float64) *Projectile {
	return &Projectile{
		ID:        id,
		WeaponID:  weaponID,
		Position:  from,
		Velocity:  dir.Scale(speed),
		Radius:    radius,
		Damage:    damage,
		Crit:      crit,
		maxTravel: maxTravel,
	}
}

// Advance moves the projectile by velocity×dt.
func (p *Projectile) Advance(dtMs float64) {
	if dtMs <= 0 {
		return
	}
	step := p.Velocity.Scale(dtMs / 1000)
	p.Position = p.Position.Add(step)
	p.traveled += step.Len()
}

// Sweep advances the projectile like Advance, but in sub-steps no longer
// than its radius, and calls hit at each intermediate position so a long
// frame cannot carry it across an enemy. It stops at the first position
// where hit returns true, or once the projectile has used up its travel,
// and reports whether something was hit.
func (p *Projectile) Sweep(dtMs float64, hit func(pos Vec2) bool) bool {
	if dtMs <= 0 {
		return false
	}
	start, startTraveled := p.Position, p.traveled
	step := p.Velocity.Scale(dtMs / 1000)
	dist := step.Len()

	n := 1
	if p.Radius > 0 && dist > p.Radius {
		n = min(int(math.Ceil(dist/p.Radius)), maxSweepSteps)
	}
	for k := 1; k <= n; k++ {
		if k == n {
			p.Position = start.Add(step)
			p.traveled = startTraveled + dist
		} else {
			f := float64(k) / float64(n)
			p.Position = start.Add(step.Scale(f))
			p.traveled = startTraveled + dist*f
		}
		if hit(p.Position) {
			return true
		}
		if p.maxTravel > 0 && p.traveled >= p.maxTravel {
			return false
		}
	}
	return false
}

// Traveled returns the distance flown so far.
func (p *Projectile) Traveled() float64 { return p.traveled }

// Expired reports whether the projectile flew past its max travel or left the world.
func (p *Projectile) Expired(bounds Bounds) bool {
	if p.maxTravel > 0 && p.traveled >= p.maxTravel {
		return true
	}
	return bounds.Valid() && !bounds.Contains(p.Position)
}
