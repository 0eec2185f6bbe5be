package model

// Weapon fires at most once per cooldown. Elapsed time starts at zero, so a
// fresh weapon waits one full cooldown before its first shot.
type Weapon struct {
	ID              string
	CooldownMs      float64
	Range           float64
	BaseDamage      float64
	ProjectileSpeed float64

	elapsedMs float64
}

// NewWeapon creates a weapon with zero elapsed time.
func NewWeapon(id string, cooldownMs, rng, baseDamage, projectileSpeed float64) *Weapon {
	return &Weapon{
		ID:              id,
		CooldownMs:      cooldownMs,
		Range:           rng,
		BaseDamage:      baseDamage,
		ProjectileSpeed: projectileSpeed,
	}
}

// Update advances the cooldown clock. Non-positive dt is ignored.
func (w *Weapon) Update(dtMs float64) {
	if dtMs > 0 {
		w.elapsedMs += dtMs
	}
}

// CanFire reports whether a full cooldown has elapsed since the last shot.
func (w *Weapon) CanFire() bool {
	return w.elapsedMs >= w.CooldownMs
}

// Fire resets the cooldown clock. Returns false if the weapon is not ready.
func (w *Weapon) Fire() bool {
	if !w.CanFire() {
		return false
	}
	w.elapsedMs = 0
	return true
}

// ElapsedMs returns time since the last shot.
func (w *Weapon) ElapsedMs() float64 { return w.elapsedMs }
