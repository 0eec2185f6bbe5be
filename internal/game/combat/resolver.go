package combat

import (
	"log/slog"

	"github.com/udisondev/soma/internal/data"
	"github.com/udisondev/soma/internal/model"
)

// Config содержит параметры снарядов.
type Config struct {
	// ProjectileSpeed is used for weapons that do not set their own, px/s.
	ProjectileSpeed  float64
	ProjectileRadius float64
	// TravelFactor × effective range is how far a projectile flies.
	TravelFactor float64
}

// DefaultConfig returns the stock projectile tuning.
func DefaultConfig() Config {
	return Config{
		ProjectileSpeed:  600,
		ProjectileRadius: 6,
		TravelFactor:     1.5,
	}
}

// HitResult описывает одно попадание снаряда (для наблюдения в тестах).
type HitResult struct {
	ProjectileID uint32
	WeaponID     string
	EnemyID      uint32
	Damage       float64
	Crit         bool
	Killed       bool
}

// Resolver handles weapon fire, projectiles, collisions and enemy removal
// for one session. The enemy roster and projectile list belong to the caller;
// Resolver only mutates them inside its own phase.
type Resolver struct {
	cfg Config
	rng model.RNG

	nextProjectileID uint32

	// hitObserver вызывается для наблюдения за попаданиями (nil в production).
	hitObserver func(HitResult)
}

// NewResolver creates a resolver.
func NewResolver(cfg Config, rng model.RNG) *Resolver {
	return &Resolver{cfg: cfg, rng: rng}
}

// SetHitObserver sets a callback invoked for every projectile hit.
func (r *Resolver) SetHitObserver(fn func(HitResult)) {
	r.hitObserver = fn
}

// FireWeapons advances every weapon by dtMs scaled by the attackSpeed stat
// and fires the ready ones at the nearest enemy in range. New projectiles
// are appended to projectiles.
//
// A ready weapon with no target, or with a target at zero distance, keeps
// its elapsed time and fires on a later frame.
func (r *Resolver) FireWeapons(player *model.Player, enemies []*model.Enemy, projectiles []*model.Projectile, dtMs float64) []*model.Projectile {
	if player.IsDead() {
		return projectiles
	}
	stats := player.Stats()
	scaled := dtMs * AttackSpeedScale(stats.Total(data.StatAttackSpeed))
	rangeStat := stats.Total(data.StatRange)

	for _, w := range player.Weapons() {
		w.Update(scaled)
		if !w.CanFire() {
			continue
		}
		maxRange := EffectiveRange(w, rangeStat)
		target := NearestTarget(player.Position, enemies, maxRange)
		if target == nil {
			continue
		}
		dir, ok := target.Position.Sub(player.Position).Normalized()
		if !ok {
			continue
		}
		w.Fire()

		crit := CalcCrit(r.rng, stats.Total(data.StatCritChance))
		dmg := CalcEnemyDamage(w.BaseDamage, stats.Total(data.StatDamage), crit)
		speed := w.ProjectileSpeed
		if speed <= 0 {
			speed = r.cfg.ProjectileSpeed
		}

		r.nextProjectileID++
		projectiles = append(projectiles, model.NewProjectile(
			r.nextProjectileID, w.ID, player.Position, dir, speed,
			r.cfg.ProjectileRadius, dmg, crit, maxRange*r.cfg.TravelFactor,
		))
	}
	return projectiles
}

// UpdateProjectiles moves projectiles, applies hits to the first living
// enemy each one touches along its path this frame and drops spent or
// expired projectiles.
func (r *Resolver) UpdateProjectiles(
	projectiles []*model.Projectile,
	enemies []*model.Enemy,
	bounds model.Bounds,
	dtMs float64,
) ([]*model.Projectile, []model.DamageEvent, []model.DeathStarted) {
	var (
		events []model.DamageEvent
		deaths []model.DeathStarted
		spent  = make(map[uint32]struct{})
	)

	for _, p := range projectiles {
		var e *model.Enemy
		p.Sweep(dtMs, func(pos model.Vec2) bool {
			e = firstTouched(enemies, pos, p.Radius)
			return e != nil
		})
		if e == nil {
			continue
		}

		applied, killed := e.TakeDamage(p.Damage)
		spent[p.ID] = struct{}{}

		events = append(events, model.DamageEvent{
			Target:   model.TargetEnemy,
			TargetID: e.ID,
			Amount:   applied,
			Crit:     p.Crit,
			Position: e.Position,
		})
		if killed {
			deaths = append(deaths, model.DeathStarted{
				EnemyID:  e.ID,
				Kind:     e.Kind,
				Position: e.Position,
				XPValue:  e.XPValue,
			})
		}
		if r.hitObserver != nil {
			r.hitObserver(HitResult{
				ProjectileID: p.ID,
				WeaponID:     p.WeaponID,
				EnemyID:      e.ID,
				Damage:       applied,
				Crit:         p.Crit,
				Killed:       killed,
			})
		}
	}

	for i := len(projectiles) - 1; i >= 0; i-- {
		p := projectiles[i]
		if _, ok := spent[p.ID]; ok || p.Expired(bounds) {
			projectiles = append(projectiles[:i], projectiles[i+1:]...)
		}
	}
	return projectiles, events, deaths
}

// firstTouched returns the first living enemy overlapping a projectile
// circle at pos.
func firstTouched(enemies []*model.Enemy, pos model.Vec2, radius float64) *model.Enemy {
	for _, e := range enemies {
		if e.IsAlive() && e.Footprint().IntersectsCircle(pos, radius) {
			return e
		}
	}
	return nil
}

// ApplyContactDamage lets every living enemy touching the player hit it.
// Only the first landed hit counts; the invulnerability window it opens
// absorbs the rest. Absorbed hits produce no event.
func (r *Resolver) ApplyContactDamage(player *model.Player, enemies []*model.Enemy) []model.DamageEvent {
	if player.IsDead() {
		return nil
	}
	footprint := player.Footprint()

	var events []model.DamageEvent
	for _, e := range enemies {
		if !e.IsAlive() || e.ContactDamage <= 0 || !footprint.Overlaps(e.Footprint()) {
			continue
		}
		out := player.TakeDamage(e.ContactDamage)
		if out.Blocked || (out.Applied == 0 && !out.Dodged) {
			continue
		}
		events = append(events, model.DamageEvent{
			Target:   model.TargetPlayer,
			TargetID: model.PlayerID,
			Amount:   out.Applied,
			Dodged:   out.Dodged,
			Position: player.Position,
		})
		if player.IsDead() {
			slog.Debug("player killed", "enemyID", e.ID, "kind", e.Kind)
			break
		}
	}
	return events
}

// UpdateDeaths advances death sequences and removes finished enemies.
func (r *Resolver) UpdateDeaths(enemies []*model.Enemy, dtMs float64) []*model.Enemy {
	for i := len(enemies) - 1; i >= 0; i-- {
		e := enemies[i]
		if e.IsAlive() {
			continue
		}
		if e.UpdateDeath(dtMs) {
			enemies = append(enemies[:i], enemies[i+1:]...)
		}
	}
	return enemies
}
