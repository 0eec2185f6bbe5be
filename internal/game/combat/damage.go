package combat

import (
	"math"

	"github.com/udisondev/soma/internal/model"
)

// CalcEnemyDamage calculates projectile damage against an enemy.
// Formula: round(baseDamage × (1 + damage%/100)), ×2 on crit, never negative.
func CalcEnemyDamage(baseDamage, damagePercent float64, crit bool) float64 {
	dmg := math.Round(baseDamage * (1 + damagePercent/100))
	if crit {
		dmg *= 2
	}
	return math.Max(0, dmg)
}

// CalcCrit rolls a critical hit with critChance given in percent.
// Tests replace it to force or suppress crits.
var CalcCrit = func(rng model.RNG, critChance float64) bool {
	return model.RollPercent(rng, critChance)
}

// EffectiveRange возвращает дальность оружия с учётом стата range.
func EffectiveRange(w *model.Weapon, rangeStat float64) float64 {
	return math.Max(0, w.Range+rangeStat)
}

// AttackSpeedScale converts the attackSpeed percent into a multiplier for the
// time fed to weapon cooldowns.
func AttackSpeedScale(attackSpeed float64) float64 {
	return math.Max(0, 1+attackSpeed/100)
}
