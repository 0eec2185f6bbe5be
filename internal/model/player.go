package model

import (
	"math"

	"github.com/udisondev/soma/internal/data"
)

// PlayerParams задаёт параметры создания игрока.
type PlayerParams struct {
	Position          Vec2
	Width             float64
	Height            float64
	BaseSpeed         float64 // px/s before the speed stat
	InvulnerabilityMs float64
}

// DamageOutcome describes what a damage call did to the player.
type DamageOutcome struct {
	Requested float64
	Applied   float64
	Dodged    bool
	// Blocked is set when the hit landed inside an invulnerability window.
	Blocked bool
}

// Player описывает персонажа игрока. Хранит позицию, слои статов, оружие и экипировку.
// Уровень, текущее HP и опыт лежат как core-статы в базовом слое агрегатора.
type Player struct {
	Position Vec2

	width     float64
	height    float64
	baseSpeed float64

	stats     *StatAggregator
	equipment *Equipment
	weapons   []*Weapon

	invulnDurationMs float64
	invulnLeftMs     float64
	regenAcc         float64

	rng RNG
}

// NewPlayer создаёт игрока с полным HP.
func NewPlayer(defs StatDefinitions, params PlayerParams, rng RNG) *Player {
	p := &Player{
		Position:         params.Position,
		width:            params.Width,
		height:           params.Height,
		baseSpeed:        params.BaseSpeed,
		stats:            NewStatAggregator(defs),
		equipment:        NewEquipment(),
		invulnDurationMs: params.InvulnerabilityMs,
		rng:              rng,
	}
	p.SetHealth(p.MaxHealth())
	return p
}

// Stats returns the player's aggregator.
func (p *Player) Stats() *StatAggregator { return p.stats }

// Equipment returns the equipped body parts.
func (p *Player) Equipment() *Equipment { return p.equipment }

// Footprint returns the player's hitbox.
func (p *Player) Footprint() Rect { return NewRect(p.Position, p.width, p.height) }

// Health returns current HP.
func (p *Player) Health() float64 { return p.stats.Total(data.StatCurrentHP) }

// MaxHealth returns max HP after all layers.
func (p *Player) MaxHealth() float64 { return p.stats.Total(data.StatMaxHP) }

// SetHealth sets current HP clamped to [0, MaxHealth].
func (p *Player) SetHealth(hp float64) {
	p.stats.SetBase(data.StatCurrentHP, clamp(hp, 0, p.MaxHealth()))
}

// Heal adds HP up to MaxHealth. Dead players are not healed.
func (p *Player) Heal(amount float64) {
	if amount <= 0 || p.IsDead() {
		return
	}
	p.SetHealth(p.Health() + amount)
}

// IsDead reports HP ≤ 0.
func (p *Player) IsDead() bool { return p.Health() <= 0 }

// IsInvulnerable reports whether an invulnerability window is active.
func (p *Player) IsInvulnerable() bool { return p.invulnLeftMs > 0 }

// InvulnerabilityLeftMs returns the remaining window.
func (p *Player) InvulnerabilityLeftMs() float64 { return p.invulnLeftMs }

// Level returns the level core stat.
func (p *Player) Level() int { return int(p.stats.Total(data.StatLevel)) }

// XP returns the cumulative experience core stat.
func (p *Player) XP() int64 { return int64(p.stats.Total(data.StatXP)) }

// Speed returns movement speed in px/s: base × (1 + speed%/100), never negative.
func (p *Player) Speed() float64 {
	return math.Max(0, p.baseSpeed*(1+p.stats.Total(data.StatSpeed)/100))
}

// Weapons returns the weapon list in firing order.
func (p *Player) Weapons() []*Weapon { return p.weapons }

// AddWeapon appends a weapon.
func (p *Player) AddWeapon(w *Weapon) {
	if w != nil {
		p.weapons = append(p.weapons, w)
	}
}

// Equip puts a body part on and recomputes the gear layer.
func (p *Player) Equip(part *data.BodyPart) *data.BodyPart {
	prev := p.equipment.Equip(part)
	p.refreshGear()
	return prev
}

// Unequip removes the part in slot and recomputes the gear layer.
func (p *Player) Unequip(slot string) *data.BodyPart {
	prev := p.equipment.Unequip(slot)
	p.refreshGear()
	return prev
}

func (p *Player) refreshGear() {
	p.stats.ReplaceGear(p.equipment.GearTotals())
	// Max HP may have dropped below current HP.
	p.SetHealth(p.Health())
}

// Update advances the invulnerability window and HP regeneration.
// hpRegen is HP per second; fractions accumulate across frames.
func (p *Player) Update(dtMs float64) {
	if dtMs <= 0 {
		return
	}
	if p.invulnLeftMs > 0 {
		p.invulnLeftMs = math.Max(0, p.invulnLeftMs-dtMs)
	}
	if p.IsDead() {
		return
	}

	regen := p.stats.Total(data.StatHPRegen)
	if regen <= 0 || p.Health() >= p.MaxHealth() {
		p.regenAcc = 0
		return
	}
	p.regenAcc += regen * dtMs / 1000
	if whole := math.Floor(p.regenAcc); whole >= 1 {
		p.regenAcc -= whole
		p.Heal(whole)
	}
}

// TakeDamage applies a hit to the player.
//
// Inside an invulnerability window the call is a no-op. Otherwise armor
// reduces the hit with a floor of 1, then the dodge roll may negate it. A hit
// that lands deducts HP and opens a new invulnerability window.
func (p *Player) TakeDamage(amount float64) DamageOutcome {
	out := DamageOutcome{Requested: amount}
	if amount <= 0 || math.IsNaN(amount) || p.IsDead() {
		return out
	}
	if p.IsInvulnerable() {
		out.Blocked = true
		return out
	}

	armor := p.stats.Total(data.StatArmor)
	reduced := math.Max(1, amount*(1-armor/100))

	if RollPercent(p.rng, p.stats.Total(data.StatDodge)) {
		out.Dodged = true
		return out
	}

	p.SetHealth(p.Health() - reduced)
	p.invulnLeftMs = p.invulnDurationMs
	out.Applied = reduced
	return out
}
