package model

import "math"

// EnemyTemplate хранит параметры врага одного вида на конкретной волне.
type EnemyTemplate struct {
	Kind            string
	MaxHP           float64
	ContactDamage   float64
	Speed           float64 // px/s
	Width           float64
	Height          float64
	XPValue         int64
	DeathDurationMs float64
}

// EnemyState is the enemy lifecycle.
type EnemyState uint8

const (
	EnemyAlive EnemyState = iota
	// EnemyDying: death sequence running; no damage dealt or taken,
	// excluded from targeting and spawn census.
	EnemyDying
	// EnemyGone: death sequence finished, ready for removal.
	EnemyGone
)

// Enemy описывает врага. В отличие от игрока использует плоские поля вместо слоёв статов.
type Enemy struct {
	ID       uint32
	Kind     string
	Position Vec2

	HP            float64
	MaxHP         float64
	ContactDamage float64
	Speed         float64
	XPValue       int64

	width           float64
	height          float64
	state           EnemyState
	deathDurationMs float64
	deathLeftMs     float64
}

// NewEnemy создаёт живого врага из шаблона.
func NewEnemy(id uint32, t EnemyTemplate, pos Vec2) *Enemy {
	hp := math.Max(1, t.MaxHP)
	return &Enemy{
		ID:              id,
		Kind:            t.Kind,
		Position:        pos,
		HP:              hp,
		MaxHP:           hp,
		ContactDamage:   t.ContactDamage,
		Speed:           t.Speed,
		XPValue:         t.XPValue,
		width:           t.Width,
		height:          t.Height,
		deathDurationMs: t.DeathDurationMs,
	}
}

// Footprint returns the enemy hitbox.
func (e *Enemy) Footprint() Rect { return NewRect(e.Position, e.width, e.height) }

// State returns the lifecycle state.
func (e *Enemy) State() EnemyState { return e.state }

// IsAlive reports a living enemy that is not in its death sequence.
func (e *Enemy) IsAlive() bool { return e.state == EnemyAlive }

// IsDying reports an enemy in its death sequence.
func (e *Enemy) IsDying() bool { return e.state == EnemyDying }

// IsGone reports an enemy whose death sequence has finished.
func (e *Enemy) IsGone() bool { return e.state == EnemyGone }

// TakeDamage subtracts HP. Returns the HP actually removed and whether this
// hit started the death sequence. Dying enemies take no damage.
func (e *Enemy) TakeDamage(amount float64) (applied float64, killed bool) {
	if !e.IsAlive() || amount <= 0 || math.IsNaN(amount) {
		return 0, false
	}
	applied = math.Min(amount, e.HP)
	e.HP -= amount
	if e.HP <= 0 {
		e.HP = 0
		e.startDying()
		return applied, true
	}
	return applied, false
}

func (e *Enemy) startDying() {
	e.state = EnemyDying
	e.deathLeftMs = e.deathDurationMs
	if e.deathLeftMs <= 0 {
		e.state = EnemyGone
	}
}

// UpdateDeath advances the death sequence. Returns true once it is finished.
func (e *Enemy) UpdateDeath(dtMs float64) bool {
	if e.state != EnemyDying {
		return e.state == EnemyGone
	}
	e.deathLeftMs -= dtMs
	if e.deathLeftMs <= 0 {
		e.deathLeftMs = 0
		e.state = EnemyGone
	}
	return e.state == EnemyGone
}

// MoveToward moves the enemy toward target by speed×dt, never overshooting.
// Zero distance is a no-op.
func (e *Enemy) MoveToward(target Vec2, dtMs float64) {
	if !e.IsAlive() || dtMs <= 0 || e.Speed <= 0 {
		return
	}
	delta := target.Sub(e.Position)
	dist := delta.Len()
	dir, ok := delta.Normalized()
	if !ok {
		return
	}
	step := e.Speed * dtMs / 1000
	if step >= dist {
		e.Position = target
		return
	}
	e.Position = e.Position.Add(dir.Scale(step))
}
