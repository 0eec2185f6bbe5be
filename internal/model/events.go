package model

// Presentation-facing events emitted by the simulation. Renderers drive hit
// flashes, death animations and spawn effects from these instead of reading
// timers off entities.

// TargetKind identifies who received damage.
type TargetKind uint8

const (
	TargetPlayer TargetKind = iota
	TargetEnemy
)

// PlayerID is the target id used for the player in events.
const PlayerID uint32 = 0

// DamageEvent is emitted for every damage resolution, including dodges.
// Hits absorbed by an invulnerability window are not reported.
type DamageEvent struct {
	Target   TargetKind
	TargetID uint32
	Amount   float64
	Crit     bool
	Dodged   bool
	Position Vec2
}

// DeathStarted is emitted when an enemy enters its death sequence.
type DeathStarted struct {
	EnemyID  uint32
	Kind     string
	Position Vec2
	XPValue  int64
}

// SpawnResolved is emitted when a pre-spawn indicator becomes an enemy.
type SpawnResolved struct {
	EnemyID     uint32
	IndicatorID uint32
	Kind        string
	Position    Vec2
}
