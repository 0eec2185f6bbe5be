package simulation

import (
	"github.com/udisondev/soma/internal/config"
	"github.com/udisondev/soma/internal/game/combat"
	"github.com/udisondev/soma/internal/model"
	"github.com/udisondev/soma/internal/spawn"
)

// Phase is the session lifecycle.
type Phase uint8

const (
	// PhaseIdle: between waves, waiting for StartWave.
	PhaseIdle Phase = iota
	PhaseWave
	// PhaseDead is terminal.
	PhaseDead
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWave:
		return "wave"
	case PhaseDead:
		return "dead"
	default:
		return "unknown"
	}
}

// EnemyTemplateForWave applies the linear per-wave growth of cfg.
// Wave 1 is the configured base enemy.
func EnemyTemplateForWave(cfg config.EnemyConfig, wave int) model.EnemyTemplate {
	n := float64(max(1, wave) - 1)
	return model.EnemyTemplate{
		Kind:            cfg.Kind,
		MaxHP:           cfg.MaxHP + cfg.HPPerWave*n,
		ContactDamage:   max(0, cfg.ContactDamage+cfg.DamagePerWave*n),
		Speed:           max(0, cfg.Speed+cfg.SpeedPerWave*n),
		Width:           cfg.Width,
		Height:          cfg.Height,
		XPValue:         max(0, cfg.XPValue+cfg.XPPerWave*int64(n)),
		DeathDurationMs: float64(cfg.DeathDurationMs),
	}
}

func spawnConfig(cfg config.SpawnConfig) spawn.Config {
	return spawn.Config{
		PollIntervalMs:       float64(cfg.PollIntervalMs),
		BaseProbability:      cfg.BaseProbability,
		Boost:                cfg.Boost,
		MissedSpawnIncrement: cfg.MissedSpawnIncrement,
		TargetEnemyCount:     cfg.TargetForWave(1),
		CountdownMs:          float64(cfg.CountdownMs),
		FadeMs:               float64(cfg.FadeMs),
		PulseHz:              cfg.PulseHz,
		IndicatorRadius:      cfg.IndicatorRadius,
		EdgeMargin:           cfg.EdgeMargin,
		MaxPlacementAttempts: cfg.MaxPlacementAttempts,
		MaxIndicators:        cfg.MaxIndicators,
	}
}

func combatConfig(cfg config.CombatConfig) combat.Config {
	return combat.Config{
		ProjectileSpeed:  cfg.ProjectileSpeed,
		ProjectileRadius: cfg.ProjectileRadius,
		TravelFactor:     cfg.TravelFactor,
	}
}
