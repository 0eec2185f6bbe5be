package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Data source kinds.
const (
	SourceDefaults = "defaults"
	SourceFile     = "file"
	SourceDatabase = "database"
)

// Simulation holds all configuration for a simulation run.
type Simulation struct {
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Seed for session RNGs. Zero picks a random seed per run.
	Seed uint64 `yaml:"seed" toml:"seed"`
	// Sessions is how many independent sessions the runner plays in parallel.
	Sessions int `yaml:"sessions" toml:"sessions"`
	TickMs   int `yaml:"tick_ms" toml:"tick_ms"`
	// MaxWaves stops a session after this many waves. Zero means until death.
	MaxWaves int `yaml:"max_waves" toml:"max_waves"`
	// Realtime paces ticks with a wall-clock ticker instead of running flat out.
	Realtime bool `yaml:"realtime" toml:"realtime"`

	World     WorldConfig     `yaml:"world" toml:"world"`
	Player    PlayerConfig    `yaml:"player" toml:"player"`
	Spawn     SpawnConfig     `yaml:"spawn" toml:"spawn"`
	Combat    CombatConfig    `yaml:"combat" toml:"combat"`
	Enemy     EnemyConfig     `yaml:"enemy" toml:"enemy"`
	Data      DataConfig      `yaml:"data" toml:"data"`
	Scripting ScriptingConfig `yaml:"scripting" toml:"scripting"`
}

// WorldConfig is the playable area in pixels.
type WorldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// WeaponConfig describes a starting weapon.
type WeaponConfig struct {
	ID              string  `yaml:"id" toml:"id"`
	CooldownMs      int     `yaml:"cooldown_ms" toml:"cooldown_ms"`
	Range           float64 `yaml:"range" toml:"range"`
	BaseDamage      float64 `yaml:"base_damage" toml:"base_damage"`
	ProjectileSpeed float64 `yaml:"projectile_speed" toml:"projectile_speed"` // 0 = combat default
}

// PlayerConfig holds player body and timing parameters.
type PlayerConfig struct {
	Width             float64        `yaml:"width" toml:"width"`
	Height            float64        `yaml:"height" toml:"height"`
	BaseSpeed         float64        `yaml:"base_speed" toml:"base_speed"` // px/s
	InvulnerabilityMs int            `yaml:"invulnerability_ms" toml:"invulnerability_ms"`
	Weapons           []WeaponConfig `yaml:"weapons" toml:"weapons"`
}

// SpawnConfig holds spawn director tuning.
type SpawnConfig struct {
	PollIntervalMs int `yaml:"poll_interval_ms" toml:"poll_interval_ms"`

	BaseProbability      float64 `yaml:"base_probability" toml:"base_probability"`
	Boost                float64 `yaml:"boost" toml:"boost"`
	MissedSpawnIncrement float64 `yaml:"missed_spawn_increment" toml:"missed_spawn_increment"`

	// Target enemy count for wave n is TargetBase + TargetPerWave×(n-1).
	TargetBase    int `yaml:"target_base" toml:"target_base"`
	TargetPerWave int `yaml:"target_per_wave" toml:"target_per_wave"`

	CountdownMs          int     `yaml:"countdown_ms" toml:"countdown_ms"`
	FadeMs               int     `yaml:"fade_ms" toml:"fade_ms"`
	PulseHz              float64 `yaml:"pulse_hz" toml:"pulse_hz"`
	IndicatorRadius      float64 `yaml:"indicator_radius" toml:"indicator_radius"`
	EdgeMargin           float64 `yaml:"edge_margin" toml:"edge_margin"`
	MaxPlacementAttempts int     `yaml:"max_placement_attempts" toml:"max_placement_attempts"`
	MaxIndicators        int     `yaml:"max_indicators" toml:"max_indicators"`
}

// TargetForWave returns the enemy count the director aims for in wave.
func (s SpawnConfig) TargetForWave(wave int) int {
	return max(0, s.TargetBase+s.TargetPerWave*(max(1, wave)-1))
}

// CombatConfig holds projectile tuning.
type CombatConfig struct {
	ProjectileSpeed  float64 `yaml:"projectile_speed" toml:"projectile_speed"`
	ProjectileRadius float64 `yaml:"projectile_radius" toml:"projectile_radius"`
	TravelFactor     float64 `yaml:"travel_factor" toml:"travel_factor"`
}

// EnemyConfig is the wave-1 enemy plus linear per-wave growth. Scripts may
// replace the scaling.
type EnemyConfig struct {
	Kind            string  `yaml:"kind" toml:"kind"`
	MaxHP           float64 `yaml:"max_hp" toml:"max_hp"`
	ContactDamage   float64 `yaml:"contact_damage" toml:"contact_damage"`
	Speed           float64 `yaml:"speed" toml:"speed"`
	Width           float64 `yaml:"width" toml:"width"`
	Height          float64 `yaml:"height" toml:"height"`
	XPValue         int64   `yaml:"xp_value" toml:"xp_value"`
	DeathDurationMs int     `yaml:"death_duration_ms" toml:"death_duration_ms"`

	HPPerWave     float64 `yaml:"hp_per_wave" toml:"hp_per_wave"`
	DamagePerWave float64 `yaml:"damage_per_wave" toml:"damage_per_wave"`
	SpeedPerWave  float64 `yaml:"speed_per_wave" toml:"speed_per_wave"`
	XPPerWave     int64   `yaml:"xp_per_wave" toml:"xp_per_wave"`
}

// DataConfig selects where configuration tables come from.
type DataConfig struct {
	Source   string         `yaml:"source" toml:"source"` // defaults | file | database
	Dir      string         `yaml:"dir" toml:"dir"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	// Migrate applies schema migrations before reading database tables.
	Migrate bool `yaml:"migrate" toml:"migrate"`
}

// ScriptingConfig points at an optional Lua file with formula overrides.
type ScriptingConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel: "info",
		Sessions: 1,
		TickMs:   16,
		MaxWaves: 3,
		World: WorldConfig{
			Width:  1600,
			Height: 900,
		},
		Player: PlayerConfig{
			Width:             40,
			Height:            40,
			BaseSpeed:         220,
			InvulnerabilityMs: 500,
			Weapons: []WeaponConfig{
				{ID: "spitter", CooldownMs: 500, Range: 320, BaseDamage: 5},
			},
		},
		Spawn: SpawnConfig{
			PollIntervalMs:       500,
			BaseProbability:      0.3,
			Boost:                0.4,
			MissedSpawnIncrement: 0.1,
			TargetBase:           6,
			TargetPerWave:        2,
			CountdownMs:          1500,
			FadeMs:               250,
			PulseHz:              2,
			IndicatorRadius:      24,
			EdgeMargin:           32,
			MaxPlacementAttempts: 8,
			MaxIndicators:        32,
		},
		Combat: CombatConfig{
			ProjectileSpeed:  600,
			ProjectileRadius: 6,
			TravelFactor:     1.5,
		},
		Enemy: EnemyConfig{
			Kind:            "crawler",
			MaxHP:           8,
			ContactDamage:   2,
			Speed:           70,
			Width:           28,
			Height:          28,
			XPValue:         4,
			DeathDurationMs: 400,
			HPPerWave:       4,
			DamagePerWave:   1,
			SpeedPerWave:    5,
			XPPerWave:       1,
		},
		Data: DataConfig{
			Source:   SourceDefaults,
			Dir:      "config/tables",
			Database: DefaultDatabase(),
		},
		Scripting: ScriptingConfig{
			Path: "config/formulas.lua",
		},
	}
}

// LoadSimulation loads simulation config from a YAML or TOML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()
	if _, err := loadFile(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate normalizes out-of-range tuning values back to defaults and
// rejects settings that cannot be normalized.
func (s *Simulation) Validate() error {
	def := DefaultSimulation()
	var errs []error

	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}

	switch s.Data.Source {
	case SourceDefaults, SourceFile, SourceDatabase:
	case "":
		s.Data.Source = SourceDefaults
	default:
		errs = append(errs, fmt.Errorf("unknown data source %q", s.Data.Source))
	}

	fixInt(&s.Sessions, def.Sessions, "sessions")
	fixInt(&s.TickMs, def.TickMs, "tick_ms")
	fixFloat(&s.World.Width, def.World.Width, "world.width")
	fixFloat(&s.World.Height, def.World.Height, "world.height")
	fixFloat(&s.Player.Width, def.Player.Width, "player.width")
	fixFloat(&s.Player.Height, def.Player.Height, "player.height")
	fixInt(&s.Spawn.PollIntervalMs, def.Spawn.PollIntervalMs, "spawn.poll_interval_ms")
	fixFloat(&s.Combat.ProjectileSpeed, def.Combat.ProjectileSpeed, "combat.projectile_speed")
	fixFloat(&s.Combat.TravelFactor, def.Combat.TravelFactor, "combat.travel_factor")
	fixFloat(&s.Enemy.MaxHP, def.Enemy.MaxHP, "enemy.max_hp")

	clampProbability(&s.Spawn.BaseProbability, "spawn.base_probability")
	clampProbability(&s.Spawn.Boost, "spawn.boost")
	clampProbability(&s.Spawn.MissedSpawnIncrement, "spawn.missed_spawn_increment")

	if s.Spawn.MaxPlacementAttempts < 1 {
		s.Spawn.MaxPlacementAttempts = 1
	}
	if s.MaxWaves < 0 {
		s.MaxWaves = 0
	}

	for i := len(s.Player.Weapons) - 1; i >= 0; i-- {
		w := s.Player.Weapons[i]
		if w.ID == "" || w.CooldownMs <= 0 || w.Range <= 0 {
			slog.Warn("dropping invalid weapon config", "index", i, "id", w.ID)
			s.Player.Weapons = append(s.Player.Weapons[:i], s.Player.Weapons[i+1:]...)
		}
	}
	if len(s.Player.Weapons) == 0 {
		s.Player.Weapons = def.Player.Weapons
	}

	return errors.Join(errs...)
}

// ParseLogLevel converts a config log level to slog.Level.
// Empty means info.
func ParseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func fixInt(v *int, def int, name string) {
	if *v <= 0 {
		slog.Warn("config value out of range, using default", "key", name, "value", *v, "default", def)
		*v = def
	}
}

func fixFloat(v *float64, def float64, name string) {
	if !(*v > 0) {
		slog.Warn("config value out of range, using default", "key", name, "value", *v, "default", def)
		*v = def
	}
}

func clampProbability(v *float64, name string) {
	switch {
	case !(*v >= 0):
		slog.Warn("probability clamped", "key", name, "value", *v)
		*v = 0
	case *v > 1:
		slog.Warn("probability clamped", "key", name, "value", *v)
		*v = 1
	}
}
