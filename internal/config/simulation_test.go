package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSimulationMissingFile(t *testing.T) {
	cfg, err := LoadSimulation(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSimulation(), cfg)
}

func TestLoadSimulationYAML(t *testing.T) {
	path := writeFile(t, "sim.yaml", `
log_level: debug
sessions: 4
seed: 99
spawn:
  base_probability: 0.5
  target_base: 10
player:
  weapons:
    - id: lance
      cooldown_ms: 250
      range: 150
      base_damage: 3
data:
  source: file
  dir: /tmp/tables
`)

	cfg, err := LoadSimulation(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Sessions)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 0.5, cfg.Spawn.BaseProbability)
	assert.Equal(t, 10, cfg.Spawn.TargetBase)
	assert.Equal(t, DefaultSimulation().Spawn.Boost, cfg.Spawn.Boost, "unset keys keep defaults")
	require.Len(t, cfg.Player.Weapons, 1)
	assert.Equal(t, "lance", cfg.Player.Weapons[0].ID)
	assert.Equal(t, SourceFile, cfg.Data.Source)
	assert.Equal(t, "/tmp/tables", cfg.Data.Dir)
}

func TestLoadSimulationTOML(t *testing.T) {
	path := writeFile(t, "sim.toml", `
log_level = "warn"
tick_ms = 33
max_waves = 10

[world]
width = 800.0
height = 600.0

[enemy]
kind = "mite"
max_hp = 3.5

[data]
source = "database"

[data.database]
host = "db"
port = 6543
user = "u"
password = "p"
dbname = "soma_test"
sslmode = "require"
`)

	cfg, err := LoadSimulation(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 33, cfg.TickMs)
	assert.Equal(t, 10, cfg.MaxWaves)
	assert.Equal(t, 800.0, cfg.World.Width)
	assert.Equal(t, "mite", cfg.Enemy.Kind)
	assert.Equal(t, 3.5, cfg.Enemy.MaxHP)
	assert.Equal(t, SourceDatabase, cfg.Data.Source)
	assert.Equal(t, "postgres://u:p@db:6543/soma_test?sslmode=require", cfg.Data.Database.DSN())
}

func TestLoadSimulationMalformed(t *testing.T) {
	_, err := LoadSimulation(writeFile(t, "bad.yaml", "sessions: [1, 2"))
	assert.Error(t, err)

	_, err = LoadSimulation(writeFile(t, "bad.toml", "sessions = "))
	assert.Error(t, err)
}

func TestValidateNormalizes(t *testing.T) {
	cfg := DefaultSimulation()
	cfg.Sessions = 0
	cfg.TickMs = -5
	cfg.World.Width = 0
	cfg.Spawn.BaseProbability = 1.7
	cfg.Spawn.Boost = -0.2
	cfg.Spawn.MaxPlacementAttempts = 0
	cfg.Player.Weapons = []WeaponConfig{{ID: "", CooldownMs: 100, Range: 10}}
	cfg.Data.Source = ""
	cfg.LogLevel = " DEBUG "

	require.NoError(t, cfg.Validate())

	def := DefaultSimulation()
	assert.Equal(t, def.Sessions, cfg.Sessions)
	assert.Equal(t, def.TickMs, cfg.TickMs)
	assert.Equal(t, def.World.Width, cfg.World.Width)
	assert.Equal(t, 1.0, cfg.Spawn.BaseProbability)
	assert.Zero(t, cfg.Spawn.Boost)
	assert.Equal(t, 1, cfg.Spawn.MaxPlacementAttempts)
	assert.Equal(t, def.Player.Weapons, cfg.Player.Weapons)
	assert.Equal(t, SourceDefaults, cfg.Data.Source)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateRejects(t *testing.T) {
	cfg := DefaultSimulation()
	cfg.Data.Source = "s3"
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3")
	assert.Contains(t, err.Error(), "loud")
}

func TestTargetForWave(t *testing.T) {
	s := SpawnConfig{TargetBase: 6, TargetPerWave: 2}
	assert.Equal(t, 6, s.TargetForWave(1))
	assert.Equal(t, 10, s.TargetForWave(3))
	assert.Equal(t, 6, s.TargetForWave(0))

	shrinking := SpawnConfig{TargetBase: 2, TargetPerWave: -5}
	assert.Zero(t, shrinking.TargetForWave(4))
}
