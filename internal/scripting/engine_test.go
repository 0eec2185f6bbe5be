package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/soma/internal/model"
)

var baseTemplate = model.EnemyTemplate{
	Kind:            "crawler",
	MaxHP:           8,
	ContactDamage:   2,
	Speed:           70,
	Width:           28,
	Height:          28,
	XPValue:         4,
	DeathDurationMs: 400,
}

const formulas = `
function enemy_stats(wave, base)
  return { max_hp = base.max_hp * wave, speed = 99, xp_value = base.xp_value + wave }
end

function wave_duration(wave)
  return 10 + wave
end
`

func TestEnemyStatsMergesOverBase(t *testing.T) {
	e, err := NewEngineFromString(formulas)
	require.NoError(t, err)
	defer e.Close()

	got := e.EnemyStats(3, baseTemplate)
	assert.Equal(t, 24.0, got.MaxHP)
	assert.Equal(t, 99.0, got.Speed)
	assert.Equal(t, int64(7), got.XPValue)
	assert.Equal(t, baseTemplate.ContactDamage, got.ContactDamage, "omitted fields keep base")
	assert.Equal(t, "crawler", got.Kind)
}

func TestWaveSeconds(t *testing.T) {
	e, err := NewEngineFromString(formulas)
	require.NoError(t, err)
	defer e.Close()

	sec, ok := e.WaveSeconds(2)
	require.True(t, ok)
	assert.Equal(t, 12, sec)
}

func TestMissingFunctionsFallBack(t *testing.T) {
	e, err := NewEngineFromString(`x = 1`)
	require.NoError(t, err)
	defer e.Close()

	assert.False(t, e.HasFunction(fnEnemyStats))
	assert.Equal(t, baseTemplate, e.EnemyStats(2, baseTemplate))
	_, ok := e.WaveSeconds(2)
	assert.False(t, ok)
}

func TestNilEngineOverridesNothing(t *testing.T) {
	var e *Engine
	assert.Equal(t, baseTemplate, e.EnemyStats(5, baseTemplate))
	_, ok := e.WaveSeconds(5)
	assert.False(t, ok)
	e.Close()
}

func TestScriptErrorsFallBack(t *testing.T) {
	e, err := NewEngineFromString(`
function enemy_stats(wave, base) error("boom") end
function wave_duration(wave) return -1 end
`)
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, baseTemplate, e.EnemyStats(1, baseTemplate))
	_, ok := e.WaveSeconds(1)
	assert.False(t, ok, "non-positive duration rejected")
}

func TestEnemyStatsNonTableResult(t *testing.T) {
	e, err := NewEngineFromString(`function enemy_stats(wave, base) return 42 end`)
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, baseTemplate, e.EnemyStats(1, baseTemplate))
}

func TestNewEngineFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formulas.lua")
	require.NoError(t, os.WriteFile(path, []byte(formulas), 0o644))

	e, err := NewEngine(path)
	require.NoError(t, err)
	defer e.Close()
	assert.True(t, e.HasFunction(fnWaveDuration))

	_, err = NewEngine(filepath.Join(t.TempDir(), "absent.lua"))
	assert.Error(t, err)

	_, err = NewEngineFromString(`function (`)
	assert.Error(t, err)
}
