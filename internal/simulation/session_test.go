package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/soma/internal/config"
	"github.com/udisondev/soma/internal/data"
	"github.com/udisondev/soma/internal/model"
	"github.com/udisondev/soma/internal/scripting"
	"github.com/udisondev/soma/internal/testutil"
)

func newTestSession(t *testing.T, rng model.RNG) *Session {
	t.Helper()
	return NewSession(config.DefaultSimulation(), data.MustDefaultProvider(), rng, nil)
}

// placeEnemy puts a motionless enemy on the field.
func placeEnemy(s *Session, id uint32, pos model.Vec2, hp, contact float64, xp int64) *model.Enemy {
	e := model.NewEnemy(id, model.EnemyTemplate{
		Kind:            "dummy",
		MaxHP:           hp,
		ContactDamage:   contact,
		Width:           28,
		Height:          28,
		XPValue:         xp,
		DeathDurationMs: 300,
	}, pos)
	s.enemies = append(s.enemies, e)
	return e
}

func TestNewSessionIdle(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysSucceed)

	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Zero(t, s.Wave())
	assert.Equal(t, model.Vec2{X: 800, Y: 450}, s.Player().Position)
	require.Len(t, s.Player().Weapons(), 1)
	assert.Equal(t, "spitter", s.Player().Weapons()[0].ID)

	res := s.Tick(1000, InputState{}, s.Bounds())
	assert.Empty(t, res.Spawned, "nothing spawns between waves")
	assert.Zero(t, s.SpawnDirectorDebug().ActiveIndicators)
}

func TestTickMovesPlayer(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)

	s.Tick(1000, InputState{Move: model.Vec2{X: 3}}, s.Bounds())
	assert.InDelta(t, 1020, s.Player().Position.X, 1e-9, "direction length is ignored")
	assert.InDelta(t, 450, s.Player().Position.Y, 1e-9)

	s.Tick(1000, InputState{}, s.Bounds())
	assert.InDelta(t, 1020, s.Player().Position.X, 1e-9, "zero input does not move")

	s.Tick(100_000, InputState{Move: model.Vec2{X: -1}}, s.Bounds())
	assert.InDelta(t, 20, s.Player().Position.X, 1e-9, "clamped by half the footprint")
}

func TestTickIgnoresNonPositiveDelta(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysSucceed)
	require.NoError(t, s.StartWave(1))

	for _, dt := range []float64{0, -16} {
		res := s.Tick(dt, InputState{Move: model.Vec2{X: 1}}, s.Bounds())
		assert.Equal(t, TickResult{}, res)
	}
	assert.Equal(t, model.Vec2{X: 800, Y: 450}, s.Player().Position)
	assert.Equal(t, 20000.0, s.WaveRemainingMs())
}

func TestStartWave(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)

	require.NoError(t, s.StartWave(2))
	assert.Equal(t, PhaseWave, s.Phase())
	assert.Equal(t, 2, s.Wave())
	assert.Equal(t, 25000.0, s.WaveRemainingMs())
	assert.Equal(t, 8, s.SpawnDirectorDebug().TargetEnemyCount)
	assert.Equal(t, 12.0, s.template.MaxHP)

	assert.ErrorIs(t, s.StartNextWave(), ErrWaveInProgress)
}

func TestTickSpawnsEnemyFromIndicator(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysSucceed)
	require.NoError(t, s.StartWave(1))

	var (
		res   TickResult
		ticks int
	)
	for ticks < 10 && len(res.Spawned) == 0 {
		res = s.Tick(500, InputState{}, s.Bounds())
		ticks++
	}

	// 500 ms to the first poll, then 250 fade-in + 1500 countdown + 250 fade-out.
	assert.Equal(t, 5, ticks)
	require.Len(t, res.Spawned, 1)
	assert.Equal(t, uint32(1), res.Spawned[0].EnemyID)
	assert.Equal(t, uint32(1), res.Spawned[0].IndicatorID)
	assert.Equal(t, "crawler", res.Spawned[0].Kind)
	assert.Equal(t, model.Vec2{X: 32, Y: 32}, res.Spawned[0].Position)

	require.Len(t, s.Enemies(), 1)
	assert.Equal(t, 8.0, s.Enemies()[0].HP)
	assert.Equal(t, 4, s.SpawnDirectorDebug().ActiveIndicators)
}

func TestTickKillGrantsLevel(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)
	require.NoError(t, s.StartWave(1))
	placeEnemy(s, 100, model.Vec2{X: 812, Y: 450}, 1, 0, 16)

	res := s.Tick(490, InputState{}, s.Bounds())
	assert.Empty(t, res.Damage, "weapon still cooling down")

	res = s.Tick(10, InputState{}, s.Bounds())
	require.Len(t, res.Damage, 1)
	assert.Equal(t, model.TargetEnemy, res.Damage[0].Target)
	require.Len(t, res.Deaths, 1)
	assert.Equal(t, uint32(100), res.Deaths[0].EnemyID)

	assert.True(t, res.LeveledUp)
	assert.Equal(t, 1, res.LevelsGained)
	assert.Equal(t, 1, s.Player().Level())
	assert.Equal(t, 1, s.PendingLevelUps())
	assert.Equal(t, 1, s.Kills())
	assert.Equal(t, 11.0, s.StatsSnapshot()[data.StatMaxHP])
}

func TestApplyLevelUpChoice(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)
	assert.ErrorIs(t, s.ApplyLevelUpChoice(data.StatDamage, 10), ErrNoPendingLevelUp)

	s.pendingLevelUps = 1
	assert.ErrorIs(t, s.ApplyLevelUpChoice("charisma", 1), ErrUnknownStat)
	assert.ErrorIs(t, s.ApplyLevelUpChoice(data.StatLevel, 1), ErrLevelUpCoreStat)
	assert.ErrorIs(t, s.ApplyLevelUpChoice(data.StatDamage, -5), ErrInvalidLevelDelta)
	assert.Equal(t, 1, s.PendingLevelUps(), "rejected choices keep the level-up")

	require.NoError(t, s.ApplyLevelUpChoice(data.StatDamage, 10))
	assert.Zero(t, s.PendingLevelUps())
	assert.Equal(t, 10.0, s.StatsSnapshot()[data.StatDamage])
	assert.Equal(t, 10.0, s.Player().Stats().LevelUp(data.StatDamage))
}

func TestTickPlayerDeath(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)
	require.NoError(t, s.StartWave(1))
	s.Player().SetHealth(1)
	placeEnemy(s, 1, model.Vec2{X: 810, Y: 450}, 10, 5, 1)

	res := s.Tick(16, InputState{}, s.Bounds())
	assert.True(t, res.PlayerDied)
	require.Len(t, res.Damage, 1)
	assert.Equal(t, model.TargetPlayer, res.Damage[0].Target)
	assert.Equal(t, PhaseDead, s.Phase())

	res = s.Tick(16, InputState{Move: model.Vec2{X: 1}}, s.Bounds())
	assert.Equal(t, TickResult{PlayerDied: true}, res)
	assert.ErrorIs(t, s.StartWave(2), ErrPlayerDead)
}

func TestWaveCompletionClearsField(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)
	require.NoError(t, s.StartWave(1))
	placeEnemy(s, 1, model.Vec2{X: 50, Y: 50}, 10, 1, 1)

	res := s.Tick(19_999, InputState{}, s.Bounds())
	assert.False(t, res.WaveCompleted)
	assert.Len(t, s.Enemies(), 1)

	res = s.Tick(1, InputState{}, s.Bounds())
	assert.True(t, res.WaveCompleted)
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.Enemies())
	assert.Empty(t, s.Projectiles())
	assert.Zero(t, s.SpawnDirectorDebug().ActiveIndicators)
	assert.Zero(t, s.SpawnDirectorDebug().MissedSpawnBonus)

	require.NoError(t, s.StartNextWave())
	assert.Equal(t, 2, s.Wave())
}

func TestEquipThroughSession(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)

	require.NoError(t, s.Equip("fat_torso"))
	assert.Equal(t, 18.0, s.StatsSnapshot()[data.StatMaxHP])

	assert.ErrorIs(t, s.Equip("wings"), ErrUnknownBodyPart)

	assert.True(t, s.Unequip("torso"))
	assert.False(t, s.Unequip("torso"))
	assert.Equal(t, 10.0, s.StatsSnapshot()[data.StatMaxHP])
}

func TestUnequipIgnoresSlotCase(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)
	require.NoError(t, s.Equip("chitin_head"))

	_, ok := s.Player().Equipment().Slot(" Head ")
	assert.True(t, ok)
	assert.True(t, s.Unequip("Head"))
	assert.Equal(t, 10.0, s.StatsSnapshot()[data.StatMaxHP])
}

func TestEnemyTemplateForWave(t *testing.T) {
	cfg := config.DefaultSimulation().Enemy

	w1 := EnemyTemplateForWave(cfg, 1)
	assert.Equal(t, 8.0, w1.MaxHP)
	assert.Equal(t, int64(4), w1.XPValue)
	assert.Equal(t, 400.0, w1.DeathDurationMs)
	assert.Equal(t, w1, EnemyTemplateForWave(cfg, 0))

	w3 := EnemyTemplateForWave(cfg, 3)
	assert.Equal(t, 16.0, w3.MaxHP)
	assert.Equal(t, 4.0, w3.ContactDamage)
	assert.Equal(t, 80.0, w3.Speed)
	assert.Equal(t, int64(6), w3.XPValue)
}

func TestScriptsOverrideWave(t *testing.T) {
	scripts, err := scripting.NewEngineFromString(`
function enemy_stats(wave, base) return { max_hp = 99 } end
function wave_duration(wave) return 5 end
`)
	require.NoError(t, err)
	defer scripts.Close()

	s := NewSession(config.DefaultSimulation(), data.MustDefaultProvider(), testutil.AlwaysFail, scripts)
	require.NoError(t, s.StartWave(1))

	assert.Equal(t, 5000.0, s.WaveRemainingMs())
	assert.Equal(t, 99.0, s.template.MaxHP)
	assert.Equal(t, 2.0, s.template.ContactDamage)
}
