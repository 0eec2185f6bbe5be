package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/soma/internal/data"
	"github.com/udisondev/soma/internal/model"
	"github.com/udisondev/soma/internal/testutil"
)

func TestRunCompletesWaves(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)
	bot := NewBot(testutil.AlwaysFail, 150)

	res, err := Run(context.Background(), s, bot, RunOptions{TickMs: 100, MaxWaves: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Waves)
	assert.False(t, res.Died)
	assert.Equal(t, 200, res.Ticks, "wave 1 lasts 20 s")
	assert.Equal(t, 20000.0, res.ElapsedMs)
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)
	ctx, cancel := testutil.ContextWithCancel(t)
	cancel()

	res, err := Run(ctx, s, NewBot(testutil.AlwaysFail, 150), RunOptions{TickMs: 16})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Ticks)
	assert.Equal(t, 1, s.Wave())
}

func TestRunRealtimeHonorsDeadline(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)
	ctx := testutil.ContextWithTimeout(t, 50*time.Millisecond)

	res, err := Run(ctx, s, NewBot(testutil.AlwaysFail, 150), RunOptions{TickMs: 1, Realtime: true})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, res.Ticks)
	assert.Less(t, res.Ticks, 20000, "wave 1 cannot finish in real time")
}

func TestRunRejectsBadTick(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)
	_, err := Run(context.Background(), s, NewBot(testutil.AlwaysFail, 150), RunOptions{})
	assert.Error(t, err)
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestBotFleesNearestThreat(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)
	bot := NewBot(testutil.AlwaysFail, 150)

	assert.Equal(t, InputState{}, bot.Input(s))

	placeEnemy(s, 1, model.Vec2{X: 900, Y: 450}, 5, 0, 1)
	placeEnemy(s, 2, model.Vec2{X: 800, Y: 350}, 5, 0, 1)
	placeEnemy(s, 3, model.Vec2{X: 1200, Y: 450}, 5, 0, 1)

	in := bot.Input(s)
	assert.Equal(t, model.Vec2{X: -100, Y: 0}, in.Move, "ties keep the first enemy")

	s.enemies[0].TakeDamage(100)
	in = bot.Input(s)
	assert.Equal(t, model.Vec2{X: 0, Y: 100}, in.Move, "dying enemies are ignored")
}

func TestBotSpendsLevelUps(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysFail)
	bot := NewBot(testutil.AlwaysFail, 150)
	s.pendingLevelUps = 3

	bot.SpendLevelUps(s)

	assert.Zero(t, s.PendingLevelUps())
	stats := s.Player().Stats()
	assert.Equal(t, 10.0, stats.LevelUp(data.StatDamage))
	assert.Equal(t, 10.0, stats.LevelUp(data.StatAttackSpeed))
	assert.Equal(t, 2.0, stats.LevelUp(data.StatMaxHP))
	assert.Zero(t, stats.LevelUp(data.StatArmor))
}

func TestBotEquipRandom(t *testing.T) {
	s := newTestSession(t, testutil.AlwaysSucceed)
	NewBot(testutil.AlwaysSucceed, 150).EquipRandom(s)

	part, ok := s.Player().Equipment().Slot("head")
	require.True(t, ok)
	assert.Equal(t, "chitin_head", part.ID)
}
