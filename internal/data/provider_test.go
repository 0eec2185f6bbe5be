package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/soma/internal/testutil"
)

type failingSource struct{}

func (failingSource) StatRows(context.Context) ([]StatRow, error) {
	return nil, testutil.ErrSimulated
}

func (failingSource) BodyPartRows(context.Context) ([]BodyPartRow, error) {
	return nil, testutil.ErrSimulated
}

func (failingSource) XPRows(context.Context) ([]XPRow, error) {
	return nil, testutil.ErrSimulated
}

func (failingSource) WaveRows(context.Context) ([]WaveRow, error) {
	return nil, testutil.ErrSimulated
}

func TestLoadProviderFallsBackToDefaults(t *testing.T) {
	p, err := LoadProvider(context.Background(), failingSource{})
	require.NoError(t, err)

	defaults := MustDefaultProvider()
	assert.Equal(t, defaults.Stats.Len(), p.Stats.Len())
	assert.Equal(t, defaults.BodyParts.Len(), p.BodyParts.Len())
	assert.Equal(t, int64(805), p.XP.CumulativeXPForLevel(10))
	assert.Equal(t, 20, p.Waves.Seconds(1))
}

// statsDownSource fails the stat table; the wave table is read only after
// that failure and reports a canceled context as an error.
type statsDownSource struct {
	DefaultSource
	statsFailed chan struct{}
}

func (s statsDownSource) StatRows(context.Context) ([]StatRow, error) {
	defer close(s.statsFailed)
	return nil, testutil.ErrSimulated
}

func (s statsDownSource) WaveRows(ctx context.Context) ([]WaveRow, error) {
	<-s.statsFailed
	time.Sleep(10 * time.Millisecond)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []WaveRow{{WaveIndex: 1, DurationSeconds: 7}}, nil
}

func TestLoadProviderFailedTableKeepsOthers(t *testing.T) {
	p, err := LoadProvider(context.Background(), statsDownSource{statsFailed: make(chan struct{})})
	require.NoError(t, err)

	assert.Equal(t, len(DefaultStatRows()), p.Stats.Len())
	assert.Equal(t, 7, p.Waves.Seconds(1), "the wave load was not canceled")
}

func TestLoadProviderNilSource(t *testing.T) {
	p, err := LoadProvider(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, p.Stats)
	assert.NotNil(t, p.XP)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write(StatsFile, `
- category: primary
  order: 1
  key: maxHp
  display_name: Max HP
  base_value: 30
  min_value: 1
- category: primary
  order: 2
  key: armor
  is_percent: true
  max_value: 80
`)
	write(XPFile, `
- level: 1
  xp_required: 16
  cumulative_xp: 16
`)
	write(WavesFile, `
- wave: 1
  duration_seconds: 45
- wave: 0
  duration_seconds: 10
`)
	// body_parts.yaml intentionally missing

	p, err := LoadProvider(context.Background(), FileSource{Dir: dir})
	require.NoError(t, err)

	hp, ok := p.Stats.Definition(StatMaxHP)
	require.True(t, ok)
	assert.Equal(t, 30.0, hp.BaseValue)
	require.NotNil(t, hp.MinValue)
	assert.Equal(t, 1.0, *hp.MinValue)

	armor, ok := p.Stats.Definition(StatArmor)
	require.True(t, ok)
	assert.True(t, armor.IsPercent)
	assert.Nil(t, armor.MinValue)

	_, ok = p.Stats.Definition(StatCurrentHP)
	assert.True(t, ok, "core keys are backfilled from defaults")

	assert.Equal(t, 45, p.Waves.Seconds(1))
	assert.Equal(t, FallbackWaveSeconds(2), p.Waves.Seconds(2))
	assert.Equal(t, MustDefaultProvider().BodyParts.Len(), p.BodyParts.Len())
}

func TestFileSourceMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, StatsFile), []byte("{not: [valid"), 0o644))

	_, err := FileSource{Dir: dir}.StatRows(context.Background())
	assert.Error(t, err)
}

func TestFileSourceSkipsMalformedRow(t *testing.T) {
	dir := t.TempDir()
	stats := `
- key: maxHp
  category: primary
  order: 1
  base_value: 30
- key: armor
  category: primary
  order: 7
  base_value: lots
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, StatsFile), []byte(stats), 0o644))

	rows, err := FileSource{Dir: dir}.StatRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, StatMaxHP, rows[0].Key)

	p, err := LoadProvider(context.Background(), FileSource{Dir: dir})
	require.NoError(t, err)

	hp, ok := p.Stats.Definition(StatMaxHP)
	require.True(t, ok)
	assert.Equal(t, 30.0, hp.BaseValue, "the valid row is kept")

	armor, ok := p.Stats.Definition(StatArmor)
	require.True(t, ok, "the skipped key comes from defaults")
	assert.Zero(t, armor.BaseValue)
}

func TestFileSourceRejectsNonList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, WavesFile), []byte("wave: 1\n"), 0o644))

	_, err := FileSource{Dir: dir}.WaveRows(context.Background())
	assert.Error(t, err)
}
