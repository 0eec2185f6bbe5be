package data

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Source delivers raw configuration rows. Implementations: DefaultSource,
// FileSource (YAML), db.ConfigRepository (PostgreSQL).
type Source interface {
	StatRows(ctx context.Context) ([]StatRow, error)
	BodyPartRows(ctx context.Context) ([]BodyPartRow, error)
	XPRows(ctx context.Context) ([]XPRow, error)
	WaveRows(ctx context.Context) ([]WaveRow, error)
}

// Provider bundles the immutable configuration tables of one process.
// Owned by the orchestrator and shared read-only between sessions.
type Provider struct {
	Stats     *StatTable
	BodyParts *BodyPartCatalog
	XP        *ExperienceTable
	Waves     *WaveTable
}

// DefaultSource serves the hard-coded minimal tables.
type DefaultSource struct{}

func (DefaultSource) StatRows(context.Context) ([]StatRow, error) {
	return DefaultStatRows(), nil
}

func (DefaultSource) BodyPartRows(context.Context) ([]BodyPartRow, error) {
	return DefaultBodyPartRows(), nil
}

func (DefaultSource) XPRows(context.Context) ([]XPRow, error) {
	return DefaultXPRows(), nil
}

func (DefaultSource) WaveRows(context.Context) ([]WaveRow, error) {
	return DefaultWaveRows(), nil
}

// NewDefaultProvider builds the provider from hard-coded tables.
// An error here means the binary itself is broken and startup must abort.
func NewDefaultProvider() (*Provider, error) {
	stats, err := NewStatTable(DefaultStatRows())
	if err != nil {
		return nil, fmt.Errorf("building default stat table: %w", err)
	}
	xp, err := NewExperienceTable(DefaultXPRows())
	if err != nil {
		return nil, fmt.Errorf("building default xp table: %w", err)
	}
	return &Provider{
		Stats:     stats,
		BodyParts: NewBodyPartCatalog(DefaultBodyPartRows(), stats),
		XP:        xp,
		Waves:     NewWaveTable(DefaultWaveRows()),
	}, nil
}

// MustDefaultProvider is NewDefaultProvider for tests and init paths.
func MustDefaultProvider() *Provider {
	p, err := NewDefaultProvider()
	if err != nil {
		panic(err)
	}
	return p
}

// LoadProvider loads all tables from src. Each table falls back to its
// default independently when the source fails or yields no usable rows.
// Only a failure to build the defaults is returned as an error.
func LoadProvider(ctx context.Context, src Source) (*Provider, error) {
	defaults, err := NewDefaultProvider()
	if err != nil {
		return nil, err
	}
	if src == nil {
		return defaults, nil
	}

	var (
		statRows []StatRow
		partRows []BodyPartRow
		xpRows   []XPRow
		waveRows []WaveRow
		statErr  error
		partErr  error
		xpErr    error
		waveErr  error
	)

	// Tables fall back one by one, so a failed load must not cancel the
	// others: errors stay per table and the group only fans the loads out.
	var g errgroup.Group
	g.Go(func() error { statRows, statErr = src.StatRows(ctx); return nil })
	g.Go(func() error { partRows, partErr = src.BodyPartRows(ctx); return nil })
	g.Go(func() error { xpRows, xpErr = src.XPRows(ctx); return nil })
	g.Go(func() error { waveRows, waveErr = src.WaveRows(ctx); return nil })
	_ = g.Wait()

	p := &Provider{}

	p.Stats = defaults.Stats
	if statErr != nil {
		slog.Warn("stat source failed, using defaults", "error", statErr)
	} else if t, err := NewStatTable(statRows); err != nil {
		slog.Warn("stat rows unusable, using defaults", "error", err)
	} else {
		p.Stats = t.withMissing(defaults.Stats)
	}

	p.XP = defaults.XP
	if xpErr != nil {
		slog.Warn("xp source failed, using defaults", "error", xpErr)
	} else if len(xpRows) == 0 {
		slog.Warn("xp source empty, using defaults")
	} else if t, err := NewExperienceTable(xpRows); err != nil {
		slog.Warn("xp rows unusable, using defaults", "error", err)
	} else {
		p.XP = t
	}
	if bad := p.XP.FallbackMismatches(); len(bad) > 0 {
		slog.Warn("xp table deviates from (level+3)^2 curve", "levels", bad)
	}

	if partErr != nil {
		slog.Warn("body part source failed, using defaults", "error", partErr)
		partRows = DefaultBodyPartRows()
	}
	p.BodyParts = NewBodyPartCatalog(partRows, p.Stats)

	if waveErr != nil {
		slog.Warn("wave source failed, using defaults", "error", waveErr)
		waveRows = DefaultWaveRows()
	}
	p.Waves = NewWaveTable(waveRows)

	slog.Info("configuration tables loaded",
		"stats", p.Stats.Len(),
		"bodyParts", p.BodyParts.Len(),
		"xpLevels", len(p.XP.levels),
		"waves", len(p.Waves.seconds))
	return p, nil
}
