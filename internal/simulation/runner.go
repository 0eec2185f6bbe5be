package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RunResult summarizes a finished session.
type RunResult struct {
	Waves     int
	Level     int
	Kills     int
	Died      bool
	Ticks     int
	ElapsedMs float64
}

// RunOptions control the run loop.
type RunOptions struct {
	TickMs int
	// MaxWaves stops after this many completed waves. Zero means until death.
	MaxWaves int
	// Realtime paces ticks with a wall-clock ticker.
	Realtime bool
}

// Run plays s with bot until the player dies, MaxWaves waves complete or ctx
// is canceled. A canceled run returns the partial result with ctx.Err().
func Run(ctx context.Context, s *Session, bot *Bot, opts RunOptions) (RunResult, error) {
	if opts.TickMs <= 0 {
		return RunResult{}, fmt.Errorf("invalid tick %d ms", opts.TickMs)
	}
	dt := float64(opts.TickMs)

	var ticks <-chan time.Time
	if opts.Realtime {
		ticker := time.NewTicker(time.Duration(opts.TickMs) * time.Millisecond)
		defer ticker.Stop()
		ticks = ticker.C
	}

	var res RunResult
	summary := func() RunResult {
		res.Level = s.player.Level()
		res.Kills = s.Kills()
		return res
	}

	if err := s.StartNextWave(); err != nil {
		return summary(), fmt.Errorf("starting first wave: %w", err)
	}

	bounds := s.Bounds()
	for {
		if ticks != nil {
			select {
			case <-ctx.Done():
				return summary(), ctx.Err()
			case <-ticks:
			}
		} else if err := ctx.Err(); err != nil {
			return summary(), err
		}

		out := s.Tick(dt, bot.Input(s), bounds)
		res.Ticks++
		res.ElapsedMs += dt

		if out.PlayerDied {
			res.Died = true
			return summary(), nil
		}
		bot.SpendLevelUps(s)

		if !out.WaveCompleted {
			continue
		}
		res.Waves++
		if opts.MaxWaves > 0 && res.Waves >= opts.MaxWaves {
			return summary(), nil
		}
		bot.EquipRandom(s)
		if err := s.StartNextWave(); err != nil {
			return summary(), fmt.Errorf("starting wave %d: %w", s.Wave()+1, err)
		}
		slog.Debug("session stats", "wave", s.Wave(), "stats", s.StatsSnapshot())
	}
}
