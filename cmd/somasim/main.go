package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/soma/internal/config"
	"github.com/udisondev/soma/internal/data"
	"github.com/udisondev/soma/internal/db"
	"github.com/udisondev/soma/internal/model"
	"github.com/udisondev/soma/internal/scripting"
	"github.com/udisondev/soma/internal/simulation"
)

const (
	ConfigPath = "config/somasim.yaml"
	// botPanicRadius is how close an enemy gets before the bot runs.
	botPanicRadius = 160
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("SOMA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel, _ := config.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	slog.Info("somasim starting",
		"config", cfgPath,
		"sessions", cfg.Sessions,
		"seed", seed,
		"data_source", cfg.Data.Source)

	provider, err := loadProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("loading tables: %w", err)
	}
	slog.Info("tables loaded",
		"stats", provider.Stats.Len(),
		"body_parts", provider.BodyParts.Len())

	results := make([]simulation.RunResult, cfg.Sessions)
	g, gctx := errgroup.WithContext(ctx)
	for i := range cfg.Sessions {
		g.Go(func() error {
			res, err := runSession(gctx, cfg, provider, seed+uint64(i))
			results[i] = res
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			slog.Info("session finished",
				"session", i,
				"waves", res.Waves,
				"level", res.Level,
				"kills", res.Kills,
				"died", res.Died,
				"elapsedMs", res.ElapsedMs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Info("simulation interrupted")
			return nil
		}
		return err
	}

	var deaths, kills int
	for _, r := range results {
		kills += r.Kills
		if r.Died {
			deaths++
		}
	}
	slog.Info("simulation complete", "sessions", len(results), "deaths", deaths, "kills", kills)
	return nil
}

// runSession plays one session with its own RNGs and Lua VM.
func runSession(ctx context.Context, cfg config.Simulation, provider *data.Provider, seed uint64) (simulation.RunResult, error) {
	var scripts *scripting.Engine
	if cfg.Scripting.Enabled {
		e, err := scripting.NewEngine(cfg.Scripting.Path)
		if err != nil {
			return simulation.RunResult{}, fmt.Errorf("loading scripts: %w", err)
		}
		defer e.Close()
		scripts = e
	}

	s := simulation.NewSession(cfg, provider, model.NewRNG(seed), scripts)
	bot := simulation.NewBot(model.NewRNG(^seed), botPanicRadius)
	return simulation.Run(ctx, s, bot, simulation.RunOptions{
		TickMs:   cfg.TickMs,
		MaxWaves: cfg.MaxWaves,
		Realtime: cfg.Realtime,
	})
}

// loadProvider builds the configuration tables from the configured source.
// An unreachable database falls back to the built-in tables.
func loadProvider(ctx context.Context, cfg config.Simulation) (*data.Provider, error) {
	switch cfg.Data.Source {
	case config.SourceFile:
		return data.LoadProvider(ctx, data.FileSource{Dir: cfg.Data.Dir})

	case config.SourceDatabase:
		database, err := db.New(ctx, cfg.Data.Database.DSN())
		if err != nil {
			slog.Warn("database unavailable, using default tables", "err", err)
			return data.NewDefaultProvider()
		}
		defer database.Close()
		slog.Info("database connected")

		if cfg.Data.Migrate {
			if err := db.RunMigrations(ctx, database.Pool()); err != nil {
				return nil, fmt.Errorf("running migrations: %w", err)
			}
			slog.Info("database migrations applied")
		}
		return data.LoadProvider(ctx, db.NewConfigRepository(database.Pool()))

	default:
		return data.NewDefaultProvider()
	}
}
