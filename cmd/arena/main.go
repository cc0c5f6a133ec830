// Command arena runs a headless combat simulation: hostile agents hunting a
// training target in a scene with obstacles, driven tick by tick.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/warbrain/internal/ai"
	"github.com/udisondev/warbrain/internal/config"
	"github.com/udisondev/warbrain/internal/sim"
)

const (
	ArenaConfigPath  = "configs/arena.yaml"
	progressInterval = 5 * time.Second
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
	cfgPath := flag.String("config", ArenaConfigPath, "arena scenario file (YAML); overrides WARBRAIN_CONFIG")
	seed := flag.Uint64("seed", 0, "override scenario seed (0 = keep)")
	realTime := flag.Bool("realtime", false, "pace ticks on the wall clock")
	flag.Parse()

	path := configPath(*cfgPath, flagSet("config"), os.Getenv("WARBRAIN_CONFIG"))

	cfg, err := config.LoadArena(path)
	if err != nil {
		return fmt.Errorf("loading arena config: %w", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *realTime {
		cfg.RealTime = true
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("warbrain arena starting",
		"config", path,
		"log_level", cfg.LogLevel,
		"seed", cfg.Seed,
		"spawns", len(cfg.Spawns))

	arena, err := sim.NewArena(cfg)
	if err != nil {
		return fmt.Errorf("building arena: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	finished := make(chan struct{})

	var summary sim.Summary
	g.Go(func() error {
		defer close(finished)

		s, err := arena.Run(gctx)
		summary = s
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("arena run: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()

		for {
			select {
			case <-finished:
				return nil
			case <-ticker.C:
				p := arena.Progress()
				slog.Info("arena progress",
					"elapsed", p.Elapsed,
					"shots", p.Shots,
					"hits", p.Hits,
					"targetHealth", p.TargetHealth,
					"agentDeaths", p.AgentDeaths)
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}

	report(summary)
	return nil
}

// configPath resolves the scenario path: explicit -config flag first,
// then WARBRAIN_CONFIG, then the default.
func configPath(flagValue string, flagGiven bool, env string) string {
	if flagGiven || env == "" {
		return flagValue
	}
	return env
}

// flagSet reports whether the named flag was given on the command line.
func flagSet(name string) bool {
	given := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			given = true
		}
	})
	return given
}

// report logs the run summary, one line per agent.
func report(s sim.Summary) {
	slog.Info("arena finished",
		"elapsed", s.Elapsed,
		"frames", s.Frames,
		"shots", s.Shots,
		"hits", s.Hits,
		"hitRate", fmt.Sprintf("%.3f", s.HitRate()),
		"damage", s.DamageDealt,
		"phaseChanges", s.PhaseChanges,
		"agentDeaths", s.AgentDeaths,
		"retaliationShots", s.RetaliationShots,
		"targetHealth", s.TargetHealth,
		"targetDead", s.TargetDead)

	for _, a := range s.Agents {
		slog.Info("agent",
			"name", a.Name,
			"kind", a.Kind,
			"state", a.State,
			"phase", a.Phase,
			"health", a.Health,
			"aggression", fmt.Sprintf("%.1f", a.Aggression),
			"attacks", a.Attacks,
			"dead", a.Dead)
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
