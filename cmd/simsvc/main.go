package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"monster_tower/internal/catalog"
	"monster_tower/internal/combat"
	"monster_tower/internal/config"
	"monster_tower/internal/team"
	"monster_tower/internal/tower"
	"monster_tower/internal/util"
)

type flags struct {
	cfgPath string
	out     string
	mode    string
	logLvl  string
	seed    int64
	n       int
	manual  bool
}

func main() {
	var f flags
	flag.StringVar(&f.cfgPath, "config", "assets/simulation.yaml", "simulation config file")
	flag.StringVar(&f.out, "out", "out.json", "output file")
	flag.StringVar(&f.mode, "mode", "tower", "battle | tower | batch | build")
	flag.StringVar(&f.logLvl, "log", "", "log level override (debug, info, warn, error)")
	flag.Int64Var(&f.seed, "seed", 0, "seed override")
	flag.IntVar(&f.n, "n", 0, "number of towers in batch mode")
	flag.BoolVar(&f.manual, "manual", false, "pick the player team interactively")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, f); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.LoadSimulation(f.cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if f.logLvl != "" {
		cfg.LogLevel = f.logLvl
	}
	if f.seed != 0 {
		cfg.Seed = f.seed
	}
	if f.n > 0 {
		cfg.Runs = f.n
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	slog.Info("catalog loaded", "monsters", cat.Len(), "spawnable", len(cat.Spawnable()))

	var result any
	switch f.mode {
	case "build":
		tm, err := buildPlayer(cfg, cat, cfg.Seed, f.manual)
		if err != nil {
			return err
		}
		result = map[string]any{"team": tm.String(), "mode": tm.Mode().String(), "size": tm.Size()}
		fmt.Println(tm)
	case "battle":
		rep, err := runBattle(cfg, cat, f.manual)
		if err != nil {
			return err
		}
		result = rep
		fmt.Printf("Battle %s finished. Result=%s, Turns=%d -> %s\n", rep.ID, rep.Result, rep.Turns, f.out)
	case "tower":
		s, err := runTower(ctx, cfg, cat, cfg.Seed, f.manual)
		if err != nil {
			return err
		}
		result = s
		fmt.Printf("Tower finished. Wins=%d Losses=%d Draws=%d Cleared=%v -> %s\n", s.Wins, s.Losses, s.Draws, s.Cleared, f.out)
	case "batch":
		s, err := runBatch(ctx, cfg, cat)
		if err != nil {
			return err
		}
		result = s
		fmt.Printf("Batch %d done. ClearRate=%.3f -> %s\n", s.Runs, s.ClearRate, f.out)
	default:
		return fmt.Errorf("unknown mode %q", f.mode)
	}

	if err := os.WriteFile(f.out, combat.MarshalPretty(result), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", f.out, err)
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// buildPlayer assembles the player team from the configured lineup, from stdin
// when manual is set, or randomly otherwise.
func buildPlayer(cfg config.Simulation, cat *catalog.Catalog, seed int64, manual bool) (*team.Team, error) {
	mode, err := cfg.Player.TeamMode()
	if err != nil {
		return nil, err
	}
	key, err := cfg.Player.Key()
	if err != nil {
		return nil, err
	}
	opts := team.BuildOptions{SortKey: key, Pool: cat.All(), Rng: util.New(seed)}

	switch {
	case manual:
		opts.Input, opts.Output = os.Stdin, os.Stdout
		return team.Build(mode, team.SelectManual, opts)
	case len(cfg.Player.Lineup) > 0:
		lineup, err := cat.Resolve(cfg.Player.Lineup)
		if err != nil {
			return nil, err
		}
		opts.Provided = lineup
		return team.Build(mode, team.SelectProvided, opts)
	default:
		return team.Build(mode, team.SelectRandom, opts)
	}
}

func runBattle(cfg config.Simulation, cat *catalog.Catalog, manual bool) (combat.Report, error) {
	player, err := buildPlayer(cfg, cat, cfg.Seed, manual)
	if err != nil {
		return combat.Report{}, err
	}
	oppMode, err := team.ParseMode(cfg.Tower.OpponentMode)
	if err != nil {
		return combat.Report{}, err
	}
	opp, err := team.Build(oppMode, team.SelectRandom, team.BuildOptions{
		Pool: cat.All(),
		Rng:  util.New(cfg.Seed + 1),
	})
	if err != nil {
		return combat.Report{}, err
	}
	return combat.RunReport(player, opp, cfg.MaxTurns, cfg.RecordEvents)
}

func newTower(cfg config.Simulation, cat *catalog.Catalog, seed int64) (*tower.Tower, error) {
	oppMode, err := team.ParseMode(cfg.Tower.OpponentMode)
	if err != nil {
		return nil, err
	}
	return tower.New(util.New(seed), cat.All(), tower.Options{
		OpponentMode: oppMode,
		MinLives:     cfg.Tower.MinLives,
		MaxLives:     cfg.Tower.MaxLives,
		MaxTurns:     cfg.MaxTurns,
	}), nil
}

func runTower(ctx context.Context, cfg config.Simulation, cat *catalog.Catalog, seed int64, manual bool) (tower.Summary, error) {
	player, err := buildPlayer(cfg, cat, seed, manual)
	if err != nil {
		return tower.Summary{}, err
	}
	tw, err := newTower(cfg, cat, seed)
	if err != nil {
		return tower.Summary{}, err
	}
	tw.SetPlayerTeam(player)
	if err := tw.GenerateTeams(cfg.Tower.Opponents); err != nil {
		return tower.Summary{}, err
	}
	return tw.Run(ctx)
}
