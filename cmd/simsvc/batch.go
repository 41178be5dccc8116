package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"monster_tower/internal/catalog"
	"monster_tower/internal/config"
)

type batchSummary struct {
	Runs        int            `json:"runs"`
	Cleared     int            `json:"cleared"`
	ClearRate   float64        `json:"clear_rate"`
	Wins        int            `json:"wins"`
	Losses      int            `json:"losses"`
	Draws       int            `json:"draws"`
	AvgRounds   float64        `json:"avg_rounds"`
	AvgTurns    float64        `json:"avg_turns"`
	OutOfMeta   map[string]int `json:"out_of_meta"`
	TotalRounds int            `json:"total_rounds"`
}

// runBatch plays cfg.Runs independent towers, tower i seeded with Seed+i.
func runBatch(ctx context.Context, cfg config.Simulation, cat *catalog.Catalog) (batchSummary, error) {
	st := batchSummary{Runs: cfg.Runs, OutOfMeta: map[string]int{}}
	var turns int
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Runs; i++ {
		i := i
		seed := cfg.Seed + int64(i)
		g.Go(func() error {
			s, err := runTower(gctx, cfg, cat, seed, false)
			if err != nil {
				return fmt.Errorf("tower %d: %w", i, err)
			}

			mu.Lock()
			defer mu.Unlock()
			if s.Cleared {
				st.Cleared++
			}
			st.Wins += s.Wins
			st.Losses += s.Losses
			st.Draws += s.Draws
			st.TotalRounds += len(s.Rounds)
			for _, r := range s.Rounds {
				turns += r.Turns
			}
			for _, e := range s.OutOfMeta {
				st.OutOfMeta[e.String()]++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return st, err
	}

	st.ClearRate = float64(st.Cleared) / float64(st.Runs)
	st.AvgRounds = float64(st.TotalRounds) / float64(st.Runs)
	if st.TotalRounds > 0 {
		st.AvgTurns = float64(turns) / float64(st.TotalRounds)
	}
	slog.Info("batch finished", "runs", st.Runs, "cleared", st.Cleared, "rounds", st.TotalRounds)
	return st, nil
}
