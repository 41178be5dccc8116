package config

import (
	"fmt"

	"monster_tower/internal/monster"
	"monster_tower/internal/team"
)

// Simulation configures cmd/simsvc runs.
type Simulation struct {
	LogLevel string `yaml:"log_level"`
	Seed     int64  `yaml:"seed"`
	Runs     int    `yaml:"runs"`
	Workers  int    `yaml:"workers"`
	// MaxTurns caps a single battle; zero disables the cap.
	MaxTurns     int    `yaml:"max_turns"`
	RecordEvents bool   `yaml:"record_events"`
	Catalog      string `yaml:"catalog"` // empty = embedded catalog

	Player PlayerConfig `yaml:"player"`
	Tower  TowerConfig  `yaml:"tower"`
}

type PlayerConfig struct {
	Mode    string `yaml:"mode"`
	SortKey string `yaml:"sort_key"`
	// Lineup names archetypes in insertion order; empty means a random team.
	Lineup []string `yaml:"lineup"`
}

type TowerConfig struct {
	Opponents    int    `yaml:"opponents"`
	OpponentMode string `yaml:"opponent_mode"`
	MinLives     int    `yaml:"min_lives"`
	MaxLives     int    `yaml:"max_lives"`
}

func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel: "info",
		Seed:     12345,
		Runs:     1,
		Workers:  8,
		MaxTurns: 10000,
		Player: PlayerConfig{
			Mode: "back",
		},
		Tower: TowerConfig{
			Opponents:    3,
			OpponentMode: "back",
			MinLives:     2,
			MaxLives:     10,
		},
	}
}

func (s Simulation) Validate() error {
	if _, err := s.Player.TeamMode(); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if _, err := s.Player.Key(); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if _, err := team.ParseMode(s.Tower.OpponentMode); err != nil {
		return fmt.Errorf("tower: %w", err)
	}
	if len(s.Player.Lineup) > team.Capacity {
		return fmt.Errorf("player: lineup has %d monsters, capacity is %d", len(s.Player.Lineup), team.Capacity)
	}
	if s.Tower.MinLives < 1 || s.Tower.MaxLives < s.Tower.MinLives {
		return fmt.Errorf("tower: lives range [%d,%d] is invalid", s.Tower.MinLives, s.Tower.MaxLives)
	}
	if s.Runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", s.Runs)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	return nil
}

func (p PlayerConfig) TeamMode() (team.Mode, error) {
	return team.ParseMode(p.Mode)
}

// Key parses the sort key; it is only required in optimise mode.
func (p PlayerConfig) Key() (monster.SortKey, error) {
	if p.SortKey == "" {
		if m, err := p.TeamMode(); err == nil && m == team.Optimise {
			return 0, team.ErrMissingSortKey
		}
		return 0, nil
	}
	return monster.ParseSortKey(p.SortKey)
}
