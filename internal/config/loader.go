package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadSimulation reads a simulation config over the defaults. A missing file
// yields the defaults unchanged.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()
	if path == "" {
		return cfg, nil
	}
	if err := loadYAML(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSimulation(), nil
		}
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
