// meta/meta.go
package meta

import (
	"errors"
	"fmt"
	"math"
	"os"

	"chessmcts/experiments/metrics"

	"gopkg.in/yaml.v3"
)

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 1

// ITERATIONS defines the number of MCTS iterations per move.
const ITERATIONS = 10

// WITH_CUTOFF defines the rollout depth cutoff for MCTS.
const WITH_CUTOFF = 5

// MAX_TURNS bounds the length of a self-play game.
const MAX_TURNS = 300

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the search tunables of a self-play run
type Config struct {
	Iterations  int     `yaml:"iterations"`
	Cutoff      int     `yaml:"cutoff"`
	Exploration float64 `yaml:"exploration"`
	Goroutines  int     `yaml:"goroutines"`
	MaxTurns    int     `yaml:"max_turns"`
	Seed        uint64  `yaml:"seed"`
	ReuseRoot   bool    `yaml:"reuse_root"`
}

func Default() Config {
	return Config{
		Iterations:  ITERATIONS,
		Cutoff:      WITH_CUTOFF,
		Exploration: math.Sqrt2,
		Goroutines:  GO_ROUTINES,
		MaxTurns:    MAX_TURNS,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep their default value.
func Load(path string) (Config, error) {
	config := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.Cutoff <= 0 {
		return fmt.Errorf("%w: cutoff must be positive, got %d", ErrInvalidConfig, c.Cutoff)
	}
	if c.Exploration < 0 {
		return fmt.Errorf("%w: exploration must not be negative, got %g", ErrInvalidConfig, c.Exploration)
	}
	if c.Goroutines <= 0 {
		return fmt.Errorf("%w: goroutines must be positive, got %d", ErrInvalidConfig, c.Goroutines)
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("%w: max_turns must be positive, got %d", ErrInvalidConfig, c.MaxTurns)
	}
	return nil
}

func (c Config) AgentConfig(id int) metrics.AgentConfig {
	exploration := c.Exploration
	return metrics.AgentConfig{
		ID:          id,
		Goroutines:  c.Goroutines,
		Iterations:  c.Iterations,
		Cutoff:      c.Cutoff,
		Exploration: &exploration,
		Seed:        c.Seed,
		ReuseRoot:   c.ReuseRoot,
	}
}
