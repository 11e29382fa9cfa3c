// Package config loads the experiment settings used by
// the zonehmm command.
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	hmm "github.com/unixpickle/discrete-hmm"
	"gopkg.in/yaml.v3"
)

// Topologies accepted by Config.Topology.
const (
	TopologyUniform   = "uniform"
	TopologyLeftRight = "left-right"
	TopologyRandom    = "random"
)

// Config describes how class models are built and
// trained.
type Config struct {
	// States is the number of hidden states per model.
	States int `yaml:"states"`

	// Shades is the number of distinct symbols.
	Shades int `yaml:"shades"`

	// Zones is the side length of the zoning grid.
	Zones int `yaml:"zones"`

	Topology string  `yaml:"topology"`
	SelfLoop float64 `yaml:"self_loop"`

	Epochs      int     `yaml:"epochs"`
	Tolerance   float64 `yaml:"tolerance"`
	Parallelism int     `yaml:"parallelism"`

	// Seed seeds the random topology.
	Seed int64 `yaml:"seed"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		States:      14,
		Shades:      8,
		Zones:       7,
		Topology:    TopologyUniform,
		SelfLoop:    0.5,
		Epochs:      3,
		Tolerance:   0,
		Parallelism: 0,
		Seed:        1,
	}
}

// Load reads a YAML file on top of the defaults.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field is in range.
func (c Config) Validate() error {
	var errs []error
	if c.States <= 0 {
		errs = append(errs, fmt.Errorf("states must be positive, got %d", c.States))
	}
	if c.Shades <= 0 {
		errs = append(errs, fmt.Errorf("shades must be positive, got %d", c.Shades))
	}
	if c.Zones <= 0 {
		errs = append(errs, fmt.Errorf("zones must be positive, got %d", c.Zones))
	}
	switch c.Topology {
	case TopologyUniform, TopologyRandom:
	case TopologyLeftRight:
		if !(c.SelfLoop > 0 && c.SelfLoop < 1) {
			errs = append(errs, fmt.Errorf("self_loop must be in (0, 1), got %v", c.SelfLoop))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown topology %q", c.Topology))
	}
	if c.Epochs < 0 {
		errs = append(errs, fmt.Errorf("epochs must not be negative, got %d", c.Epochs))
	}
	if c.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("tolerance must not be negative, got %v", c.Tolerance))
	}
	if c.Parallelism < 0 {
		errs = append(errs, fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism))
	}
	return errors.Join(errs...)
}

// Symbols returns the symbols 0 through Shades-1.
func (c Config) Symbols() []hmm.Obs {
	res := make([]hmm.Obs, c.Shades)
	for i := range res {
		res[i] = i
	}
	return res
}

// NewModel builds an untrained model with the configured
// topology.
// The states are labeled 0 through States-1.
func (c Config) NewModel(gen *rand.Rand) (*hmm.Model, error) {
	states := make([]hmm.Label, c.States)
	for i := range states {
		states[i] = i
	}
	switch c.Topology {
	case TopologyUniform:
		return hmm.Uniform(states, c.Symbols())
	case TopologyLeftRight:
		return hmm.LeftRight(states, c.Symbols(), c.SelfLoop)
	case TopologyRandom:
		return hmm.RandomModel(gen, states, c.Symbols())
	}
	return nil, fmt.Errorf("unknown topology %q", c.Topology)
}

// TrainConfig returns the training settings.
func (c Config) TrainConfig() hmm.TrainConfig {
	return hmm.TrainConfig{
		Epochs:      c.Epochs,
		Parallelism: c.Parallelism,
		Tolerance:   c.Tolerance,
	}
}
