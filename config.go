package genetic_tsp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	cp "github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// RunConfig holds every knob of a run. Nothing in the algorithms reads a
// default on its own; DefaultRunConfig is the only place defaults live.
type RunConfig struct {
	PopulationSize int                `toml:"population_size" yaml:"population_size"`
	Strategy       Strategy           `toml:"strategy" yaml:"strategy"`
	Seed           int64              `toml:"seed" yaml:"seed"`
	Selector       *SelectorConfig    `toml:"select" yaml:"select"`
	Engine         *EngineConfig      `toml:"engine" yaml:"engine"`
	Persistence    *PersistenceConfig `toml:"persistence" yaml:"persistence"`
}

func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		PopulationSize: DefaultPopulationSize,
		Strategy:       RandomStrategy,
		Selector:       DefaultSelectorConfig(),
		Engine:         DefaultEngineConfig(),
	}
}

func (c *RunConfig) Validate() error {
	if c.PopulationSize <= 0 {
		return fmt.Errorf("%w: population_size %d must be positive", ErrInvalidConfig, c.PopulationSize)
	}
	if c.Strategy != RandomStrategy && c.Strategy != GreedyStrategy {
		return fmt.Errorf("%w: unknown strategy %v", ErrInvalidConfig, c.Strategy)
	}
	if c.Selector == nil || c.Engine == nil {
		return fmt.Errorf("%w: select and engine sections are required", ErrInvalidConfig)
	}
	if err := c.Selector.Validate(); err != nil {
		return err
	}
	return c.Engine.Validate()
}

func (c *RunConfig) Clone() *RunConfig {
	clone := &RunConfig{}
	if err := cp.CopyWithOption(clone, c, cp.Option{DeepCopy: true}); err != nil {
		panic(fmt.Errorf("RunConfig clone failed: %w", err))
	}
	return clone
}

// DecodeConfig reads a TOML or YAML document over the defaults, so omitted
// keys keep their default values.
func DecodeConfig(r io.Reader, format string) (*RunConfig, error) {
	config := DefaultRunConfig()
	switch strings.ToLower(format) {
	case "toml", "":
		if _, err := toml.NewDecoder(r).Decode(config); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(config); err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown config format %q", ErrInvalidConfig, format)
	}
	return config, nil
}

// LoadConfig picks the decoder from the file extension.
func LoadConfig(path string) (*RunConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Unable to load config: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f, strings.TrimPrefix(filepath.Ext(path), "."))
}
