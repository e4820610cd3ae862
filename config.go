package qnotebook

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/*
Config holds the numeric knobs shared by the notebook cells. The zero value
is not useful, use NewConfig or LoadConfig.
*/
type Config struct {
	Tolerance       float64   `yaml:"tolerance"`
	Visibility      float64   `yaml:"visibility"`
	DecoherenceRate float64   `yaml:"decoherence_rate"`
	Energies        []float64 `yaml:"energies"`
	KTMin           float64   `yaml:"kt_min"`
	KTMax           float64   `yaml:"kt_max"`
	KTSteps         int       `yaml:"kt_steps"`
	Seed            int64     `yaml:"seed"`
}

func NewConfig() *Config {
	return &Config{
		Tolerance:       1e-9,
		Visibility:      0.8,
		DecoherenceRate: 0.01,
		Energies:        []float64{0, 1, 2},
		KTMin:           0.1,
		KTMax:           5,
		KTSteps:         10,
		Seed:            42,
	}
}

/*
LoadConfig reads a YAML file on top of the defaults. Unknown keys are an
error so that a typo never silently falls back to a default.
*/
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the cells cannot run with.
func (cfg *Config) Validate() error {
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %v", ErrInvalidArgument, cfg.Tolerance)
	}

	if cfg.DecoherenceRate < 0 {
		return fmt.Errorf("%w: decoherence_rate must not be negative, got %v", ErrInvalidArgument, cfg.DecoherenceRate)
	}

	if len(cfg.Energies) == 0 {
		return fmt.Errorf("%w: energies must not be empty", ErrInvalidArgument)
	}

	if cfg.KTMin <= 0 || cfg.KTMax < cfg.KTMin {
		return fmt.Errorf("%w: kt range [%v, %v] is invalid", ErrInvalidArgument, cfg.KTMin, cfg.KTMax)
	}

	if cfg.KTSteps < 2 {
		return fmt.Errorf("%w: kt_steps must be at least 2, got %d", ErrInvalidArgument, cfg.KTSteps)
	}

	return nil
}
