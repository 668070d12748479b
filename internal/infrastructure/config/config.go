package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const DefaultPath = "agent.toml"

// Config holds agent settings loaded from an optional TOML file. Secrets stay
// in the environment; this file only tunes behavior.
type Config struct {
	Model              string  `toml:"model"`
	BaseURL            string  `toml:"base_url"`
	Temperature        float32 `toml:"temperature"`
	MaxIterations      int     `toml:"max_iterations"`
	MaxObservationLen  int     `toml:"max_observation_len"`
	CommandTimeoutSecs int     `toml:"command_timeout_secs"`
}

func Default() Config {
	return Config{
		Model:              "gpt-5-mini",
		Temperature:        0,
		MaxIterations:      50,
		MaxObservationLen:  20000,
		CommandTimeoutSecs: 30,
	}
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must be >= 0 (0 disables the ceiling)")
	}
	if c.CommandTimeoutSecs <= 0 {
		return fmt.Errorf("command_timeout_secs must be positive")
	}
	return nil
}
