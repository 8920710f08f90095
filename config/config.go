// Package config loads the teatui runtime settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/on-the-ground/teatui/internal/logging"
	"github.com/on-the-ground/teatui/tea"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Effects tea.EffectsConfig `yaml:"effects"`
	Log     logging.Config    `yaml:"log"`
	Metrics MetricsConfig     `yaml:"metrics"`
}

type MetricsConfig struct {
	// Addr is the listen address of the Prometheus endpoint. Empty disables it.
	Addr string `yaml:"addr"`
}

func Default() Config {
	return Config{
		Effects: tea.NewEffectsConfig(tea.EffectsSequential, 0, 1),
		Log:     logging.Config{Level: "info"},
	}
}

// Load reads path on top of Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Effects = tea.NewEffectsConfig(cfg.Effects.Mode, cfg.Effects.Workers, cfg.Effects.BufferSize)
	return cfg, nil
}
