// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config persists the tool's sticky settings as TOML under the
// user's config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	LastDir    string `toml:"last_dir"`
	PlotDir    string `toml:"plot_dir"`
	PlotFormat string `toml:"plot_format"`
	OpenCharts bool   `toml:"open_charts"`
	Language   string `toml:"language"`
}

// Default is what a fresh install runs with.
func Default() Config {
	return Config{
		PlotFormat: "png",
		OpenCharts: true,
		Language:   "zh",
	}
}

// Load reads the config file, returning defaults when it does not exist.
// The returned path is where Save should write.
func Load() (Config, string, error) {
	path, err := configPath()
	if err != nil {
		return Default(), "", err
	}
	cfg, err := loadTOML(path)
	if err == nil {
		return cfg, path, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return Default(), path, nil
	}
	return Default(), path, err
}

func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func configPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		var err error
		configHome, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}

	return filepath.Join(configHome, "vitals", "config.toml"), nil
}

func loadTOML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.PlotFormat == "" {
		cfg.PlotFormat = "png"
	}
	if cfg.Language == "" {
		cfg.Language = "zh"
	}
	return cfg, nil
}

// Keys lists the keys the config command accepts, in display order.
func Keys() []string {
	return []string{"last_dir", "plot_dir", "plot_format", "open_charts", "language"}
}

// Get renders one key's current value.
func Get(cfg Config, key string) (string, error) {
	switch key {
	case "last_dir":
		return cfg.LastDir, nil
	case "plot_dir":
		return cfg.PlotDir, nil
	case "plot_format":
		return cfg.PlotFormat, nil
	case "open_charts":
		return strconv.FormatBool(cfg.OpenCharts), nil
	case "language":
		return cfg.Language, nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

// Set validates and applies one key.
func Set(cfg *Config, key, value string) error {
	switch key {
	case "last_dir":
		cfg.LastDir = value
	case "plot_dir":
		cfg.PlotDir = value
	case "plot_format":
		switch value {
		case "png", "svg", "pdf":
			cfg.PlotFormat = value
		default:
			return fmt.Errorf("plot_format must be png, svg, or pdf, got %q", value)
		}
	case "open_charts":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("open_charts must be true or false, got %q", value)
		}
		cfg.OpenCharts = b
	case "language":
		switch value {
		case "zh", "en":
			cfg.Language = value
		default:
			return fmt.Errorf("language must be zh or en, got %q", value)
		}
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
