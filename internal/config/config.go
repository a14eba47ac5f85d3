// Package config loads the cubesim YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Dir is the per-user directory holding the config file and journal.
const Dir = ".cubesim"

// Config is the on-disk configuration.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Scramble  ScrambleConfig  `yaml:"scramble"`
	Camera    CameraConfig    `yaml:"camera"`
	Solver    SolverConfig    `yaml:"solver"`
	Journal   JournalConfig   `yaml:"journal"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type AnimationConfig struct {
	Duration time.Duration `yaml:"duration"`
}

type ScrambleConfig struct {
	Length int `yaml:"length"`
}

type CameraConfig struct {
	Distance float64 `yaml:"distance"`
	Pitch    float64 `yaml:"pitch"`
	Yaw      float64 `yaml:"yaw"`
	FOV      float64 `yaml:"fov"`
}

// SolverConfig names an external two-phase solver. The facelet string is
// substituted for a "{facelets}" argument, or appended when none is present.
type SolverConfig struct {
	Command string        `yaml:"command"`
	Args    []string      `yaml:"args,omitempty"`
	Timeout time.Duration `yaml:"timeout"`
}

type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// MetricsConfig holds the listen address for /metrics; empty disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Animation: AnimationConfig{Duration: 500 * time.Millisecond},
		Scramble:  ScrambleConfig{Length: 20},
		Camera: CameraConfig{
			Distance: 8,
			Pitch:    30,
			Yaw:      45,
			FOV:      45,
		},
		Solver:  SolverConfig{Timeout: 10 * time.Second},
		Journal: JournalConfig{Enabled: true},
		Log:     LogConfig{Level: "info"},
	}
}

// DefaultPath returns ~/.cubesim/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, Dir, "config.yaml"), nil
}

// Load reads the config at path, or DefaultPath when path is empty. A missing
// file is created with the defaults. Fields absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Animation.Duration <= 0 {
		return fmt.Errorf("animation.duration must be positive, got %s", c.Animation.Duration)
	}
	if c.Scramble.Length <= 0 {
		return fmt.Errorf("scramble.length must be positive, got %d", c.Scramble.Length)
	}
	if c.Camera.Distance <= 0 {
		return fmt.Errorf("camera.distance must be positive, got %g", c.Camera.Distance)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov must be in (0, 180), got %g", c.Camera.FOV)
	}
	if c.Solver.Timeout < 0 {
		return fmt.Errorf("solver.timeout must not be negative, got %s", c.Solver.Timeout)
	}
	return nil
}

// JournalPath returns the journal database path, defaulting to
// ~/.cubesim/journal.db.
func (c *Config) JournalPath() (string, error) {
	if c.Journal.DBPath != "" {
		return c.Journal.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, Dir, "journal.db"), nil
}
