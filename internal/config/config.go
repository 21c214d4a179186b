// Package config loads the settings, colour thresholds and calibration
// profile the game runs with.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Every field is optional in the
// YAML file; missing fields keep the values from Default.
type Config struct {
	CameraID        int          `yaml:"camera_id"`
	CameraFPS       int          `yaml:"camera_fps"`
	CalibrationPath string       `yaml:"calibration_path"`
	ThresholdsPath  string       `yaml:"thresholds_path"`
	DatabasePath    string       `yaml:"database_path"` // empty disables round history
	ListenAddr      string       `yaml:"listen_addr"`   // empty disables the HTTP server
	GoDelayMs       int          `yaml:"go_delay_ms"`   // pause between the go cue and the capture
	Window          WindowConfig `yaml:"window"`
	Audio           AudioConfig  `yaml:"audio"`
}

// WindowConfig controls the display window.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// AudioConfig controls cue playback. Command is an argv template; the
// placeholders {freq}, {ms} and {sec} are substituted per cue.
type AudioConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Command   []string `yaml:"command"`
	TimeoutMs int      `yaml:"timeout_ms"`
	QueueSize int      `yaml:"queue_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dbPath := filepath.Join(".roshambo", "roshambo.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".roshambo", "roshambo.db")
	}

	return &Config{
		CameraID:        0,
		CameraFPS:       30,
		CalibrationPath: "calibration.yaml",
		ThresholdsPath:  "thresholds.ini",
		DatabasePath:    dbPath,
		ListenAddr:      "",
		GoDelayMs:       400,
		Window: WindowConfig{
			Title:      "Rock Paper Scissors",
			Fullscreen: true,
		},
		Audio: AudioConfig{
			Enabled:   true,
			Command:   []string{"play", "-q", "-n", "synth", "{sec}", "sine", "{freq}"},
			TimeoutMs: 2000,
			QueueSize: 8,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error and yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.CameraID < 0 {
		return fmt.Errorf("camera_id must be >= 0, got %d", c.CameraID)
	}
	if c.CameraFPS <= 0 {
		return fmt.Errorf("camera_fps must be > 0, got %d", c.CameraFPS)
	}
	if c.GoDelayMs < 0 {
		return fmt.Errorf("go_delay_ms must be >= 0, got %d", c.GoDelayMs)
	}
	if c.Audio.Enabled {
		if len(c.Audio.Command) == 0 {
			return errors.New("audio.command is required when audio is enabled")
		}
		if c.Audio.TimeoutMs <= 0 {
			return fmt.Errorf("audio.timeout_ms must be > 0, got %d", c.Audio.TimeoutMs)
		}
		if c.Audio.QueueSize <= 0 {
			return fmt.Errorf("audio.queue_size must be > 0, got %d", c.Audio.QueueSize)
		}
	}
	return nil
}

// GoDelay returns GoDelayMs as a duration.
func (c *Config) GoDelay() time.Duration {
	return time.Duration(c.GoDelayMs) * time.Millisecond
}

// AudioTimeout returns Audio.TimeoutMs as a duration.
func (c *Config) AudioTimeout() time.Duration {
	return time.Duration(c.Audio.TimeoutMs) * time.Millisecond
}
