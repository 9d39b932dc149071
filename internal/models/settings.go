package models

import (
	"path/filepath"
	"time"
)

// Defaults for settings left empty in settings.yaml.
const (
	DefaultPipeName     = "statusbar_control"
	DefaultPollInterval = 100 * time.Millisecond
	DefaultColor        = "#8E8E93"
	DefaultLogLevel     = "info"
)

// PipeConfig holds control pipe settings.
type PipeConfig struct {
	Path         string        `yaml:"path"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// AppearanceConfig holds indicator appearance settings.
type AppearanceConfig struct {
	DefaultColor string `yaml:"default_color"` // used when an add carries a bad color
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// Settings represents global application settings.
// This corresponds to ~/.pipebar/settings.yaml.
type Settings struct {
	Version    int              `yaml:"version"`
	Pipe       PipeConfig       `yaml:"pipe"`
	Appearance AppearanceConfig `yaml:"appearance"`
	Log        LogConfig        `yaml:"log"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Pipe: PipeConfig{
			Path:         DefaultPipePath(),
			PollInterval: DefaultPollInterval,
		},
		Appearance: AppearanceConfig{
			DefaultColor: DefaultColor,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// DefaultPipeDir is /tmp on every platform, never $TMPDIR, which macOS sets
// per login session.
const DefaultPipeDir = "/tmp"

// DefaultPipePath is the well-known pipe location.
func DefaultPipePath() string {
	return filepath.Join(DefaultPipeDir, DefaultPipeName)
}

// ApplyDefaults fills zero-valued fields, e.g. keys deleted from the file.
func (s *Settings) ApplyDefaults() {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.Pipe.Path == "" {
		s.Pipe.Path = DefaultPipePath()
	}
	if s.Pipe.PollInterval <= 0 {
		s.Pipe.PollInterval = DefaultPollInterval
	}
	if s.Appearance.DefaultColor == "" {
		s.Appearance.DefaultColor = DefaultColor
	}
	if s.Log.Level == "" {
		s.Log.Level = DefaultLogLevel
	}
}
