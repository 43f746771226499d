// Package config loads the daemon configuration from
// ~/.config/wallpaperfree/config.yaml. A missing file yields the defaults;
// a present file is validated strictly.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// PlayerBinary overrides the mpv binary path. Empty means discover it
	// from WALLPAPERFREE_MPV_BINARY, next to the executable, or $PATH.
	PlayerBinary string `yaml:"player_binary,omitempty"`
	// PlayerArgs are extra arguments appended to every player invocation.
	PlayerArgs []string `yaml:"player_args,omitempty"`
	// FfmpegBinary overrides the ffmpeg binary used for thumbnails.
	FfmpegBinary string `yaml:"ffmpeg_binary,omitempty"`

	Display    string `yaml:"display,omitempty"`
	XAuthority string `yaml:"xauthority,omitempty"`
	LogLevel   string `yaml:"log_level"`

	// ReconcileIntervalSeconds is how often the daemon re-applies the
	// stored settings to catch crashed players and missed events.
	ReconcileIntervalSeconds int `yaml:"reconcile_interval_seconds"`
	// WakeCheckIntervalSeconds is the polling interval of the wake monitor.
	WakeCheckIntervalSeconds int `yaml:"wake_check_interval_seconds"`

	ThumbnailWidth int `yaml:"thumbnail_width"`
}

// ValidationError reports an invalid config value and where it lives.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:                 "info",
		ReconcileIntervalSeconds: 10,
		WakeCheckIntervalSeconds: 30,
		ThumbnailWidth:           320,
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "wallpaperfree", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from path. A missing file is not an
// error: the defaults apply.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.ReconcileIntervalSeconds < 0 {
		return &ValidationError{Path: "reconcile_interval_seconds", Err: fmt.Errorf("reconcile_interval_seconds must be >= 0")}
	}
	if c.WakeCheckIntervalSeconds < 0 {
		return &ValidationError{Path: "wake_check_interval_seconds", Err: fmt.Errorf("wake_check_interval_seconds must be >= 0")}
	}
	if c.ThumbnailWidth <= 0 {
		return &ValidationError{Path: "thumbnail_width", Err: fmt.Errorf("thumbnail_width must be > 0")}
	}
	return nil
}
