package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPath_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath error: %v", err)
	}

	want := DefaultConfig()
	if cfg.LogLevel != want.LogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, want.LogLevel)
	}
	if cfg.ReconcileIntervalSeconds != want.ReconcileIntervalSeconds {
		t.Errorf("ReconcileIntervalSeconds = %d, want %d", cfg.ReconcileIntervalSeconds, want.ReconcileIntervalSeconds)
	}
	if cfg.ThumbnailWidth != want.ThumbnailWidth {
		t.Errorf("ThumbnailWidth = %d, want %d", cfg.ThumbnailWidth, want.ThumbnailWidth)
	}
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
player_binary: /opt/mpv/bin/mpv
player_args: ["--hwdec=vaapi"]
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath error: %v", err)
	}

	if cfg.PlayerBinary != "/opt/mpv/bin/mpv" {
		t.Errorf("PlayerBinary = %q", cfg.PlayerBinary)
	}
	if len(cfg.PlayerArgs) != 1 || cfg.PlayerArgs[0] != "--hwdec=vaapi" {
		t.Errorf("PlayerArgs = %v", cfg.PlayerArgs)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	// Untouched fields keep their defaults.
	if cfg.WakeCheckIntervalSeconds != 30 {
		t.Errorf("WakeCheckIntervalSeconds = %d, want 30", cfg.WakeCheckIntervalSeconds)
	}
}

func TestLoadFromPath_InvalidLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: loud\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if verr.Path != "log_level" {
		t.Errorf("error path = %q, want log_level", verr.Path)
	}
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate_NegativeIntervals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReconcileIntervalSeconds = -1
	if cfg.Validate() == nil {
		t.Fatal("expected validation error for negative reconcile interval")
	}

	cfg = DefaultConfig()
	cfg.ThumbnailWidth = 0
	if cfg.Validate() == nil {
		t.Fatal("expected validation error for zero thumbnail width")
	}
}
