package runtimepath

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got == "" {
		t.Fatal("Dir() returned empty path")
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/wallpaperfree-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestSocketPaths(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	socket, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() error: %v", err)
	}
	if !strings.HasSuffix(socket, "/wallpaperfree.sock") {
		t.Fatalf("SocketPath() = %q, missing suffix", socket)
	}

	player, err := PlayerSocketPath("display_1920x1080_0_0")
	if err != nil {
		t.Fatalf("PlayerSocketPath() error: %v", err)
	}
	if !strings.HasSuffix(player, "/wallpaperfree-player-display_1920x1080_0_0.sock") {
		t.Fatalf("PlayerSocketPath() = %q, missing suffix", player)
	}

	// Characters unsafe in file names are flattened to underscores.
	player, err = PlayerSocketPath("screen_HDMI-1.2")
	if err != nil {
		t.Fatalf("PlayerSocketPath() error: %v", err)
	}
	if !strings.HasSuffix(player, "/wallpaperfree-player-screen_HDMI-1_2.sock") {
		t.Fatalf("PlayerSocketPath() = %q, missing flattened suffix", player)
	}
}
