// Package player manages looping video playback attached to wallpaper
// windows. Playback is delegated to an mpv subprocess embedded into the
// window via --wid; looping is handled by mpv itself (--loop-file=inf) and a
// watchdog restarts the process should it exit while the instance is live.
package player

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Player controls one running playback attached to a wallpaper window.
type Player interface {
	// SetVolume applies a volume in 0.0–1.0 to the running player.
	SetVolume(v float64) error
	// Stop terminates playback and releases the process.
	Stop()
	// Alive reports whether the playback process is still running.
	Alive() bool
}

// Options carries everything needed to start one playback.
type Options struct {
	// SourcePath is the absolute path of the video file to loop.
	SourcePath string
	// WindowID is the X11 window the video is rendered into.
	WindowID uint32
	// Volume is the initial volume in 0.0–1.0.
	Volume float64
	// SocketPath is the control socket for live volume changes.
	SocketPath string
	// ExtraArgs are appended to the player command line (from config).
	ExtraArgs []string
}

// Factory starts players. The engine depends on this seam so tests can
// substitute fakes for the mpv subprocess.
type Factory interface {
	Start(opts Options) (Player, error)
}

// FindBinary locates a player or tool binary. Search order: the override
// env var, a sibling of the executable, then PATH.
func FindBinary(name, envVar string) (string, error) {
	if override := os.Getenv(envVar); override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("%s points to %q: %w", envVar, override, err)
		}
		return override, nil
	}

	if exe, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(exe), name)
		if info, err := os.Stat(sibling); err == nil && !info.IsDir() {
			return sibling, nil
		}
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	return path, nil
}
