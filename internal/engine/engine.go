// Package engine owns the per-screen wallpaper instances: one borderless
// bottom-layer window plus one looping player per enabled screen key. The
// engine is the single owner of this runtime state; other components reach
// it only through its operations.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aggressorcorp/WallpaperFree/internal/platform"
	"github.com/aggressorcorp/WallpaperFree/internal/player"
	"github.com/aggressorcorp/WallpaperFree/internal/runtimepath"
	"github.com/aggressorcorp/WallpaperFree/internal/screen"
)

const (
	// ReconfigureDelay debounces screen-configuration-changed notifications.
	ReconfigureDelay = 500 * time.Millisecond
	// WakeDelay debounces wake-from-sleep; resume needs longer for display
	// enumeration to settle than a plain hot-plug.
	WakeDelay = 1 * time.Second
)

// instance is the live window/player pair for one screen key.
type instance struct {
	window platform.WindowID
	player player.Player
	source string
}

// Engine maps screen keys to active wallpaper instances.
type Engine struct {
	backend platform.Backend
	players player.Factory
	logger  *slog.Logger

	mu     sync.Mutex
	active map[string]*instance
	volume float64

	reconfigure *debouncer
	wake        *debouncer

	// onSettled runs after every debounced reconciliation, outside the
	// engine lock. The daemon hooks its settings applier in here so newly
	// connected screens pick up their stored configuration.
	onSettled func()
}

// New creates an engine. Initial volume seeds every player started later.
func New(backend platform.Backend, players player.Factory, volume float64, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		backend: backend,
		players: players,
		logger:  logger,
		active:  make(map[string]*instance),
		volume:  volume,
	}
	e.reconfigure = newDebouncer(ReconfigureDelay, e.settle)
	e.wake = newDebouncer(WakeDelay, e.settle)
	return e
}

// OnSettled registers a callback invoked after every debounced
// reconciliation. Must be set before the engine receives notifications.
func (e *Engine) OnSettled(fn func()) {
	e.onSettled = fn
}

func (e *Engine) settle() {
	e.reconcile()
	if e.onSettled != nil {
		e.onSettled()
	}
}

// Start creates the wallpaper instance for a display, replacing any instance
// already active under the display's key. At most one instance exists per
// key afterwards.
func (e *Engine) Start(d platform.Display, sourcePath string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startLocked(d, sourcePath)
}

func (e *Engine) startLocked(d platform.Display, sourcePath string) error {
	key := screen.Key(d)
	e.teardownLocked(key)

	window, err := e.backend.CreateWallpaperWindow("wallpaperfree "+key, d.Frame)
	if err != nil {
		return fmt.Errorf("failed to create wallpaper window for %s: %w", key, err)
	}

	socketPath, err := runtimepath.PlayerSocketPath(key)
	if err != nil {
		e.backend.DestroyWindow(window)
		return fmt.Errorf("failed to resolve player socket for %s: %w", key, err)
	}

	p, err := e.players.Start(player.Options{
		SourcePath: sourcePath,
		WindowID:   uint32(window),
		Volume:     e.volume,
		SocketPath: socketPath,
	})
	if err != nil {
		e.backend.DestroyWindow(window)
		return fmt.Errorf("failed to start player for %s: %w", key, err)
	}

	e.active[key] = &instance{window: window, player: p, source: sourcePath}
	e.logger.Info("wallpaper started", "screen", key, "source", sourcePath)
	return nil
}

// Stop tears down the instance for a screen key. Stopping a key with no
// active instance is a no-op.
func (e *Engine) Stop(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.teardownLocked(key)
}

// StopAll tears down every active instance.
func (e *Engine) StopAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for key := range e.active {
		e.teardownLocked(key)
	}
}

func (e *Engine) teardownLocked(key string) {
	inst, ok := e.active[key]
	if !ok {
		return
	}
	inst.player.Stop()
	if err := e.backend.DestroyWindow(inst.window); err != nil {
		e.logger.Warn("failed to destroy wallpaper window", "screen", key, "error", err)
	}
	delete(e.active, key)
	e.logger.Info("wallpaper stopped", "screen", key)
}

// IsRunning reports whether an active instance exists for a screen key.
func (e *Engine) IsRunning(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.active[key]
	return ok
}

// ActiveSources returns the source path of every active instance by key.
func (e *Engine) ActiveSources() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.active))
	for key, inst := range e.active {
		out[key] = inst.source
	}
	return out
}

// DeadKeys returns keys whose player process is no longer alive. The
// periodic reconciler uses this to prune instances that lost their player.
func (e *Engine) DeadKeys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var dead []string
	for key, inst := range e.active {
		if !inst.player.Alive() {
			dead = append(dead, key)
		}
	}
	return dead
}

// Volume returns the engine's global volume.
func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// SetVolume clamps the global volume and applies it to every active player.
// Newly started players pick up the new value automatically.
func (e *Engine) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	e.mu.Lock()
	e.volume = v
	for key, inst := range e.active {
		if err := inst.player.SetVolume(v); err != nil {
			e.logger.Warn("failed to apply volume", "screen", key, "error", err)
		}
	}
	e.mu.Unlock()
}

// NotifyScreensChanged schedules a reconciliation after the hot-plug
// debounce delay.
func (e *Engine) NotifyScreensChanged() {
	e.reconfigure.Trigger()
}

// NotifyWake schedules a reconciliation after the wake debounce delay.
func (e *Engine) NotifyWake() {
	e.wake.Trigger()
}

// Close cancels pending reconciliations and tears everything down.
func (e *Engine) Close() {
	e.reconfigure.Stop()
	e.wake.Stop()
	e.StopAll()
}

// Reconcile tears down every active instance and rebuilds those whose screen
// key still resolves against the currently connected displays. Keys that no
// longer resolve are dropped. Idempotent, so redundant passes are safe.
func (e *Engine) Reconcile() {
	e.reconcile()
}

func (e *Engine) reconcile() {
	displays, err := e.backend.Displays()
	if err != nil {
		e.logger.Error("reconcile: failed to enumerate displays", "error", err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	recorded := make(map[string]string, len(e.active))
	for key, inst := range e.active {
		recorded[key] = inst.source
	}

	// Teardown first: window handles that survived a configuration change
	// are not trustworthy, so everything is rebuilt from scratch.
	for key := range e.active {
		e.teardownLocked(key)
	}

	for key, source := range recorded {
		d, ok := screen.Resolve(key, displays)
		if !ok {
			e.logger.Info("screen disconnected, dropping wallpaper", "screen", key)
			continue
		}
		if err := e.startLocked(d, source); err != nil {
			e.logger.Warn("reconcile: failed to restore wallpaper", "screen", key, "error", err)
		}
	}
}
