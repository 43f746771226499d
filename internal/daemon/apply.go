package daemon

import (
	"log/slog"

	"github.com/aggressorcorp/WallpaperFree/internal/engine"
	"github.com/aggressorcorp/WallpaperFree/internal/platform"
	"github.com/aggressorcorp/WallpaperFree/internal/screen"
	"github.com/aggressorcorp/WallpaperFree/internal/store"
)

// Applier drives the engine toward the stored settings. Each pass compares
// what is playing against what the settings say should play and starts or
// stops playback to close the gap.
type Applier struct {
	backend platform.Backend
	store   *store.Store
	engine  *engine.Engine
	logger  *slog.Logger
}

// NewApplier creates an applier over the given backend, store and engine.
func NewApplier(backend platform.Backend, st *store.Store, eng *engine.Engine, logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applier{
		backend: backend,
		store:   st,
		engine:  eng,
		logger:  logger,
	}
}

// desired is the playback a single screen should be running.
type desired struct {
	display platform.Display
	source  string
}

// Apply performs a single convergence pass. Screens that are enabled and
// reference an existing library entry start playing; everything else stops.
// Crashed players are detected and restarted on the next pass.
func (a *Applier) Apply() {
	displays, err := a.backend.Displays()
	if err != nil {
		a.logger.Error("applier: failed to enumerate displays", "error", err)
		return
	}

	want := make(map[string]desired)
	for _, d := range displays {
		key := screen.Key(d)
		settings := a.store.GetSettings(key)
		if !settings.Enabled || settings.VideoFileID == "" {
			continue
		}
		video, ok := a.store.Video(settings.VideoFileID)
		if !ok {
			a.logger.Warn("applier: screen references unknown video",
				"screen", key,
				"video_id", settings.VideoFileID)
			continue
		}
		want[key] = desired{display: d, source: video.Path}
	}

	// A dead player keeps its window and registry entry; stop it so the
	// start loop below relaunches it.
	for _, key := range a.engine.DeadKeys() {
		a.logger.Warn("applier: player died, restarting", "screen", key)
		a.engine.Stop(key)
	}

	for key, source := range a.engine.ActiveSources() {
		w, ok := want[key]
		if ok && w.source == source {
			continue
		}
		a.engine.Stop(key)
	}

	for key, w := range want {
		if a.engine.IsRunning(key) {
			continue
		}
		a.logger.Info("applier: starting wallpaper", "screen", key, "source", w.source)
		if err := a.engine.Start(w.display, w.source); err != nil {
			a.logger.Error("applier: failed to start wallpaper",
				"screen", key,
				"error", err)
		}
	}

	a.engine.SetVolume(a.store.Volume())
}
