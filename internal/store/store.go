// Package store persists the video library, per-screen settings and the
// global volume. All mutations persist immediately; a failed write is logged
// and swallowed since this is local single-user state.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/aggressorcorp/WallpaperFree/internal/library"
)

// ScreenSettings is the persisted per-screen-key state. A screen is only
// playable when Enabled is true and VideoFileID resolves in the library.
type ScreenSettings struct {
	VideoFileID string `json:"videoFileID,omitempty"`
	Enabled     bool   `json:"isEnabled"`
}

// DefaultVolume is used when no volume has been persisted yet.
const DefaultVolume = 0.5

// state is the serialized shape of the settings file.
type state struct {
	VideoLibrary   []library.VideoFile       `json:"videoLibrary"`
	ScreenSettings map[string]ScreenSettings `json:"screenSettings"`
	VideoVolume    *float64                  `json:"videoVolume,omitempty"`
}

// Store holds the settings state and persists it to a single JSON file.
type Store struct {
	mu          sync.Mutex
	path        string
	videos      []library.VideoFile
	screens     map[string]ScreenSettings
	volume      float64
	subscribers []func()
	logger      *slog.Logger

	// fileExists is swapped in tests.
	fileExists func(string) bool
}

// DefaultPath returns the standard settings file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "wallpaperfree", "state.json"), nil
}

// Open loads the store from path. A missing or unreadable file yields an
// empty store: persisted-state corruption degrades to "no saved state".
// Library entries whose backing file no longer exists are silently dropped.
func Open(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		path:    path,
		screens: make(map[string]ScreenSettings),
		volume:  DefaultVolume,
		logger:  logger,
		fileExists: func(p string) bool {
			_, err := os.Stat(p)
			return err == nil
		},
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("settings unreadable, starting empty", "path", s.path, "error", err)
		}
		return
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Warn("settings corrupt, starting empty", "path", s.path, "error", err)
		return
	}

	for _, v := range st.VideoLibrary {
		if !s.fileExists(v.Path) {
			s.logger.Info("dropping library entry with missing file", "name", v.Name, "path", v.Path)
			continue
		}
		s.videos = append(s.videos, v)
	}
	for key, settings := range st.ScreenSettings {
		s.screens[key] = settings
	}
	if st.VideoVolume != nil {
		s.volume = clampVolume(*st.VideoVolume)
	}
}

// persist writes the current state. Must be called with mu held.
func (s *Store) persist() {
	st := state{
		VideoLibrary:   s.videos,
		ScreenSettings: s.screens,
		VideoVolume:    &s.volume,
	}
	if st.VideoLibrary == nil {
		st.VideoLibrary = []library.VideoFile{}
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		s.logger.Warn("failed to encode settings", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		s.logger.Warn("failed to create settings directory", "error", err)
		return
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		s.logger.Warn("failed to write settings", "path", s.path, "error", err)
	}
}

// notify fires subscriber callbacks. Must be called with mu released.
func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Subscribe registers a callback invoked after every mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Videos returns a copy of the library.
func (s *Store) Videos() []library.VideoFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]library.VideoFile, len(s.videos))
	copy(out, s.videos)
	return out
}

// Video looks up a library entry by id.
func (s *Store) Video(id string) (library.VideoFile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.videos {
		if v.ID == id {
			return v, true
		}
	}
	return library.VideoFile{}, false
}

// AddVideo appends a video to the library and persists. Adding a path that
// is already present is a no-op and returns the existing entry.
func (s *Store) AddVideo(path string) library.VideoFile {
	s.mu.Lock()
	for _, v := range s.videos {
		if v.Path == path {
			s.mu.Unlock()
			return v
		}
	}
	v := library.NewVideoFile(path)
	s.videos = append(s.videos, v)
	s.persist()
	s.mu.Unlock()

	s.notify()
	return v
}

// RemoveVideo deletes a library entry. Every screen referencing the entry
// has its reference cleared and is force-disabled, then the state persists.
// Removing an unknown id is a no-op.
func (s *Store) RemoveVideo(id string) {
	s.mu.Lock()
	found := false
	kept := s.videos[:0]
	for _, v := range s.videos {
		if v.ID == id {
			found = true
			continue
		}
		kept = append(kept, v)
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.videos = kept

	for key, settings := range s.screens {
		if settings.VideoFileID == id {
			s.screens[key] = ScreenSettings{VideoFileID: "", Enabled: false}
		}
	}
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// GetSettings returns the stored settings for a screen key, or the default
// (no video, disabled) when absent.
func (s *Store) GetSettings(screenKey string) ScreenSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screens[screenKey]
}

// UpdateSettings upserts the settings for a screen key and persists.
func (s *Store) UpdateSettings(screenKey string, settings ScreenSettings) {
	s.mu.Lock()
	s.screens[screenKey] = settings
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// ScreenKeys returns every screen key with stored settings.
func (s *Store) ScreenKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.screens))
	for key := range s.screens {
		keys = append(keys, key)
	}
	return keys
}

// Volume returns the persisted global volume (0.0–1.0).
func (s *Store) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// SetVolume clamps and persists the global volume.
func (s *Store) SetVolume(v float64) {
	s.mu.Lock()
	s.volume = clampVolume(v)
	s.persist()
	s.mu.Unlock()

	s.notify()
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
