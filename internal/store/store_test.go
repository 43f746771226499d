package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	s := Open(path, nil)
	s.fileExists = func(string) bool { return true }
	return s, path
}

func writeVideo(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not a real video"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestAddVideo_DedupesByExactPath(t *testing.T) {
	s, _ := tempStore(t)

	a := s.AddVideo("/videos/sea.mp4")
	b := s.AddVideo("/videos/sea.mp4")

	if a.ID != b.ID {
		t.Fatalf("expected dedupe, got ids %q and %q", a.ID, b.ID)
	}
	if got := len(s.Videos()); got != 1 {
		t.Fatalf("expected 1 library entry, got %d", got)
	}
	if a.Name != "sea.mp4" {
		t.Fatalf("expected display name %q, got %q", "sea.mp4", a.Name)
	}
}

func TestRemoveVideo_ClearsReferencesAndDisablesScreens(t *testing.T) {
	s, _ := tempStore(t)

	v := s.AddVideo("/videos/sea.mp4")
	other := s.AddVideo("/videos/rain.mp4")
	s.UpdateSettings("screen_HDMI-1", ScreenSettings{VideoFileID: v.ID, Enabled: true})
	s.UpdateSettings("screen_DP-2", ScreenSettings{VideoFileID: other.ID, Enabled: true})

	s.RemoveVideo(v.ID)

	got := s.GetSettings("screen_HDMI-1")
	if got.VideoFileID != "" {
		t.Fatalf("expected cleared reference, got %q", got.VideoFileID)
	}
	if got.Enabled {
		t.Fatal("expected referencing screen to be force-disabled")
	}

	// Unrelated screens are untouched.
	unrelated := s.GetSettings("screen_DP-2")
	if unrelated.VideoFileID != other.ID || !unrelated.Enabled {
		t.Fatalf("unrelated screen mutated: %+v", unrelated)
	}

	if _, ok := s.Video(v.ID); ok {
		t.Fatal("expected video to be gone from library")
	}
}

func TestRemoveVideo_UnknownIDIsNoop(t *testing.T) {
	s, _ := tempStore(t)
	s.AddVideo("/videos/sea.mp4")

	s.RemoveVideo("nope")

	if got := len(s.Videos()); got != 1 {
		t.Fatalf("expected library untouched, got %d entries", got)
	}
}

func TestGetSettings_DefaultsWhenAbsent(t *testing.T) {
	s, _ := tempStore(t)

	got := s.GetSettings("screen_HDMI-1")
	if got.VideoFileID != "" || got.Enabled {
		t.Fatalf("expected zero settings, got %+v", got)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	videoPath := writeVideo(t, dir, "sea.mp4")

	s := Open(path, nil)
	v := s.AddVideo(videoPath)
	s.UpdateSettings("screen_HDMI-1", ScreenSettings{VideoFileID: v.ID, Enabled: true})
	s.SetVolume(0.4)

	reloaded := Open(path, nil)
	if got := len(reloaded.Videos()); got != 1 {
		t.Fatalf("expected 1 entry after reload, got %d", got)
	}
	settings := reloaded.GetSettings("screen_HDMI-1")
	if settings.VideoFileID != v.ID || !settings.Enabled {
		t.Fatalf("settings lost on reload: %+v", settings)
	}
	if got := reloaded.Volume(); got != 0.4 {
		t.Fatalf("expected volume 0.4 after reload, got %v", got)
	}
}

func TestLoad_DropsEntriesWithMissingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	keep := writeVideo(t, dir, "keep.mp4")

	s := Open(path, nil)
	s.AddVideo(keep)
	s.AddVideo(filepath.Join(dir, "gone.mp4")) // never written

	reloaded := Open(path, nil)
	videos := reloaded.Videos()
	if len(videos) != 1 {
		t.Fatalf("expected missing-file entry to be dropped, got %d entries", len(videos))
	}
	if videos[0].Path != keep {
		t.Fatalf("kept wrong entry: %+v", videos[0])
	}
}

func TestLoad_CorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := Open(path, nil)
	if got := len(s.Videos()); got != 0 {
		t.Fatalf("expected empty library from corrupt state, got %d", got)
	}
	if got := s.Volume(); got != DefaultVolume {
		t.Fatalf("expected default volume, got %v", got)
	}
}

func TestSetVolume_ClampsAndPersists(t *testing.T) {
	s, path := tempStore(t)

	s.SetVolume(1.7)
	if got := s.Volume(); got != 1.0 {
		t.Fatalf("expected clamp to 1.0, got %v", got)
	}
	s.SetVolume(-0.2)
	if got := s.Volume(); got != 0.0 {
		t.Fatalf("expected clamp to 0.0, got %v", got)
	}

	s.SetVolume(0.4)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("parse state: %v", err)
	}
	if string(raw["videoVolume"]) != "0.4" {
		t.Fatalf("persisted volume = %s, want 0.4", raw["videoVolume"])
	}
}

func TestSubscribe_FiresOnMutation(t *testing.T) {
	s, _ := tempStore(t)

	calls := 0
	s.Subscribe(func() { calls++ })

	v := s.AddVideo("/videos/sea.mp4")
	s.UpdateSettings("screen_HDMI-1", ScreenSettings{VideoFileID: v.ID, Enabled: true})
	s.SetVolume(0.3)
	s.RemoveVideo(v.ID)

	if calls != 4 {
		t.Fatalf("expected 4 notifications, got %d", calls)
	}
}
