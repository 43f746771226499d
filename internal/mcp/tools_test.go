package mcp

import (
	"context"
	"fmt"
	"testing"

	"github.com/aggressorcorp/WallpaperFree/internal/ipc"
)

// fakeClient records calls and serves canned data.
type fakeClient struct {
	videos      []ipc.VideoInfo
	screens     []ipc.ScreenInfo
	setVideo    []string // "key=id"
	setEnabled  []string // "key=bool"
	setVolume   []float64
	removedIDs  []string
	addedPaths  []string
	failNextAdd bool
}

func (c *fakeClient) GetStatus() (*ipc.StatusData, error) {
	return &ipc.StatusData{DaemonRunning: true, ScreenCount: len(c.screens), LibraryCount: len(c.videos), Volume: 0.5}, nil
}

func (c *fakeClient) ListLibrary() (*ipc.LibraryData, error) {
	return &ipc.LibraryData{Videos: c.videos}, nil
}

func (c *fakeClient) AddVideo(path string) (*ipc.VideoInfo, error) {
	if c.failNextAdd {
		return nil, fmt.Errorf("daemon error: Cannot access video file")
	}
	c.addedPaths = append(c.addedPaths, path)
	return &ipc.VideoInfo{ID: "new-id", Name: "clip.mp4", Path: path}, nil
}

func (c *fakeClient) RemoveVideo(id string) error {
	c.removedIDs = append(c.removedIDs, id)
	return nil
}

func (c *fakeClient) ListScreens() (*ipc.ScreensData, error) {
	return &ipc.ScreensData{Screens: c.screens}, nil
}

func (c *fakeClient) SetScreenVideo(screenKey, videoID string) error {
	c.setVideo = append(c.setVideo, screenKey+"="+videoID)
	return nil
}

func (c *fakeClient) SetScreenEnabled(screenKey string, enabled bool) error {
	c.setEnabled = append(c.setEnabled, fmt.Sprintf("%s=%v", screenKey, enabled))
	return nil
}

func (c *fakeClient) SetVolume(volume float64) error {
	c.setVolume = append(c.setVolume, volume)
	return nil
}

func TestSetWallpaper_EnablesByDefault(t *testing.T) {
	client := &fakeClient{}
	s := NewServer(client)

	_, out, err := s.handleSetWallpaper(context.Background(), nil, SetWallpaperInput{
		ScreenKey: "screen_HDMI-1",
		VideoID:   "vid-1",
	})
	if err != nil {
		t.Fatalf("handleSetWallpaper error: %v", err)
	}

	if !out.Enabled {
		t.Fatal("expected screen to be enabled by default")
	}
	if len(client.setVideo) != 1 || client.setVideo[0] != "screen_HDMI-1=vid-1" {
		t.Fatalf("setVideo calls = %v", client.setVideo)
	}
	if len(client.setEnabled) != 1 || client.setEnabled[0] != "screen_HDMI-1=true" {
		t.Fatalf("setEnabled calls = %v", client.setEnabled)
	}
}

func TestSetWallpaper_RequiresKeyAndID(t *testing.T) {
	s := NewServer(&fakeClient{})

	if _, _, err := s.handleSetWallpaper(context.Background(), nil, SetWallpaperInput{VideoID: "vid-1"}); err == nil {
		t.Fatal("expected error for missing screen_key")
	}
	if _, _, err := s.handleSetWallpaper(context.Background(), nil, SetWallpaperInput{ScreenKey: "screen_HDMI-1"}); err == nil {
		t.Fatal("expected error for missing video_id")
	}
}

func TestSetVolume_RejectsOutOfRange(t *testing.T) {
	client := &fakeClient{}
	s := NewServer(client)

	if _, _, err := s.handleSetVolume(context.Background(), nil, SetVolumeInput{Volume: 1.5}); err == nil {
		t.Fatal("expected error for volume > 1")
	}
	if _, _, err := s.handleSetVolume(context.Background(), nil, SetVolumeInput{Volume: -0.1}); err == nil {
		t.Fatal("expected error for negative volume")
	}
	if len(client.setVolume) != 0 {
		t.Fatalf("expected no volume calls, got %v", client.setVolume)
	}

	if _, out, err := s.handleSetVolume(context.Background(), nil, SetVolumeInput{Volume: 0.3}); err != nil || out.Volume != 0.3 {
		t.Fatalf("valid volume: out=%v err=%v", out, err)
	}
}

func TestListScreens_MapsFields(t *testing.T) {
	client := &fakeClient{screens: []ipc.ScreenInfo{{
		Key: "screen_DP-2", Output: "DP-2", Primary: true,
		Width: 2560, Height: 1440, Enabled: true, VideoID: "vid-9", VideoName: "rain.mp4", Playing: true,
	}}}
	s := NewServer(client)

	_, out, err := s.handleListScreens(context.Background(), nil, ListScreensInput{})
	if err != nil {
		t.Fatalf("handleListScreens error: %v", err)
	}
	if len(out.Screens) != 1 {
		t.Fatalf("screens = %d, want 1", len(out.Screens))
	}
	sc := out.Screens[0]
	if sc.Key != "screen_DP-2" || !sc.Primary || !sc.Playing || sc.VideoName != "rain.mp4" {
		t.Fatalf("mapped screen = %+v", sc)
	}
}
