package engine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/aggressorcorp/WallpaperFree/internal/platform"
	"github.com/aggressorcorp/WallpaperFree/internal/player"
)

type fakeBackend struct {
	mu        sync.Mutex
	displays  []platform.Display
	nextID    platform.WindowID
	created   int
	destroyed []platform.WindowID
	live      map[platform.WindowID]bool
}

func newFakeBackend(displays ...platform.Display) *fakeBackend {
	return &fakeBackend{displays: displays, live: make(map[platform.WindowID]bool)}
}

func (b *fakeBackend) Displays() ([]platform.Display, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]platform.Display, len(b.displays))
	copy(out, b.displays)
	return out, nil
}

func (b *fakeBackend) CreateWallpaperWindow(title string, frame platform.Rect) (platform.WindowID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.created++
	b.live[b.nextID] = true
	return b.nextID, nil
}

func (b *fakeBackend) DestroyWindow(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.live[id] {
		return fmt.Errorf("destroy of unknown window %d", id)
	}
	delete(b.live, id)
	b.destroyed = append(b.destroyed, id)
	return nil
}

func (b *fakeBackend) liveWindows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.live)
}

type fakePlayer struct {
	mu      sync.Mutex
	volume  float64
	stopped bool
}

func (p *fakePlayer) SetVolume(v float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
	return nil
}

func (p *fakePlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
}

func (p *fakePlayer) Alive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.stopped
}

type fakeFactory struct {
	mu      sync.Mutex
	started []*fakePlayer
	opts    []player.Options
}

func (f *fakeFactory) Start(opts player.Options) (player.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &fakePlayer{volume: opts.Volume}
	f.started = append(f.started, p)
	f.opts = append(f.opts, opts)
	return p, nil
}

func display(output string, x, y, w, h int) platform.Display {
	return platform.Display{Output: output, Frame: platform.Rect{X: x, Y: y, Width: w, Height: h}}
}

func newTestEngine(t *testing.T, backend *fakeBackend, factory *fakeFactory) *Engine {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	return New(backend, factory, 0.5, nil)
}

func TestStart_BeginsPlaybackForScreen(t *testing.T) {
	d := display("HDMI-1", 0, 0, 1920, 1080)
	backend := newFakeBackend(d)
	factory := &fakeFactory{}
	e := newTestEngine(t, backend, factory)

	if err := e.Start(d, "/videos/sea.mp4"); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	if !e.IsRunning("screen_HDMI-1") {
		t.Fatal("expected screen_HDMI-1 to be running")
	}
	if len(factory.started) != 1 {
		t.Fatalf("expected 1 player, got %d", len(factory.started))
	}
	if factory.opts[0].Volume != 0.5 {
		t.Fatalf("player seeded with volume %v, want 0.5", factory.opts[0].Volume)
	}
}

func TestStart_TwiceLeavesExactlyOneInstance(t *testing.T) {
	d := display("HDMI-1", 0, 0, 1920, 1080)
	backend := newFakeBackend(d)
	factory := &fakeFactory{}
	e := newTestEngine(t, backend, factory)

	if err := e.Start(d, "/videos/sea.mp4"); err != nil {
		t.Fatalf("first Start error: %v", err)
	}
	if err := e.Start(d, "/videos/rain.mp4"); err != nil {
		t.Fatalf("second Start error: %v", err)
	}

	if backend.liveWindows() != 1 {
		t.Fatalf("expected exactly 1 live window, got %d", backend.liveWindows())
	}
	if !factory.started[0].stopped {
		t.Fatal("expected first player to be released")
	}
	if factory.started[1].stopped {
		t.Fatal("expected second player to keep playing")
	}
	sources := e.ActiveSources()
	if sources["screen_HDMI-1"] != "/videos/rain.mp4" {
		t.Fatalf("active source = %q, want the restarted one", sources["screen_HDMI-1"])
	}
}

func TestStop_UnknownKeyIsNoop(t *testing.T) {
	backend := newFakeBackend()
	factory := &fakeFactory{}
	e := newTestEngine(t, backend, factory)

	e.Stop("screen_HDMI-9")

	if backend.liveWindows() != 0 || len(backend.destroyed) != 0 {
		t.Fatal("expected engine state unchanged")
	}
}

func TestStopAll_ReleasesEverything(t *testing.T) {
	d1 := display("HDMI-1", 0, 0, 1920, 1080)
	d2 := display("DP-2", 1920, 0, 2560, 1440)
	backend := newFakeBackend(d1, d2)
	factory := &fakeFactory{}
	e := newTestEngine(t, backend, factory)

	e.Start(d1, "/videos/sea.mp4")
	e.Start(d2, "/videos/rain.mp4")
	e.StopAll()

	if backend.liveWindows() != 0 {
		t.Fatalf("expected no live windows, got %d", backend.liveWindows())
	}
	for i, p := range factory.started {
		if !p.stopped {
			t.Fatalf("player %d not stopped", i)
		}
	}
	if e.IsRunning("screen_HDMI-1") || e.IsRunning("screen_DP-2") {
		t.Fatal("expected no running screens")
	}
}

func TestSetVolume_AppliesToAllActivePlayers(t *testing.T) {
	d1 := display("HDMI-1", 0, 0, 1920, 1080)
	d2 := display("DP-2", 1920, 0, 2560, 1440)
	backend := newFakeBackend(d1, d2)
	factory := &fakeFactory{}
	e := newTestEngine(t, backend, factory)

	e.Start(d1, "/videos/sea.mp4")
	e.Start(d2, "/videos/rain.mp4")

	e.SetVolume(0.4)

	for i, p := range factory.started {
		if p.volume != 0.4 {
			t.Fatalf("player %d volume = %v, want 0.4", i, p.volume)
		}
	}
	if e.Volume() != 0.4 {
		t.Fatalf("engine volume = %v, want 0.4", e.Volume())
	}

	// Clamped at both ends.
	e.SetVolume(2)
	if e.Volume() != 1 {
		t.Fatalf("engine volume = %v, want 1", e.Volume())
	}
}

func TestReconcile_RestoresSurvivorsDropsDisconnected(t *testing.T) {
	d1 := display("HDMI-1", 0, 0, 1920, 1080)
	d2 := display("DP-2", 1920, 0, 2560, 1440)
	backend := newFakeBackend(d1, d2)
	factory := &fakeFactory{}
	e := newTestEngine(t, backend, factory)

	e.Start(d1, "/videos/sea.mp4")
	e.Start(d2, "/videos/rain.mp4")

	// DP-2 is unplugged; HDMI-1 survives at a new position.
	backend.mu.Lock()
	backend.displays = []platform.Display{display("HDMI-1", 100, 0, 1920, 1080)}
	backend.mu.Unlock()

	e.Reconcile()

	if !e.IsRunning("screen_HDMI-1") {
		t.Fatal("expected surviving screen to be active again")
	}
	if e.IsRunning("screen_DP-2") {
		t.Fatal("expected disconnected screen to be dropped")
	}
	sources := e.ActiveSources()
	if sources["screen_HDMI-1"] != "/videos/sea.mp4" {
		t.Fatalf("restored source = %q, want original", sources["screen_HDMI-1"])
	}
	if backend.liveWindows() != 1 {
		t.Fatalf("expected 1 live window after reconcile, got %d", backend.liveWindows())
	}
}

func TestReconcile_MatchesGeometryKeys(t *testing.T) {
	anon := platform.Display{Frame: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}}
	backend := newFakeBackend(anon)
	factory := &fakeFactory{}
	e := newTestEngine(t, backend, factory)

	e.Start(anon, "/videos/sea.mp4")
	if !e.IsRunning("display_1920x1080_0_0") {
		t.Fatal("expected geometry-derived key to be active")
	}

	e.Reconcile()

	if !e.IsRunning("display_1920x1080_0_0") {
		t.Fatal("expected geometry-derived key to survive reconcile")
	}
}

func TestDeadKeys_ReportsStoppedPlayers(t *testing.T) {
	d := display("HDMI-1", 0, 0, 1920, 1080)
	backend := newFakeBackend(d)
	factory := &fakeFactory{}
	e := newTestEngine(t, backend, factory)

	e.Start(d, "/videos/sea.mp4")
	if got := e.DeadKeys(); len(got) != 0 {
		t.Fatalf("expected no dead keys, got %v", got)
	}

	factory.started[0].Stop()
	got := e.DeadKeys()
	if len(got) != 1 || got[0] != "screen_HDMI-1" {
		t.Fatalf("DeadKeys = %v, want [screen_HDMI-1]", got)
	}
}
