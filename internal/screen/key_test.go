package screen

import (
	"testing"

	"github.com/aggressorcorp/WallpaperFree/internal/platform"
)

func TestKey_PrefersHardwareOutputName(t *testing.T) {
	d := platform.Display{
		Output: "HDMI-1",
		Frame:  platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
	}
	if got := Key(d); got != "screen_HDMI-1" {
		t.Fatalf("Key() = %q, want %q", got, "screen_HDMI-1")
	}
}

func TestKey_GeometryFallbackIsPureFunctionOfGeometry(t *testing.T) {
	frames := []platform.Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 2560, Height: 1440},
		{X: -1440, Y: 200, Width: 1440, Height: 900},
	}

	want := []string{
		"display_1920x1080_0_0",
		"display_2560x1440_1920_0",
		"display_1440x900_-1440_200",
	}

	// Same geometry yields the same key regardless of call order.
	for round := 0; round < 2; round++ {
		for i := len(frames) - 1; i >= 0; i-- {
			got := Key(platform.Display{Frame: frames[i]})
			if got != want[i] {
				t.Fatalf("Key(%+v) = %q, want %q", frames[i], got, want[i])
			}
		}
	}
}

func TestKey_DistinctGeometriesYieldDistinctKeys(t *testing.T) {
	a := Key(platform.Display{Frame: platform.Rect{Width: 1920, Height: 1080}})
	b := Key(platform.Display{Frame: platform.Rect{Width: 1920, Height: 1080, X: 1920}})
	if a == b {
		t.Fatalf("expected distinct keys, both = %q", a)
	}
}

func TestResolve_MatchesByKey(t *testing.T) {
	displays := []platform.Display{
		{Output: "eDP-1", Frame: platform.Rect{Width: 1920, Height: 1080}},
		{Output: "DP-2", Frame: platform.Rect{X: 1920, Width: 2560, Height: 1440}},
	}

	d, ok := Resolve("screen_DP-2", displays)
	if !ok {
		t.Fatal("expected screen_DP-2 to resolve")
	}
	if d.Output != "DP-2" {
		t.Fatalf("resolved wrong display: %+v", d)
	}

	if _, ok := Resolve("screen_HDMI-3", displays); ok {
		t.Fatal("expected disconnected key to not resolve")
	}
}

func TestResolve_GeometryKeySurvivesOutputNameAppearing(t *testing.T) {
	// A display recorded under its geometry key (no output name at the time)
	// still resolves after the output name becomes available.
	displays := []platform.Display{
		{Output: "HDMI-1", Frame: platform.Rect{Width: 1920, Height: 1080}},
	}

	d, ok := Resolve("display_1920x1080_0_0", displays)
	if !ok {
		t.Fatal("expected geometry key to resolve against named display")
	}
	if d.Output != "HDMI-1" {
		t.Fatalf("resolved wrong display: %+v", d)
	}
}
