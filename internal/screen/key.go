// Package screen derives stable string keys for physical displays. The key
// is the sole identifier correlating persisted per-screen settings with live
// wallpaper windows and players; display handles are never stored because
// they are not stable across reconfiguration events.
package screen

import (
	"fmt"

	"github.com/aggressorcorp/WallpaperFree/internal/platform"
)

const (
	hardwarePrefix = "screen_"
	geometryPrefix = "display_"
)

// Key returns the stable key for a display. The hardware output name is
// preferred; when the window system cannot provide one the key is derived
// deterministically from the display's geometry, so the same physical
// position and size always yields the same key across restarts.
func Key(d platform.Display) string {
	if d.Output != "" {
		return hardwarePrefix + d.Output
	}
	return GeometryKey(d.Frame)
}

// GeometryKey derives a key purely from display geometry. Exposed separately
// because reconciliation matches recorded keys against both forms.
func GeometryKey(frame platform.Rect) string {
	return fmt.Sprintf("%s%dx%d_%d_%d", geometryPrefix, frame.Width, frame.Height, frame.X, frame.Y)
}

// Resolve finds the connected display matching a previously derived key.
// Returns false when the key no longer corresponds to any display.
func Resolve(key string, displays []platform.Display) (platform.Display, bool) {
	for _, d := range displays {
		if Key(d) == key {
			return d, true
		}
	}
	// A display that gained an output name still answers to its old
	// geometry-derived key.
	for _, d := range displays {
		if GeometryKey(d.Frame) == key {
			return d, true
		}
	}
	return platform.Display{}, false
}
