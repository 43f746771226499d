package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display. Output is the hardware output name
// (e.g. "HDMI-1"); it is empty when the window system cannot provide one.
// Frame is the full display geometry; on the primary display it is adjusted
// to the work area so panels stay visible above the wallpaper.
type Display struct {
	Output  string
	Primary bool
	Frame   Rect
}

// Backend abstracts the window-system operations the wallpaper engine needs.
type Backend interface {
	// Displays returns all connected displays.
	Displays() ([]Display, error)
	// CreateWallpaperWindow creates a borderless bottom-layer window
	// covering frame and returns its identifier.
	CreateWallpaperWindow(title string, frame Rect) (WindowID, error)
	// DestroyWindow releases a wallpaper window.
	DestroyWindow(id WindowID) error
}
