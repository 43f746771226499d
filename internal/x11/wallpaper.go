package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// stickyDesktop is the _NET_WM_DESKTOP value for "visible on all desktops".
const stickyDesktop = 0xFFFFFFFF

// CreateWallpaperWindow creates a borderless window covering the given frame
// that stays at the very bottom of the stacking order. The window is
// override-redirect so the window manager never decorates, focuses or raises
// it, and its input shape is emptied so mouse events fall through to the
// desktop underneath. The window is mapped and lowered before returning.
func (c *Connection) CreateWallpaperWindow(title string, x, y, width, height int) (xproto.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate window id: %w", err)
	}

	err = win.CreateChecked(c.Root, x, y, width, height,
		xproto.CwBackPixel|xproto.CwOverrideRedirect,
		0x000000, 1)
	if err != nil {
		return 0, fmt.Errorf("failed to create wallpaper window: %w", err)
	}

	// Hints are advisory for override-redirect windows but compositors and
	// pagers still read them, so set the full desktop-layer profile.
	_ = ewmh.WmWindowTypeSet(c.XUtil, win.Id, []string{"_NET_WM_WINDOW_TYPE_DESKTOP"})
	_ = ewmh.WmStateSet(c.XUtil, win.Id, []string{
		"_NET_WM_STATE_BELOW",
		"_NET_WM_STATE_SKIP_TASKBAR",
		"_NET_WM_STATE_SKIP_PAGER",
		"_NET_WM_STATE_STICKY",
	})
	_ = ewmh.WmDesktopSet(c.XUtil, win.Id, stickyDesktop)
	_ = ewmh.WmNameSet(c.XUtil, win.Id, title)

	// Never accept keyboard focus.
	_ = icccm.WmHintsSet(c.XUtil, win.Id, &icccm.Hints{
		Flags: icccm.HintInput,
		Input: 0,
	})

	// Empty input region: clicks and scrolls pass through to whatever the
	// desktop environment draws underneath (icons, root menu).
	if c.shapeOK {
		_ = shape.RectanglesChecked(c.XUtil.Conn(), shape.SoSet, shape.SkInput,
			0, win.Id, 0, 0, nil).Check()
	}

	win.Map()
	if err := c.LowerWindow(win.Id); err != nil {
		// The window is still usable above the bottom; playback continues.
		return win.Id, nil
	}

	return win.Id, nil
}

// LowerWindow pushes a window to the bottom of the stacking order.
func (c *Connection) LowerWindow(windowID xproto.Window) error {
	return xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		windowID,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeBelow},
	).Check()
}

// DestroyWindow unmaps and destroys a wallpaper window.
func (c *Connection) DestroyWindow(windowID xproto.Window) error {
	win := xwindow.New(c.XUtil, windowID)
	win.Unmap()
	return xproto.DestroyWindowChecked(c.XUtil.Conn(), windowID).Check()
}
