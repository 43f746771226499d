//go:build linux

package platform

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/aggressorcorp/WallpaperFree/internal/x11"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// WatchScreenChanges forwards RandR screen-change notifications to onChange.
// Blocks; run on its own goroutine.
func (b *LinuxBackend) WatchScreenChanges(onChange func()) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.WatchScreenChanges(onChange)
}

// Displays returns all connected displays. The primary display's frame is
// trimmed to its work area so panels and docks remain visible.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		if m.Primary {
			conn.AdjustToWorkArea(&m)
		}
		displays = append(displays, Display{
			Output:  m.Name,
			Primary: m.Primary,
			Frame: Rect{
				X:      m.X,
				Y:      m.Y,
				Width:  m.Width,
				Height: m.Height,
			},
		})
	}

	sort.Slice(displays, func(i, j int) bool {
		if displays[i].Frame.X != displays[j].Frame.X {
			return displays[i].Frame.X < displays[j].Frame.X
		}
		return displays[i].Frame.Y < displays[j].Frame.Y
	})

	return displays, nil
}

// CreateWallpaperWindow creates a bottom-layer borderless window covering frame.
func (b *LinuxBackend) CreateWallpaperWindow(title string, frame Rect) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.CreateWallpaperWindow(title, frame.X, frame.Y, frame.Width, frame.Height)
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// DestroyWindow releases a wallpaper window.
func (b *LinuxBackend) DestroyWindow(id WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.DestroyWindow(xproto.Window(id))
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}
