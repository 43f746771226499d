package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
)

// WatchScreenChanges subscribes to RandR screen-change notifications and
// invokes onChange for every one received. Blocks until the connection is
// closed; intended to run on its own goroutine.
//
// A ScreenChangeNotify fires for hot-plug, resolution changes and the
// enumeration churn that follows resume from sleep, so the callback must be
// cheap and idempotent (the engine debounces behind it).
func (c *Connection) WatchScreenChanges(onChange func()) error {
	err := randr.SelectInputChecked(c.XUtil.Conn(), c.Root, randr.NotifyMaskScreenChange).Check()
	if err != nil {
		return fmt.Errorf("failed to select randr input: %w", err)
	}

	for {
		ev, err := c.XUtil.Conn().WaitForEvent()
		if err != nil {
			// Per-event errors are not fatal to the watch loop.
			continue
		}
		if ev == nil {
			// Connection closed.
			return nil
		}
		if _, ok := ev.(randr.ScreenChangeNotifyEvent); ok {
			onChange()
		}
	}
}
