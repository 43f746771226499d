package main

import (
	"fmt"
	"os"

	"github.com/aggressorcorp/WallpaperFree/internal/tui"
)

func runTUI(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: wallpaperfree tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive TUI for managing the video library and per-screen wallpapers.")
		fmt.Fprintln(os.Stderr, "Requires a running daemon.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  Tab, 1/2   Switch between Library and Screens tabs")
		fmt.Fprintln(os.Stderr, "  j/k, ↑/↓   Navigate")
		fmt.Fprintln(os.Stderr, "  a          Add a video by path (Library)")
		fmt.Fprintln(os.Stderr, "  x          Remove selected video (Library)")
		fmt.Fprintln(os.Stderr, "  Space      Toggle wallpaper on selected screen (Screens)")
		fmt.Fprintln(os.Stderr, "  v          Cycle assigned video on selected screen (Screens)")
		fmt.Fprintln(os.Stderr, "  +/-        Adjust volume (Screens)")
		fmt.Fprintln(os.Stderr, "  r          Refresh from daemon")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C  Quit")
		return 0
	}

	if err := tui.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
