package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aggressorcorp/WallpaperFree/internal/ipc"
)

func printScreenUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wallpaperfree screen list")
	fmt.Fprintln(w, "  wallpaperfree screen set <screen-key> <video-id>")
	fmt.Fprintln(w, "  wallpaperfree screen enable <screen-key>")
	fmt.Fprintln(w, "  wallpaperfree screen disable <screen-key>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wallpaperfree screen <command> --help' for command-specific options.")
}

func runScreen(args []string) int {
	if len(args) == 0 {
		printScreenUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printScreenUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: wallpaperfree screen list")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "List connected screens with their stored settings.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "screen list takes no arguments")
			fs.Usage()
			return 2
		}

		data, err := client.ListScreens()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, s := range data.Screens {
			state := "disabled"
			if s.Enabled {
				state = "enabled"
			}
			playing := ""
			if s.Playing {
				playing = " [playing]"
			}
			primary := ""
			if s.Primary {
				primary = " (primary)"
			}
			fmt.Printf("%s%s  %dx%d+%d+%d  %s%s\n", s.Key, primary, s.Width, s.Height, s.X, s.Y, state, playing)
			if s.VideoID != "" {
				fmt.Printf("    video: %s (%s)\n", s.VideoName, s.VideoID)
			}
		}
		return 0

	case "set":
		fs := flag.NewFlagSet("set", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: wallpaperfree screen set <screen-key> <video-id>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Assign a library video to a screen. An empty video-id clears the assignment.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "screen set requires <screen-key> and <video-id>")
			fs.Usage()
			return 2
		}

		if err := client.SetScreenVideo(fs.Arg(0), fs.Arg(1)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "enable", "disable":
		enabled := args[0] == "enable"
		fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage: wallpaperfree screen %s <screen-key>\n", args[0])
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintf(os.Stderr, "screen %s requires exactly one <screen-key>\n", args[0])
			fs.Usage()
			return 2
		}

		if err := client.SetScreenEnabled(fs.Arg(0), enabled); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown screen command: %s\n\n", args[0])
		printScreenUsage(os.Stderr)
		return 2
	}
}
