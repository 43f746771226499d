package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aggressorcorp/WallpaperFree/internal/ipc"
)

func printLibraryUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wallpaperfree library list")
	fmt.Fprintln(w, "  wallpaperfree library add <path>")
	fmt.Fprintln(w, "  wallpaperfree library remove <id>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wallpaperfree library <command> --help' for command-specific options.")
}

func runLibrary(args []string) int {
	if len(args) == 0 {
		printLibraryUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printLibraryUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: wallpaperfree library list")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "List videos in the library.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "library list takes no arguments")
			fs.Usage()
			return 2
		}

		data, err := client.ListLibrary()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if len(data.Videos) == 0 {
			fmt.Println("Library is empty")
			return 0
		}
		for _, v := range data.Videos {
			fmt.Printf("%s  %-24s %s\n", v.ID, v.Name, v.Path)
		}
		return 0

	case "add":
		fs := flag.NewFlagSet("add", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: wallpaperfree library add <path>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Add a video file to the library. The path is resolved to an absolute path.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "library add requires exactly one <path>")
			fs.Usage()
			return 2
		}

		path, err := filepath.Abs(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		info, err := client.AddVideo(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("Added %q (%s)\n", info.Name, info.ID)
		return 0

	case "remove":
		fs := flag.NewFlagSet("remove", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: wallpaperfree library remove <id>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Remove a video from the library. Screens using it are disabled.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "library remove requires exactly one <id>")
			fs.Usage()
			return 2
		}

		if err := client.RemoveVideo(fs.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown library command: %s\n\n", args[0])
		printLibraryUsage(os.Stderr)
		return 2
	}
}
