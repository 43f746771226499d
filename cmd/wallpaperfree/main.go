package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aggressorcorp/WallpaperFree/internal/config"
	"github.com/aggressorcorp/WallpaperFree/internal/daemon"
	"github.com/aggressorcorp/WallpaperFree/internal/engine"
	"github.com/aggressorcorp/WallpaperFree/internal/ipc"
	"github.com/aggressorcorp/WallpaperFree/internal/platform"
	"github.com/aggressorcorp/WallpaperFree/internal/player"
	"github.com/aggressorcorp/WallpaperFree/internal/store"
	"github.com/aggressorcorp/WallpaperFree/internal/thumbs"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: wallpaperfree daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: wallpaperfree daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "library":
		os.Exit(runLibrary(os.Args[2:]))
	case "screen":
		os.Exit(runScreen(os.Args[2:]))
	case "volume":
		os.Exit(runVolume(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wallpaperfree <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the wallpaperfree daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  library list        List videos in the library")
	fmt.Fprintln(w, "  library add         Add a video file to the library")
	fmt.Fprintln(w, "  library remove      Remove a video from the library")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  screen list         List connected screens and their settings")
	fmt.Fprintln(w, "  screen set          Assign a library video to a screen")
	fmt.Fprintln(w, "  screen enable       Enable wallpaper playback on a screen")
	fmt.Fprintln(w, "  screen disable      Disable wallpaper playback on a screen")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  volume              Show or set the global playback volume")
	fmt.Fprintln(w, "  reload              Reload daemon configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "  config path         Print configuration file path")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive TUI")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wallpaperfree <command> --help' for command-specific options.")
}

// newLogger builds the daemon's slog logger from the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// extraArgsFactory injects configured player arguments into every start.
type extraArgsFactory struct {
	inner player.Factory
	args  []string
}

func (f extraArgsFactory) Start(opts player.Options) (player.Player, error) {
	opts.ExtraArgs = f.args
	return f.inner.Start(opts)
}

func runDaemon() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Display != "" {
		os.Setenv("DISPLAY", cfg.Display)
	}
	if cfg.XAuthority != "" {
		os.Setenv("XAUTHORITY", cfg.XAuthority)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// Connect to display server
	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer backend.Disconnect()

	log.Println("wallpaperfree daemon started successfully")

	// Load persisted settings
	statePath, err := store.DefaultPath()
	if err != nil {
		log.Fatalf("Failed to resolve settings path: %v", err)
	}
	st := store.Open(statePath, logger)
	log.Printf("Settings loaded (%d videos in library)", len(st.Videos()))

	// Locate the player
	mpv, err := player.NewMpvFactory(cfg.PlayerBinary, logger)
	if err != nil {
		log.Fatalf("Failed to locate player binary: %v", err)
	}
	var factory player.Factory = mpv
	if len(cfg.PlayerArgs) > 0 {
		factory = extraArgsFactory{inner: mpv, args: cfg.PlayerArgs}
	}

	eng := engine.New(backend, factory, st.Volume(), logger)
	defer eng.Close()

	// Thumbnail cache (best-effort; the daemon runs fine without ffmpeg)
	var thumbnailer ipc.Thumbnailer
	if thumbDir, err := thumbs.DefaultDir(); err == nil {
		gen, err := thumbs.NewGenerator(thumbDir, cfg.ThumbnailWidth, cfg.FfmpegBinary, logger)
		if err != nil {
			logger.Warn("thumbnail cache unavailable", "error", err)
		} else {
			thumbnailer = gen
		}
	}

	// Setup settings applier and periodic reconciler
	applier := daemon.NewApplier(backend, st, eng, logger)
	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: time.Duration(cfg.ReconcileIntervalSeconds) * time.Second,
		Logger:   logger,
	}, applier)

	// Apply the stored settings once on startup.
	reconciler.ReconcileNow()

	// Every settings mutation re-applies immediately, and so does every
	// debounced screen-change or wake reconciliation.
	st.Subscribe(reconciler.ReconcileNow)
	eng.OnSettled(reconciler.ReconcileNow)

	reconcilerCtx, reconcilerCancel := context.WithCancel(context.Background())
	defer reconcilerCancel()
	go reconciler.Run(reconcilerCtx)

	// Wake-from-sleep detection
	wakeMonitor := daemon.NewWakeMonitor(
		time.Duration(cfg.WakeCheckIntervalSeconds)*time.Second,
		eng.NotifyWake,
		logger,
	)
	go wakeMonitor.Run(reconcilerCtx)

	// Screen configuration changes
	go func() {
		if err := backend.WatchScreenChanges(eng.NotifyScreensChanged); err != nil {
			logger.Error("screen change watcher failed", "error", err)
		}
	}()

	// Create config reload channel
	reloadChan := make(chan struct{}, 1)

	// Start IPC server
	ipcServer, err := ipc.NewServer(cfg, st, eng, backend, thumbnailer, reloadChan)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	for {
		select {
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading config...")
				newCfg, err := config.Load()
				if err != nil {
					log.Printf("Config reload failed: %v", err)
					continue
				}
				ipcServer.UpdateConfig(newCfg)
				reconciler.ReconcileNow()
				log.Println("Config reloaded successfully")

			case os.Interrupt, syscall.SIGTERM:
				log.Println("Shutting down wallpaperfree daemon...")
				reconcilerCancel()
				ipcServer.Stop()
				eng.Close()
				return
			}

		case <-reloadChan:
			// Config was reloaded via IPC, re-apply settings
			reconciler.ReconcileNow()
		}
	}
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wallpaperfree status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	fmt.Printf("screen_count:   %d\n", status.ScreenCount)
	fmt.Printf("playing_count:  %d\n", status.PlayingCount)
	fmt.Printf("library_count:  %d\n", status.LibraryCount)
	fmt.Printf("volume:         %.2f\n", status.Volume)
	return 0
}

func runVolume(args []string) int {
	fs := flag.NewFlagSet("volume", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wallpaperfree volume [value]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the global playback volume, or set it to a value between 0.0 and 1.0.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "volume takes at most one argument")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()

	if fs.NArg() == 0 {
		status, err := client.GetStatus()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("%.2f\n", status.Volume)
		return 0
	}

	value, err := strconv.ParseFloat(fs.Arg(0), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid volume %q: must be a number between 0.0 and 1.0\n", fs.Arg(0))
		return 2
	}
	if err := client.SetVolume(value); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wallpaperfree reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the running daemon to reload its configuration.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("Configuration reloaded")
	return 0
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wallpaperfree config validate")
	fmt.Fprintln(w, "  wallpaperfree config print")
	fmt.Fprintln(w, "  wallpaperfree config path")
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "validate":
		if _, err := config.Load(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("Configuration is valid")
		return 0

	case "print":
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("player_binary: %s\n", cfg.PlayerBinary)
		fmt.Printf("player_args: %v\n", cfg.PlayerArgs)
		fmt.Printf("ffmpeg_binary: %s\n", cfg.FfmpegBinary)
		fmt.Printf("log_level: %s\n", cfg.LogLevel)
		fmt.Printf("reconcile_interval_seconds: %d\n", cfg.ReconcileIntervalSeconds)
		fmt.Printf("wake_check_interval_seconds: %d\n", cfg.WakeCheckIntervalSeconds)
		fmt.Printf("thumbnail_width: %d\n", cfg.ThumbnailWidth)
		return 0

	case "path":
		path, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(path)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}
