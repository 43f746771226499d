package player

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"
)

// MpvEnvVar overrides mpv binary discovery.
const MpvEnvVar = "WALLPAPERFREE_MPV_BINARY"

// restartBackoff is the pause before the watchdog relaunches a player whose
// process exited while the instance was still live.
const restartBackoff = 2 * time.Second

// MpvFactory starts mpv subprocesses embedded into wallpaper windows.
type MpvFactory struct {
	binaryPath string
	logger     *slog.Logger
}

var _ Factory = (*MpvFactory)(nil)

// NewMpvFactory locates the mpv binary and returns a factory.
func NewMpvFactory(configuredPath string, logger *slog.Logger) (*MpvFactory, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path := configuredPath
	if path == "" {
		found, err := FindBinary("mpv", MpvEnvVar)
		if err != nil {
			return nil, err
		}
		path = found
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("configured player binary %q: %w", path, err)
	}

	return &MpvFactory{binaryPath: path, logger: logger}, nil
}

// Start launches mpv rendering into the window and looping the source
// indefinitely. The returned player keeps the source playing until Stop.
func (f *MpvFactory) Start(opts Options) (Player, error) {
	p := &mpvPlayer{
		factory: f,
		opts:    opts,
		volume:  opts.Volume,
		done:    make(chan struct{}),
	}
	if err := p.launch(); err != nil {
		return nil, err
	}

	go p.watch()
	return p, nil
}

func (f *MpvFactory) buildArgs(opts Options) []string {
	args := []string{
		"--wid=" + strconv.FormatUint(uint64(opts.WindowID), 10),
		"--loop-file=inf",
		"--no-border",
		"--no-osc",
		"--no-osd-bar",
		"--no-input-default-bindings",
		"--no-stop-screensaver",
		"--hwdec=auto-safe",
		// Fill the window, cropping instead of letterboxing.
		"--panscan=1.0",
		"--really-quiet",
		"--volume=" + strconv.Itoa(int(opts.Volume*100 + 0.5)),
		"--input-ipc-server=" + opts.SocketPath,
	}
	args = append(args, opts.ExtraArgs...)
	args = append(args, "--", opts.SourcePath)
	return args
}

// mpvPlayer wraps one mpv subprocess.
type mpvPlayer struct {
	factory *MpvFactory
	opts    Options

	mu      sync.Mutex
	cmd     *exec.Cmd
	volume  float64
	stopped bool
	done    chan struct{} // closed by Stop
}

// launchOptions snapshots the options for a (re)launch. The volume is read
// under the lock: SetVolume may race a watchdog restart.
func (p *mpvPlayer) launchOptions() Options {
	p.mu.Lock()
	volume := p.volume
	p.mu.Unlock()

	opts := p.opts
	opts.Volume = volume
	return opts
}

func (p *mpvPlayer) launch() error {
	args := p.factory.buildArgs(p.launchOptions())

	cmd := exec.Command(p.factory.binaryPath, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start player: %w", err)
	}

	p.mu.Lock()
	p.cmd = cmd
	p.mu.Unlock()

	p.factory.logger.Debug("player started",
		"pid", cmd.Process.Pid,
		"source", p.opts.SourcePath,
		"window", p.opts.WindowID)
	return nil
}

// watch restarts the process if it exits while the player is live. mpv's
// --loop-file handles normal looping without a gap; the watchdog only covers
// crashes and decoder failures.
func (p *mpvPlayer) watch() {
	for {
		p.mu.Lock()
		cmd := p.cmd
		p.mu.Unlock()
		if cmd == nil {
			return
		}

		err := cmd.Wait()

		p.mu.Lock()
		stopped := p.stopped
		p.cmd = nil
		p.mu.Unlock()
		if stopped {
			return
		}

		p.factory.logger.Warn("player exited unexpectedly, restarting",
			"source", p.opts.SourcePath, "error", err)

		select {
		case <-p.done:
			return
		case <-time.After(restartBackoff):
		}

		p.mu.Lock()
		stopped = p.stopped
		p.mu.Unlock()
		if stopped {
			return
		}

		if err := p.launch(); err != nil {
			p.factory.logger.Warn("player restart failed, giving up",
				"source", p.opts.SourcePath, "error", err)
			return
		}
	}
}

// SetVolume applies the volume over the control socket so playback is not
// interrupted. The new value also carries over to watchdog restarts.
func (p *mpvPlayer) SetVolume(v float64) error {
	p.mu.Lock()
	p.volume = v
	running := p.cmd != nil
	p.mu.Unlock()

	if !running {
		return nil
	}
	return setVolumeOverSocket(p.opts.SocketPath, v)
}

// Stop terminates the process and disarms the watchdog. Safe to call twice.
func (p *mpvPlayer) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	cmd := p.cmd
	close(p.done)
	p.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	_ = os.Remove(p.opts.SocketPath)
}

// Alive reports whether the playback process is currently running.
func (p *mpvPlayer) Alive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil && !p.stopped
}
