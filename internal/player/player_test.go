package player

import (
	"bufio"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindBinary_EnvOverrideWins(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "mpv")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(MpvEnvVar, fake)

	got, err := FindBinary("mpv", MpvEnvVar)
	if err != nil {
		t.Fatalf("FindBinary error: %v", err)
	}
	if got != fake {
		t.Fatalf("FindBinary = %q, want %q", got, fake)
	}
}

func TestFindBinary_EnvOverrideMissingFileErrors(t *testing.T) {
	t.Setenv(MpvEnvVar, filepath.Join(t.TempDir(), "nope"))

	if _, err := FindBinary("mpv", MpvEnvVar); err == nil {
		t.Fatal("expected error for dangling override")
	}
}

func TestBuildArgs_LoopingAndEmbedding(t *testing.T) {
	f := &MpvFactory{binaryPath: "/usr/bin/mpv"}
	args := f.buildArgs(Options{
		SourcePath: "/videos/sea.mp4",
		WindowID:   42,
		Volume:     0.4,
		SocketPath: "/run/user/1000/wallpaperfree-player-x.sock",
		ExtraArgs:  []string{"--vo=gpu"},
	})

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"--wid=42",
		"--loop-file=inf",
		"--volume=40",
		"--input-ipc-server=/run/user/1000/wallpaperfree-player-x.sock",
		"--vo=gpu",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args missing %q: %v", want, args)
		}
	}

	// The source path comes last, after the argument terminator.
	if args[len(args)-1] != "/videos/sea.mp4" || args[len(args)-2] != "--" {
		t.Fatalf("expected terminated source path at end, got %v", args)
	}
}

func TestRelaunchUsesLatestVolume(t *testing.T) {
	p := &mpvPlayer{
		factory: &MpvFactory{binaryPath: "/usr/bin/mpv"},
		opts: Options{
			SourcePath: "/videos/sea.mp4",
			WindowID:   42,
			Volume:     0.5,
			SocketPath: filepath.Join(t.TempDir(), "player.sock"),
		},
		volume: 0.5,
		done:   make(chan struct{}),
	}

	// No process is running, so this only records the new volume.
	if err := p.SetVolume(0.7); err != nil {
		t.Fatalf("SetVolume error: %v", err)
	}

	args := p.factory.buildArgs(p.launchOptions())
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "--volume=70") {
		t.Fatalf("restart args should carry the updated volume: %v", args)
	}
}

func TestSetVolumeOverSocket(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "player.sock")
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		line, err := bufio.NewReader(conn).ReadString('\n')
		if err != nil {
			return
		}
		received <- line
		// Event first, then the command reply, as mpv interleaves them.
		conn.Write([]byte("{\"event\":\"property-change\"}\n"))
		conn.Write([]byte("{\"error\":\"success\"}\n"))
	}()

	if err := setVolumeOverSocket(socketPath, 0.4); err != nil {
		t.Fatalf("setVolumeOverSocket error: %v", err)
	}

	line := <-received
	if !strings.Contains(line, "set_property") || !strings.Contains(line, "40") {
		t.Fatalf("unexpected command sent: %q", line)
	}
}

func TestSetVolumeOverSocket_RejectionSurfacesError(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "player.sock")
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		bufio.NewReader(conn).ReadString('\n')
		conn.Write([]byte("{\"error\":\"property not found\"}\n"))
	}()

	if err := setVolumeOverSocket(socketPath, 0.4); err == nil {
		t.Fatal("expected rejection error")
	}
}
