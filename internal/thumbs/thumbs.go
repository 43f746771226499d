// Package thumbs renders preview images for library entries. Frames are
// extracted with ffmpeg, scaled down and cached as JPEG files under
// ~/.cache/wallpaperfree/thumbs. Thumbnail generation is best-effort: a
// failure is logged and the entry simply has no preview.
package thumbs

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	_ "image/png" // frame decoding

	"golang.org/x/image/draw"

	"github.com/aggressorcorp/WallpaperFree/internal/library"
	"github.com/aggressorcorp/WallpaperFree/internal/player"
)

// FfmpegEnvVar overrides ffmpeg discovery.
const FfmpegEnvVar = "WALLPAPERFREE_FFMPEG_BINARY"

// frameOffsetSeconds is where in the video the preview frame is taken.
// Offset past zero so fade-ins don't produce black thumbnails.
const frameOffsetSeconds = 1

// Generator renders and caches thumbnails.
type Generator struct {
	dir        string
	width      int
	ffmpegPath string
	logger     *slog.Logger
}

// DefaultDir returns the standard thumbnail cache directory.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cache", "wallpaperfree", "thumbs"), nil
}

// NewGenerator creates a generator writing width-pixel-wide thumbnails to
// dir. An empty ffmpegPath means discover the binary from the environment
// override, next to the executable, or $PATH.
func NewGenerator(dir string, width int, ffmpegPath string, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if width <= 0 {
		width = 320
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if ffmpegPath == "" {
		path, err := player.FindBinary("ffmpeg", FfmpegEnvVar)
		if err != nil {
			// No ffmpeg just means no thumbnails.
			logger.Warn("ffmpeg not found, thumbnails disabled", "error", err)
		}
		ffmpegPath = path
	}

	return &Generator{
		dir:        dir,
		width:      width,
		ffmpegPath: ffmpegPath,
		logger:     logger,
	}, nil
}

// PathFor returns the cached thumbnail path for a video id, or "" if no
// thumbnail has been rendered yet.
func (g *Generator) PathFor(id string) string {
	path := filepath.Join(g.dir, id+".jpg")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Remove deletes the cached thumbnail for a video id, if any.
func (g *Generator) Remove(id string) {
	os.Remove(filepath.Join(g.dir, id+".jpg"))
}

// Generate renders a thumbnail for the video. Safe to call from a goroutine;
// failures are logged and leave no file behind.
func (g *Generator) Generate(v library.VideoFile) {
	if g.ffmpegPath == "" {
		return
	}

	frame, err := g.extractFrame(v.Path)
	if err != nil {
		g.logger.Warn("failed to extract thumbnail frame", "video", v.Name, "error", err)
		return
	}

	scaled := scaleToWidth(frame, g.width)

	path := filepath.Join(g.dir, v.ID+".jpg")
	f, err := os.Create(path)
	if err != nil {
		g.logger.Warn("failed to create thumbnail file", "path", path, "error", err)
		return
	}
	defer f.Close()

	if err := jpeg.Encode(f, scaled, &jpeg.Options{Quality: 85}); err != nil {
		g.logger.Warn("failed to encode thumbnail", "path", path, "error", err)
		os.Remove(path)
		return
	}

	g.logger.Debug("thumbnail rendered", "video", v.Name, "path", path)
}

// extractFrame pulls a single decoded frame out of the video via ffmpeg.
func (g *Generator) extractFrame(videoPath string) (image.Image, error) {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-ss", fmt.Sprintf("%d", frameOffsetSeconds),
		"-i", videoPath,
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "png",
		"pipe:1",
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(g.ffmpegPath, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, stderr.String())
	}

	img, _, err := image.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return img, nil
}

// scaleToWidth scales an image down to the target width preserving aspect
// ratio. Images already narrower than the target are returned unchanged.
func scaleToWidth(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= width || bounds.Dx() == 0 {
		return src
	}

	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
