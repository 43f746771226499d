package thumbs

import (
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func TestScaleToWidth_PreservesAspectRatio(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1920, 1080))

	scaled := scaleToWidth(src, 320)

	bounds := scaled.Bounds()
	if bounds.Dx() != 320 {
		t.Fatalf("width = %d, want 320", bounds.Dx())
	}
	if bounds.Dy() != 180 {
		t.Fatalf("height = %d, want 180", bounds.Dy())
	}
}

func TestScaleToWidth_SmallImagesUnchanged(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))

	scaled := scaleToWidth(src, 320)

	if scaled != image.Image(src) {
		t.Fatal("expected small image to be returned as-is")
	}
}

func TestPathFor_OnlyReportsExistingThumbnails(t *testing.T) {
	dir := t.TempDir()
	g := &Generator{dir: dir, width: 320}

	if got := g.PathFor("missing-id"); got != "" {
		t.Fatalf("PathFor(missing) = %q, want empty", got)
	}

	path := filepath.Join(dir, "abc.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if got := g.PathFor("abc"); got != path {
		t.Fatalf("PathFor(abc) = %q, want %q", got, path)
	}

	g.Remove("abc")
	if got := g.PathFor("abc"); got != "" {
		t.Fatalf("PathFor after Remove = %q, want empty", got)
	}
}
