package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/pixelgrid"
)

// writeGallery writes n numbered PNGs and the given links.txt into a temp dir.
func writeGallery(t *testing.T, n int, links []string) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 30, 40))
		img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("%d.png", i)))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}
	data := strings.Join(links, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, "links.txt"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func headlessOptions(dir, out string) options {
	return options{
		imageDir: dir,
		width:    400,
		height:   300,
		headless: true,
		frames:   2,
		every:    1,
		outDir:   out,
	}
}

func TestRun_MoreImagesThanLinks(t *testing.T) {
	dir := writeGallery(t, 3, []string{"https://a.example", "https://b.example"})
	err := run(headlessOptions(dir, t.TempDir()))
	if !errors.Is(err, pixelgrid.ErrLinkCountMismatch) {
		t.Errorf("err = %v, want ErrLinkCountMismatch", err)
	}
}

func TestRun_FewerImagesThanLinks(t *testing.T) {
	dir := writeGallery(t, 1, []string{"https://a.example", "https://b.example"})
	err := run(headlessOptions(dir, t.TempDir()))
	if !errors.Is(err, pixelgrid.ErrLinkCountMismatch) {
		t.Errorf("err = %v, want ErrLinkCountMismatch", err)
	}
}

func TestRun_HeadlessFrames(t *testing.T) {
	dir := writeGallery(t, 2, []string{"https://a.example", "https://b.example"})
	out := t.TempDir()
	if err := run(headlessOptions(dir, out)); err != nil {
		t.Fatal(err)
	}
	frames, _ := filepath.Glob(filepath.Join(out, "frame_*.png"))
	if len(frames) != 2 {
		t.Errorf("frames = %v, want 2", frames)
	}
}
