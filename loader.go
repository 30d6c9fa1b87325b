package pixelgrid

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"strconv"
	"strings"

	// Decoders for the supported source formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrImageNotFound is returned when no file with a supported extension
// exists for an index.
var ErrImageNotFound = errors.New("pixelgrid: image not found")

// imageExts lists the extensions tried for each index, in order.
var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// LoadImage decodes the image for index from fsys. Images are named by their
// position in the grid: 0.jpg, 1.png, 2.webp and so on.
func LoadImage(fsys fs.FS, index int) (SourceImage, error) {
	name, err := findImage(fsys, index)
	if err != nil {
		return SourceImage{}, &ImageError{Index: index, Err: err}
	}
	f, err := fsys.Open(name)
	if err != nil {
		return SourceImage{}, &ImageError{Index: index, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return SourceImage{}, &ImageError{Index: index, Err: fmt.Errorf("decode %s: %w", name, err)}
	}
	return NewSourceImage(img), nil
}

// LoadImages decodes n images from fsys. Every index is attempted; a failed
// index yields a zero SourceImage in its slot and an *ImageError in the
// joined error, so callers can apply a MissingPolicy.
func LoadImages(fsys fs.FS, n int) ([]SourceImage, error) {
	images := make([]SourceImage, n)
	var errs []error
	for i := range images {
		img, err := LoadImage(fsys, i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		images[i] = img
	}
	return images, errors.Join(errs...)
}

// CountImages returns how many consecutively numbered images fsys holds,
// starting at 0.
func CountImages(fsys fs.FS) int {
	n := 0
	for {
		if _, err := findImage(fsys, n); err != nil {
			return n
		}
		n++
	}
}

func findImage(fsys fs.FS, index int) (string, error) {
	base := strconv.Itoa(index)
	for _, ext := range imageExts {
		name := base + ext
		if _, err := fs.Stat(fsys, name); err == nil {
			return name, nil
		}
	}
	return "", ErrImageNotFound
}

// LoadLinks reads one link per line from name in fsys. Blank lines and lines
// starting with '#' are skipped.
func LoadLinks(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("load links: %w", err)
	}
	defer f.Close()

	var links []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		links = append(links, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("load links: %w", err)
	}
	return links, nil
}
