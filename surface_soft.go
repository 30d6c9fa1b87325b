package pixelgrid

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// SoftBackend draws on the CPU into *image.RGBA. It needs no window or GPU,
// so it backs headless rendering and tests.
type SoftBackend struct{}

// NewSoftBackend returns a CPU backend.
func NewSoftBackend() *SoftBackend {
	return &SoftBackend{}
}

// NewSurface allocates a transparent surface.
func (b *SoftBackend) NewSurface(w, h int) Surface {
	return NewSoftSurface(max(w, 1), max(h, 1))
}

// Release is a no-op; soft surfaces are garbage collected.
func (b *SoftBackend) Release(Surface) {}

// Wrap exposes img as a read-only source surface.
func (b *SoftBackend) Wrap(img image.Image) Surface {
	return &SoftSurface{src: img}
}

// SoftSurface is a CPU surface. Surfaces created by Wrap are read-only;
// drawing onto them does nothing.
type SoftSurface struct {
	dst *image.RGBA
	src image.Image
}

// NewSoftSurface allocates a transparent w×h surface.
func NewSoftSurface(w, h int) *SoftSurface {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &SoftSurface{dst: img, src: img}
}

// Image returns the surface pixels.
func (s *SoftSurface) Image() image.Image { return s.src }

func (s *SoftSurface) Size() (int, int) {
	b := s.src.Bounds()
	return b.Dx(), b.Dy()
}

func (s *SoftSurface) Clear() {
	if s.dst == nil {
		return
	}
	clear(s.dst.Pix)
}

func (s *SoftSurface) Fill(c Color) {
	if s.dst == nil {
		return
	}
	xdraw.Draw(s.dst, s.dst.Bounds(), image.NewUniform(c.toRGBA()), image.Point{}, xdraw.Src)
}

func (s *SoftSurface) DrawScaled(src Surface, w, h int, smooth bool) {
	ss := src.(*SoftSurface)
	if s.dst == nil || w <= 0 || h <= 0 {
		return
	}
	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if smooth {
		scaler = xdraw.ApproxBiLinear
	}
	scaler.Scale(s.dst, image.Rect(0, 0, w, h), ss.src, ss.src.Bounds(), xdraw.Src, nil)
}

func (s *SoftSurface) DrawAt(src Surface, x, y float64) {
	ss := src.(*SoftSurface)
	if s.dst == nil {
		return
	}
	dp := image.Pt(int(math.Round(x)), int(math.Round(y)))
	xdraw.Copy(s.dst, dp, ss.src, ss.src.Bounds(), xdraw.Over, nil)
}
