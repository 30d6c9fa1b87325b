package pixelgrid

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Render texture pool ---

// renderTexturePool manages reusable offscreen ebiten.Images keyed by
// power-of-two dimensions. After warmup, Acquire/Release are zero-alloc.
type renderTexturePool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
// Dimensions are rounded up to the next power of two.
func (p *renderTexturePool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here.
func (p *renderTexturePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}

// --- Ebiten backend ---

// EbitenBackend draws on the GPU through ebiten. Offscreen surfaces come
// from a power-of-two pool and only their top-left w×h region is used.
type EbitenBackend struct {
	pool renderTexturePool
}

// NewEbitenBackend returns an empty backend.
func NewEbitenBackend() *EbitenBackend {
	return &EbitenBackend{}
}

// NewSurface acquires a pooled offscreen surface of the given logical size.
func (b *EbitenBackend) NewSurface(w, h int) Surface {
	w, h = max(w, 1), max(h, 1)
	return &ebitenSurface{img: b.pool.Acquire(w, h), w: w, h: h, pooled: true}
}

// Release returns a pooled surface. Wrapped surfaces are ignored.
func (b *EbitenBackend) Release(s Surface) {
	es, ok := s.(*ebitenSurface)
	if !ok || !es.pooled {
		return
	}
	b.pool.Release(es.img)
	es.img = nil
}

// Wrap uploads img to a GPU texture.
func (b *EbitenBackend) Wrap(img image.Image) Surface {
	if eimg, ok := img.(*ebiten.Image); ok {
		return WrapEbitenImage(eimg)
	}
	return WrapEbitenImage(ebiten.NewImageFromImage(img))
}

// WrapEbitenImage exposes an existing ebiten image, such as the screen, as
// a Surface.
func WrapEbitenImage(img *ebiten.Image) Surface {
	bounds := img.Bounds()
	return &ebitenSurface{img: img, w: bounds.Dx(), h: bounds.Dy()}
}

type ebitenSurface struct {
	img    *ebiten.Image
	w, h   int
	pooled bool
	op     ebiten.DrawImageOptions
}

func (s *ebitenSurface) Size() (int, int) { return s.w, s.h }

func (s *ebitenSurface) Clear() { s.img.Clear() }

func (s *ebitenSurface) Fill(c Color) { s.img.Fill(c.toRGBA()) }

// region returns the logical part of a pooled image.
func (s *ebitenSurface) region() *ebiten.Image {
	if !s.pooled {
		return s.img
	}
	return s.img.SubImage(image.Rect(0, 0, s.w, s.h)).(*ebiten.Image)
}

func (s *ebitenSurface) DrawScaled(src Surface, w, h int, smooth bool) {
	es := src.(*ebitenSurface)
	if es.w == 0 || es.h == 0 {
		return
	}
	s.op.GeoM.Reset()
	s.op.GeoM.Scale(float64(w)/float64(es.w), float64(h)/float64(es.h))
	if smooth {
		s.op.Filter = ebiten.FilterLinear
	} else {
		s.op.Filter = ebiten.FilterNearest
	}
	s.img.DrawImage(es.region(), &s.op)
}

func (s *ebitenSurface) DrawAt(src Surface, x, y float64) {
	es := src.(*ebitenSurface)
	s.op.GeoM.Reset()
	s.op.GeoM.Translate(x, y)
	s.op.Filter = ebiten.FilterNearest
	s.img.DrawImage(es.region(), &s.op)
}
