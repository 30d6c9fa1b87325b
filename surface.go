package pixelgrid

import "image"

// Surface is a 2D drawing target. Surfaces from one Backend may only be
// drawn onto surfaces of the same Backend.
type Surface interface {
	// Size returns the logical size in pixels.
	Size() (w, h int)
	// Clear makes every pixel transparent.
	Clear()
	// Fill paints every pixel with c.
	Fill(c Color)
	// DrawScaled draws src stretched to w×h with its top-left at the origin.
	// With smooth off the scaling is nearest-neighbour.
	DrawScaled(src Surface, w, h int, smooth bool)
	// DrawAt draws src unscaled with its top-left at (x, y).
	DrawAt(src Surface, x, y float64)
}

// Backend creates surfaces. NewSurface may hand out pooled surfaces, which
// must be returned with Release.
type Backend interface {
	NewSurface(w, h int) Surface
	Release(s Surface)
	Wrap(img image.Image) Surface
}

// imageSurface is implemented by surfaces whose pixels can be read back on
// the CPU.
type imageSurface interface {
	Image() image.Image
}
