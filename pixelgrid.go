package pixelgrid

import (
	"image"
	"image/color"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default clear color, matching the white page behind the grid.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// Viewport is the current size of the display surface in pixels.
type Viewport struct {
	W, H float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// SourceImage is a decoded image handed to the grid by the asset loader.
// The grid never mutates it.
type SourceImage struct {
	Image  image.Image
	Width  int
	Height int
}

// NewSourceImage wraps a decoded image, taking its intrinsic size from the
// image bounds.
func NewSourceImage(img image.Image) SourceImage {
	b := img.Bounds()
	return SourceImage{Image: img, Width: b.Dx(), Height: b.Dy()}
}

// AspectRatio returns width / height, or 0 if either dimension is missing.
func (s SourceImage) AspectRatio() float64 {
	if s.Width <= 0 || s.Height <= 0 {
		return 0
	}
	return float64(s.Width) / float64(s.Height)
}

// Tile is the laid-out rectangle assigned to one source image, together with
// the animation state the renderer reads each frame.
type Tile struct {
	Index      int // position in the grid
	Source     int // position in the image list given to NewGrid
	Rect       Rect
	Link       string
	Raise      float64 // current upward offset, owned by the raise animator
	Resolution float64 // current sample width, owned by the ramp controller
	Hovered    bool
}

// RenderedRect returns the tile rectangle as it is drawn this frame, lifted
// by the current raise offset.
func (t Tile) RenderedRect() Rect {
	return t.Rect.Offset(0, -t.Raise)
}

// CursorShape selects the pointer indicator shown over the grid.
type CursorShape uint8

const (
	CursorDefault CursorShape = iota // arrow
	CursorPointer                    // hand, shown over a linked tile
)

// NavigationPolicy controls what happens to the running grid when a tile
// link is opened.
type NavigationPolicy uint8

const (
	NavigateNewContext NavigationPolicy = iota // open the link elsewhere and keep running
	NavigateReplace                            // open the link and end the run loop
)

// ResizePolicy controls how per-tile animation state survives a layout pass.
type ResizePolicy uint8

const (
	ResizePreserve ResizePolicy = iota // keep resolution and raise by index, clamped to the new size
	ResizeReset                        // restart every tile from the most pixelated state
)

// MissingPolicy controls what happens when a source image has no usable
// dimensions.
type MissingPolicy uint8

const (
	MissingHalt    MissingPolicy = iota // refuse to build the grid
	MissingExclude                      // drop the image and its link, report once
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
