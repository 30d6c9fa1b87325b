package pixelgrid

import (
	"fmt"
	"math"
)

// SelectBreakpoint returns the row-wrap count and padding active at the given
// viewport width. Widths strictly below the breakpoint are mobile.
func SelectBreakpoint(width float64, cfg LayoutConfig) (rows int, padding float64, mobile bool) {
	if width < cfg.Breakpoint {
		return cfg.RowsMobile, cfg.PaddingMobile, true
	}
	return cfg.RowsDesktop, cfg.PaddingDesktop, false
}

// TileWidth returns the fixed width shared by every tile at the given
// viewport width, or ErrDegenerateGrid if no positive width fits.
func TileWidth(width float64, cfg LayoutConfig) (float64, error) {
	rows, padding, _ := SelectBreakpoint(width, cfg)
	if rows < 1 {
		return 0, fmt.Errorf("%w: row count %d", ErrDegenerateGrid, rows)
	}
	w := (width - padding*float64(rows+1)) / float64(rows)
	if !(w > 0) {
		return 0, fmt.Errorf("%w: tile width %.2f at viewport width %.0f (rows %d, padding %.0f)",
			ErrDegenerateGrid, w, width, rows, padding)
	}
	return w, nil
}

// ComputeLayout places one tile per aspect ratio, in order, wrapping every
// row-count tiles and centering the whole grid vertically in the viewport.
// The result is a pure function of its arguments.
func ComputeLayout(aspects []float64, vp Viewport, cfg LayoutConfig) ([]Rect, error) {
	if len(aspects) == 0 {
		return nil, nil
	}
	rows, padding, _ := SelectBreakpoint(vp.W, cfg)
	tileW, err := TileWidth(vp.W, cfg)
	if err != nil {
		return nil, err
	}

	// Measurement pass: every row's height is the tallest tile in it.
	rects := make([]Rect, len(aspects))
	rowCount := (len(aspects) + rows - 1) / rows
	rowHeights := make([]float64, rowCount)
	for i, aspect := range aspects {
		if !(aspect > 0) || math.IsInf(aspect, 0) {
			return nil, &ImageError{Index: i, Err: ErrInvalidAspect}
		}
		h := tileW / aspect
		rects[i].Width = tileW
		rects[i].Height = h
		r := i / rows
		rowHeights[r] = math.Max(rowHeights[r], h)
	}

	totalHeight := padding * float64(rowCount-1)
	for _, h := range rowHeights {
		totalHeight += h
	}
	startY := (vp.H - totalHeight) / 2

	// Placement pass.
	y := startY
	for i := range rects {
		col := i % rows
		if col == 0 && i != 0 {
			y += rowHeights[i/rows-1] + padding
		}
		rects[i].X = padding + float64(col)*(tileW+padding)
		rects[i].Y = y
	}
	return rects, nil
}

// gridBounds returns the bounding box of all rects.
func gridBounds(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	minX, minY := rects[0].X, rects[0].Y
	maxX, maxY := rects[0].X+rects[0].Width, rects[0].Y+rects[0].Height
	for _, r := range rects[1:] {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.X+r.Width)
		maxY = math.Max(maxY, r.Y+r.Height)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
