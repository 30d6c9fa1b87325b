package pixelgrid

import "math"

// tileCache holds the composed, pixelated image of one tile. It is rebuilt
// only when the sample width or the tile size changes; raise offsets move
// the cached surface without recomposing it.
type tileCache struct {
	surf    Surface
	sampleW int
	w, h    int
}

// Renderer turns tiles into pixels through a Backend. Each tile's source is
// downsampled to ceil(resolution) pixels wide (proportional height) and the
// result is stretched back to the tile size with nearest-neighbour scaling.
type Renderer struct {
	backend Backend
	sources []Surface
	cache   []tileCache

	recomposed int // tiles recomposed during the last Draw
}

// NewRenderer creates a renderer drawing through backend.
func NewRenderer(backend Backend) *Renderer {
	return &Renderer{backend: backend}
}

// Invalidate drops every composed tile. Called after a layout pass.
func (r *Renderer) Invalidate() {
	for i := range r.cache {
		if r.cache[i].surf != nil {
			r.backend.Release(r.cache[i].surf)
		}
	}
	r.cache = r.cache[:0]
}

// Recomposed returns how many tiles the last Draw had to rebuild.
func (r *Renderer) Recomposed() int {
	return r.recomposed
}

// sampleSize returns the low-resolution sample dimensions for a tile: the
// sample is ceil(resolution) wide, never wider than the tile, and keeps the
// tile's aspect ratio. Both dimensions are at least 1.
func sampleSize(resolution, tileW, tileH float64) (int, int) {
	maxW := max(int(math.Ceil(tileW)), 1)
	sw := min(max(int(math.Ceil(resolution)), 1), maxW)
	sh := 1
	if tileW > 0 {
		sh = max(int(math.Ceil(float64(sw)*tileH/tileW)), 1)
	}
	return sw, sh
}

// Draw renders tiles onto dst. images supplies the source pixels by tile index.
func (r *Renderer) Draw(dst Surface, tiles []Tile, images []SourceImage) {
	r.recomposed = 0
	for len(r.sources) < len(images) {
		r.sources = append(r.sources, nil)
	}
	for len(r.cache) < len(tiles) {
		r.cache = append(r.cache, tileCache{})
	}

	dw, dh := dst.Size()
	view := Rect{Width: float64(dw), Height: float64(dh)}

	for i := range tiles {
		t := &tiles[i]
		if t.Index >= len(images) || images[t.Index].Image == nil {
			continue
		}
		// Off-screen tiles (tall grids on short viewports) keep their cache.
		if !t.RenderedRect().Intersects(view) {
			continue
		}
		w := max(int(math.Ceil(t.Rect.Width)), 1)
		h := max(int(math.Ceil(t.Rect.Height)), 1)
		sw, sh := sampleSize(t.Resolution, t.Rect.Width, t.Rect.Height)

		c := &r.cache[i]
		if c.surf == nil || c.sampleW != sw || c.w != w || c.h != h {
			r.compose(c, r.source(t.Index, images), sw, sh, w, h)
			r.recomposed++
		}
		rr := t.RenderedRect()
		dst.DrawAt(c.surf, rr.X, rr.Y)
	}
}

// compose rebuilds one tile: smooth downsample into a sw×sh sample, then
// nearest-neighbour upscale into the w×h tile surface.
func (r *Renderer) compose(c *tileCache, src Surface, sw, sh, w, h int) {
	sample := r.backend.NewSurface(sw, sh)
	sample.DrawScaled(src, sw, sh, true)

	if c.surf != nil && (c.w != w || c.h != h) {
		r.backend.Release(c.surf)
		c.surf = nil
	}
	if c.surf == nil {
		c.surf = r.backend.NewSurface(w, h)
	} else {
		c.surf.Clear()
	}
	c.surf.DrawScaled(sample, w, h, false)
	r.backend.Release(sample)

	c.sampleW, c.w, c.h = sw, w, h
}

func (r *Renderer) source(index int, images []SourceImage) Surface {
	if r.sources[index] == nil {
		r.sources[index] = r.backend.Wrap(images[index].Image)
	}
	return r.sources[index]
}
