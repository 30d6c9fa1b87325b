package pixelgrid

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EventType identifies a kind of tile interaction event.
type EventType uint8

const (
	EventClick      EventType = iota // fires when a press or tap lands on a tile
	EventHoverEnter                  // fires when the pointer moves onto a tile
	EventHoverLeave                  // fires when the pointer leaves a tile
)

// TileContext carries the data of a tile interaction event.
type TileContext struct {
	Index  int
	Link   string
	X, Y   float64
	Touch  bool // event came from a touch-start rather than the mouse
	Opened bool // for EventClick: the navigator accepted the link
}

// --- Per-tick input ---

// InputSnapshot is the pointer state read at the start of a tick. Only the
// latest position matters, so events between ticks collapse into one
// snapshot.
type InputSnapshot struct {
	X, Y       float64
	HasPointer bool   // a mouse cursor position is known
	Pressed    bool   // primary button went down since the last tick
	Taps       []Vec2 // touch-start positions since the last tick
}

// HitTest returns the index of the first tile whose rendered rectangle
// contains (x, y). Edges are inclusive. Points outside every tile, including
// points outside the canvas, report false.
func HitTest(x, y float64, tiles []Tile) (int, bool) {
	for i := range tiles {
		if tiles[i].RenderedRect().Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// --- Handler registry ---

type tileHandler struct {
	id uint32
	fn func(TileContext)
}

type handlerRegistry struct {
	click      []tileHandler
	hoverEnter []tileHandler
	hoverLeave []tileHandler
	nextID     uint32
}

func (r *handlerRegistry) add(event EventType, fn func(TileContext)) CallbackHandle {
	r.nextID++
	h := tileHandler{id: r.nextID, fn: fn}
	switch event {
	case EventClick:
		r.click = append(r.click, h)
	case EventHoverEnter:
		r.hoverEnter = append(r.hoverEnter, h)
	case EventHoverLeave:
		r.hoverLeave = append(r.hoverLeave, h)
	}
	return CallbackHandle{id: h.id, reg: r, event: event}
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventClick:
		h.reg.click = removeTileHandler(h.reg.click, h.id)
	case EventHoverEnter:
		h.reg.hoverEnter = removeTileHandler(h.reg.hoverEnter, h.id)
	case EventHoverLeave:
		h.reg.hoverLeave = removeTileHandler(h.reg.hoverLeave, h.id)
	}
}

func removeTileHandler(s []tileHandler, id uint32) []tileHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = tileHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnTileClick registers a callback fired when a press or tap lands on a tile.
func (g *Grid) OnTileClick(fn func(TileContext)) CallbackHandle {
	return g.handlers.add(EventClick, fn)
}

// OnHoverEnter registers a callback fired when the pointer moves onto a tile.
// Never fires below the breakpoint.
func (g *Grid) OnHoverEnter(fn func(TileContext)) CallbackHandle {
	return g.handlers.add(EventHoverEnter, fn)
}

// OnHoverLeave registers a callback fired when the pointer leaves a tile.
func (g *Grid) OnHoverLeave(fn func(TileContext)) CallbackHandle {
	return g.handlers.add(EventHoverLeave, fn)
}

// --- Input processing ---

// readInput samples ebiten's mouse and touch state for this tick.
func (g *Grid) readInput() InputSnapshot {
	mx, my := ebiten.CursorPosition()
	snap := InputSnapshot{
		X:          float64(mx),
		Y:          float64(my),
		HasPointer: true,
		Pressed:    inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
	g.touchBuf = inpututil.AppendJustPressedTouchIDs(g.touchBuf[:0])
	for _, id := range g.touchBuf {
		tx, ty := ebiten.TouchPosition(id)
		snap.Taps = append(snap.Taps, Vec2{X: float64(tx), Y: float64(ty)})
	}
	return snap
}

// processInput applies one snapshot: hover first, then presses. Called from
// Update before the animation step.
func (g *Grid) processInput(snap InputSnapshot) {
	g.processHover(snap)

	// A tap and a synthesized mouse press for the same touch would open the
	// link twice, so a handled tap consumes this tick's press.
	tapped := false
	for _, t := range snap.Taps {
		if g.dispatchPress(t.X, t.Y, true) {
			tapped = true
		}
	}
	if snap.Pressed && !tapped {
		g.dispatchPress(snap.X, snap.Y, false)
	}
}

// processHover updates per-tile hover flags and the cursor. Hover has no
// meaning on touch layouts, so below the breakpoint nothing is hovered.
func (g *Grid) processHover(snap InputSnapshot) {
	target := -1
	if !g.mobile && snap.HasPointer {
		if i, ok := HitTest(snap.X, snap.Y, g.tiles); ok {
			target = i
		}
	}

	if target != g.hoverIndex {
		if g.hoverIndex >= 0 && g.hoverIndex < len(g.tiles) {
			g.tiles[g.hoverIndex].Hovered = false
			g.fire(EventHoverLeave, g.hoverIndex, snap.X, snap.Y, false, false)
		}
		if target >= 0 {
			g.tiles[target].Hovered = true
			g.fire(EventHoverEnter, target, snap.X, snap.Y, false, false)
		}
		g.hoverIndex = target
	}

	if target >= 0 {
		g.setCursor(CursorPointer)
	} else {
		g.setCursor(CursorDefault)
	}
}

// dispatchPress opens the link of the tile under (x, y). It reports whether
// a tile was hit, meaning the event is consumed and default handling should
// be suppressed. Misses are no-ops.
func (g *Grid) dispatchPress(x, y float64, touch bool) bool {
	i, ok := HitTest(x, y, g.tiles)
	if !ok {
		return false
	}
	link := g.tiles[i].Link
	opened := false
	if g.nav != nil && link != "" {
		if err := g.nav.Open(link); err != nil {
			g.logf("open %q: %v", link, err)
		} else {
			opened = true
			if g.cfg.Navigation == NavigateReplace {
				g.terminate = true
			}
		}
	}
	g.fire(EventClick, i, x, y, touch, opened)
	return true
}

// setCursor forwards shape to the cursor collaborator when it changes.
func (g *Grid) setCursor(shape CursorShape) {
	if g.cursorKnown && g.cursorShape == shape {
		return
	}
	g.cursorShape = shape
	g.cursorKnown = true
	if g.cursor != nil {
		g.cursor.SetCursor(shape)
	}
}

// --- Event dispatch ---

func (g *Grid) fire(event EventType, index int, x, y float64, touch, opened bool) {
	ctx := TileContext{
		Index: index, Link: g.tiles[index].Link,
		X: x, Y: y, Touch: touch, Opened: opened,
	}
	var handlers []tileHandler
	switch event {
	case EventClick:
		handlers = g.handlers.click
	case EventHoverEnter:
		handlers = g.handlers.hoverEnter
	case EventHoverLeave:
		handlers = g.handlers.hoverLeave
	}
	for _, h := range handlers {
		h.fn(ctx)
	}
	if g.sink != nil {
		g.sink.EmitEvent(TileEvent{
			Type: event, Index: index, Link: ctx.Link,
			X: x, Y: y, Touch: touch, Opened: opened,
		})
	}
}
