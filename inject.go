package pixelgrid

type injectKind uint8

const (
	injectMove injectKind = iota
	injectPress
	injectTap
	injectLeave
)

// syntheticPointerEvent represents a single injected input event in screen
// coordinates. Each event is consumed by exactly one tick.
type syntheticPointerEvent struct {
	x, y float64
	kind injectKind
}

// InjectMove queues a pointer move to the given screen coordinates. The event
// is consumed on the next tick, in place of real mouse input.
func (g *Grid) InjectMove(x, y float64) {
	g.enqueue(syntheticPointerEvent{x: x, y: y, kind: injectMove})
}

// InjectClick queues a primary-button press at the given screen coordinates.
// The pointer moves there in the same tick.
func (g *Grid) InjectClick(x, y float64) {
	g.enqueue(syntheticPointerEvent{x: x, y: y, kind: injectPress})
}

// InjectTap queues a touch-start at the given screen coordinates. The mouse
// pointer position is left unchanged.
func (g *Grid) InjectTap(x, y float64) {
	g.enqueue(syntheticPointerEvent{x: x, y: y, kind: injectTap})
}

// InjectLeave queues the pointer leaving the canvas.
func (g *Grid) InjectLeave() {
	g.enqueue(syntheticPointerEvent{kind: injectLeave})
}

// enqueue appends an event and switches the grid to scripted input: from
// now on, ticks without a queued event reuse the last injected pointer state
// instead of reading the real mouse.
func (g *Grid) enqueue(evt syntheticPointerEvent) {
	g.scripted = true
	g.injectQueue = append(g.injectQueue, evt)
}

// InjectPath queues pointer moves from (fromX, fromY) to (toX, toY), linearly
// interpolated over the given number of ticks (minimum 2).
func (g *Grid) InjectPath(fromX, fromY, toX, toY float64, ticks int) {
	if ticks < 2 {
		ticks = 2
	}
	for i := 0; i < ticks; i++ {
		t := float64(i) / float64(ticks-1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// nextInjectedInput pops one event from the inject queue and turns it into
// this tick's snapshot. With an empty queue it returns the last injected
// pointer state, and false if the grid is not scripted (real input should be
// read instead).
func (g *Grid) nextInjectedInput() (InputSnapshot, bool) {
	if len(g.injectQueue) == 0 {
		return g.injected, g.scripted
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	switch evt.kind {
	case injectMove:
		g.injected = InputSnapshot{X: evt.x, Y: evt.y, HasPointer: true}
	case injectPress:
		g.injected = InputSnapshot{X: evt.x, Y: evt.y, HasPointer: true}
		snap := g.injected
		snap.Pressed = true
		return snap, true
	case injectTap:
		snap := g.injected
		snap.Taps = []Vec2{{X: evt.x, Y: evt.y}}
		return snap, true
	case injectLeave:
		g.injected = InputSnapshot{}
	}
	return g.injected, true
}
