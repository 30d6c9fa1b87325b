package pixelgrid

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventSink is the interface for optional event forwarding. When set on a
// Grid, tile interaction events are forwarded to it after the callbacks.
type EventSink interface {
	EmitEvent(event TileEvent)
}

// TileEvent carries interaction data for an EventSink.
type TileEvent struct {
	Type   EventType
	Index  int
	Link   string
	X, Y   float64
	Touch  bool
	Opened bool
}

// Option configures a Grid at construction.
type Option func(*Grid)

// WithNavigator sets the collaborator that opens tile links.
// The default opens links in the system browser.
func WithNavigator(nav Navigator) Option {
	return func(g *Grid) { g.nav = nav }
}

// WithCursor sets the collaborator that shows the pointer indicator.
// The default sets the ebiten cursor shape.
func WithCursor(c CursorSetter) Option {
	return func(g *Grid) { g.cursor = c }
}

// WithRand sets the generator used to draw stagger-group speeds.
func WithRand(rng *rand.Rand) Option {
	return func(g *Grid) { g.rng = rng }
}

// WithLogger sets where diagnostics are written. The default is stderr.
func WithLogger(w io.Writer) Option {
	return func(g *Grid) { g.log = w }
}

// WithEventSink forwards interaction events to sink.
func WithEventSink(sink EventSink) Option {
	return func(g *Grid) { g.sink = sink }
}

// WithBackend sets the drawing backend. The default is an EbitenBackend.
func WithBackend(b Backend) Option {
	return func(g *Grid) { g.backend = b }
}

// WithViewport lays the grid out immediately for the given size instead of
// waiting for the first Layout call.
func WithViewport(vp Viewport) Option {
	return func(g *Grid) { g.initialViewport = vp }
}

// Grid is the top-level object that owns the tiles, their animation state,
// input state and the renderer. It implements ebiten.Game.
type Grid struct {
	cfg     Config
	images  []SourceImage
	links   []string
	sources []int // position of each kept image in the NewGrid input
	aspects []float64

	// Layout state, rebuilt on every resize.
	tiles     []Tile
	viewport  Viewport
	tileWidth float64
	mobile    bool
	laidOut   bool

	// Animation state, preserved across resizes per cfg.Resize.
	ramp  *RampController
	raise []RaiseState
	rng   *rand.Rand

	// Collaborators.
	nav     Navigator
	cursor  CursorSetter
	sink    EventSink
	backend Backend
	log     io.Writer

	renderer *Renderer
	fps      *fpsOverlay
	caption  *captionOverlay

	// Input state.
	handlers    handlerRegistry
	hoverIndex  int
	cursorShape CursorShape
	cursorKnown bool
	touchBuf    []ebiten.TouchID
	injectQueue []syntheticPointerEvent
	injected    InputSnapshot
	scripted    bool

	// Scripted runs.
	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	initialViewport Viewport
	resizeWindow    func(w, h int) // set by Run; nil when there is no window
	updateFunc      func() error
	reported        map[string]bool
	err             error
	terminate       bool
	ticks           int
	debugTick       int // last tick whose frame stats were logged
}

// NewGrid validates cfg against images and builds a grid. Links pair with
// images by position. Images without a positive aspect ratio or without
// pixels are fatal under MissingHalt; under MissingExclude they are dropped
// together with their link and reported once.
func NewGrid(images []SourceImage, cfg Config, opts ...Option) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Links) != len(images) {
		return nil, fmt.Errorf("%w: %d links for %d images", ErrLinkCountMismatch, len(cfg.Links), len(images))
	}

	g := &Grid{
		cfg:           cfg,
		hoverIndex:    -1,
		log:           os.Stderr,
		reported:      make(map[string]bool),
		ScreenshotDir: "screenshots",
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.nav == nil {
		g.nav = SystemBrowser{}
	}
	if g.cursor == nil {
		g.cursor = ebitenCursor{}
	}
	if g.backend == nil {
		g.backend = NewEbitenBackend()
	}
	g.renderer = NewRenderer(g.backend)

	for i, img := range images {
		aspect := img.AspectRatio()
		if aspect > 0 && img.Image != nil {
			g.images = append(g.images, img)
			g.links = append(g.links, cfg.Links[i])
			g.sources = append(g.sources, i)
			g.aspects = append(g.aspects, aspect)
			continue
		}
		err := &ImageError{Index: i, Err: ErrInvalidAspect}
		if cfg.Missing == MissingHalt {
			return nil, err
		}
		g.reportOnce(fmt.Sprintf("exclude:%d", i), "excluding %v", err)
	}

	g.ramp = NewRampController(cfg.Ramp, cfg.TickRate, g.rng)

	if g.initialViewport.W > 0 && g.initialViewport.H > 0 {
		if err := g.Resize(g.initialViewport); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Config returns the grid's configuration.
func (g *Grid) Config() Config {
	return g.cfg
}

// Tiles returns the current tiles. The returned slice MUST NOT be mutated and
// is replaced on the next resize.
func (g *Grid) Tiles() []Tile {
	return g.tiles
}

// Viewport returns the size of the last layout pass.
func (g *Grid) Viewport() Viewport {
	return g.viewport
}

// Mobile reports whether the mobile row count and padding are active.
func (g *Grid) Mobile() bool {
	return g.mobile
}

// Ramp returns the resolution ramp controller.
func (g *Grid) Ramp() *RampController {
	return g.ramp
}

// Ticks returns the number of ticks run since construction.
func (g *Grid) Ticks() int {
	return g.ticks
}

// Err returns the fatal error that stopped the grid, if any.
func (g *Grid) Err() error {
	return g.err
}

// SetUpdateFunc sets a callback run at the end of every tick.
func (g *Grid) SetUpdateFunc(fn func() error) {
	g.updateFunc = fn
}

// Resize recomputes the layout for vp. Tiles are rebuilt wholesale; their
// resolution and raise offset carry over by index unless cfg.Resize is
// ResizeReset. A degenerate layout is a fatal error.
func (g *Grid) Resize(vp Viewport) error {
	var t0 time.Time
	if g.cfg.Debug {
		t0 = time.Now()
	}

	rects, err := ComputeLayout(g.aspects, vp, g.cfg.Layout)
	if err != nil {
		return fmt.Errorf("layout %.0fx%.0f: %w", vp.W, vp.H, err)
	}
	tileW := 0.0
	if len(rects) > 0 {
		tileW = rects[0].Width
	}
	_, _, mobile := SelectBreakpoint(vp.W, g.cfg.Layout)

	preserve := g.laidOut && g.cfg.Resize == ResizePreserve
	if preserve {
		g.ramp.Resync(len(rects), tileW, true)
	} else {
		g.ramp.Reset(len(rects), tileW)
	}
	if !preserve || len(g.raise) != len(rects) {
		g.raise = make([]RaiseState, len(rects))
	}

	tiles := make([]Tile, len(rects))
	for i, r := range rects {
		tiles[i] = Tile{
			Index:      i,
			Source:     g.sources[i],
			Rect:       r,
			Link:       g.links[i],
			Raise:      g.raise[i].Offset,
			Resolution: g.ramp.Resolution(i),
		}
	}
	if mobile {
		// Hover has no meaning on touch layouts.
		for i := range g.raise {
			g.raise[i].Offset = 0
			tiles[i].Raise = 0
		}
	}
	g.tiles = tiles
	g.viewport = vp
	g.tileWidth = tileW
	g.mobile = mobile
	g.laidOut = true
	g.hoverIndex = -1
	g.renderer.Invalidate()

	if g.cfg.Debug {
		g.debugLog(debugStats{
			layout:     true,
			layoutTime: time.Since(t0),
			tiles:      len(tiles),
			tileWidth:  tileW,
			bounds:     gridBounds(rects),
			mobile:     mobile,
		})
	}
	return nil
}

// Update runs one tick: scripted steps, input, resolution ramp and hover
// raise. It implements ebiten.Game.
func (g *Grid) Update() error {
	if g.err != nil {
		return g.err
	}
	if !g.laidOut {
		return nil
	}
	if g.testRunner != nil {
		g.testRunner.step(g)
	}

	snap, ok := g.nextInjectedInput()
	if !ok {
		snap = g.readInput()
	}
	g.tick(snap)

	if g.updateFunc != nil {
		if err := g.updateFunc(); err != nil {
			return err
		}
	}
	if g.terminate {
		return ebiten.Termination
	}
	return nil
}

// tick applies one input snapshot and advances all animation state.
func (g *Grid) tick(snap InputSnapshot) {
	g.processInput(snap)

	g.ramp.Tick()
	for i := range g.tiles {
		t := &g.tiles[i]
		t.Resolution = g.ramp.Resolution(i)
		t.Raise = g.raise[i].Step(t.Hovered && !g.mobile, g.cfg.Raise)
	}
	g.ticks++
}

// Draw renders the grid to the screen. It implements ebiten.Game.
func (g *Grid) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if g.cfg.Debug {
		t0 = time.Now()
	}

	if _, soft := g.backend.(*SoftBackend); soft {
		g.drawSoftToScreen(screen)
	} else {
		g.RenderFrame(WrapEbitenImage(screen))
	}

	if g.cfg.ShowFPS {
		if g.fps == nil {
			g.fps = newFPSOverlay()
		}
		g.fps.draw(screen)
	}
	if g.cfg.Captions && g.hoverIndex >= 0 && g.hoverIndex < len(g.tiles) {
		g.drawCaption(screen, g.tiles[g.hoverIndex])
	}
	g.flushScreenshots(screen)

	if g.cfg.Debug {
		g.debugFrame(time.Since(t0))
	}
}

func (g *Grid) drawCaption(screen *ebiten.Image, t Tile) {
	if g.caption == nil {
		c, err := newCaptionOverlay()
		if err != nil {
			g.reportOnce("caption", "captions disabled: %v", err)
			g.cfg.Captions = false
			return
		}
		g.caption = c
	}
	g.caption.draw(screen, t)
}

// drawSoftToScreen renders on the CPU and uploads the frame.
func (g *Grid) drawSoftToScreen(screen *ebiten.Image) {
	b := screen.Bounds()
	frame := NewSoftSurface(b.Dx(), b.Dy())
	g.RenderFrame(frame)
	screen.WritePixels(frame.dst.Pix)
}

// RenderFrame clears dst and draws every tile onto it through the grid's
// backend. Queued screenshots are written when dst can be read back on the
// CPU.
func (g *Grid) RenderFrame(dst Surface) {
	dst.Fill(g.cfg.ClearColor)
	g.renderer.Draw(dst, g.tiles, g.images)
	if is, ok := dst.(imageSurface); ok {
		g.flushScreenshotImage(is.Image())
	}
}

// Layout implements ebiten.Game. A change in outside size triggers a
// synchronous layout pass before the next tick.
func (g *Grid) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := Viewport{W: float64(outsideWidth), H: float64(outsideHeight)}
	if g.err == nil && (!g.laidOut || vp != g.viewport) {
		if err := g.Resize(vp); err != nil {
			g.fail(err)
		}
	}
	return outsideWidth, outsideHeight
}

// fail records a fatal error; the next Update returns it.
func (g *Grid) fail(err error) {
	g.reportOnce("fatal", "fatal: %v", err)
	g.err = err
}

// errTerminated reports whether err is the normal end of a run.
func errTerminated(err error) bool {
	return err == nil || errors.Is(err, ebiten.Termination)
}
