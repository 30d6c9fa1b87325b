package pixelgrid

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrHeadlessBackend is returned by RunHeadless for grids that do not draw
// through a SoftBackend.
var ErrHeadlessBackend = errors.New("pixelgrid: headless runs need a SoftBackend")

// RunConfig holds optional window settings for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Run opens a resizable window and runs g until the window closes, a link
// is opened under NavigateReplace, or a fatal error occurs. The tick rate
// comes from the grid's config. A normal termination returns nil.
func Run(g *Grid, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = 1200, 800
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.cfg.TickRate)
	g.resizeWindow = ebiten.SetWindowSize

	err := ebiten.RunGame(g)
	if errTerminated(err) {
		return nil
	}
	return err
}

// RunHeadless drives g without a window for the given number of ticks at
// viewport vp, rendering each frame through the grid's backend into a
// software surface sized to the current viewport. onFrame, when non-nil, receives the tick number and the
// frame after it is drawn. It stops early when the grid terminates, its test
// runner finishes, or onFrame returns an error.
func RunHeadless(g *Grid, vp Viewport, ticks int, onFrame func(tick int, frame *SoftSurface) error) error {
	if _, ok := g.backend.(*SoftBackend); !ok {
		return ErrHeadlessBackend
	}
	if err := g.Resize(vp); err != nil {
		return err
	}
	g.scripted = true
	if _, ok := g.cursor.(ebitenCursor); ok {
		g.cursor = CursorFunc(func(CursorShape) {})
	}
	var frame *SoftSurface
	for i := 0; i < ticks; i++ {
		err := g.Update()
		if err != nil {
			if errTerminated(err) {
				return nil
			}
			return err
		}
		// Scripted resizes change the viewport mid-run.
		w, h := int(g.viewport.W), int(g.viewport.H)
		if fw, fh := frameSize(frame); fw != w || fh != h {
			frame = NewSoftSurface(w, h)
		}
		g.RenderFrame(frame)
		if onFrame != nil {
			if err := onFrame(i, frame); err != nil {
				return err
			}
		}
		if g.testRunner != nil && g.testRunner.Done() {
			return nil
		}
	}
	return nil
}

func frameSize(s *SoftSurface) (int, int) {
	if s == nil {
		return 0, 0
	}
	return s.Size()
}
