package pixelgrid

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS and TPS in the top-left corner.
// The text is redrawn every ~0.5 seconds.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate time.Time
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 10.0"
	return &fpsOverlay{img: ebiten.NewImage(100, 32)}
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if now := time.Now(); now.Sub(o.lastUpdate) >= 500*time.Millisecond {
		o.lastUpdate = now
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(o.img, nil)
}
