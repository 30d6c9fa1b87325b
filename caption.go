package pixelgrid

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const captionSize = 12

// captionOverlay labels the hovered tile with its link and current sample
// width. Enabled by Config.Captions.
type captionOverlay struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

func newCaptionOverlay() (*captionOverlay, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("pixelgrid: parse caption font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: captionSize}
	m := face.Metrics()
	return &captionOverlay{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

func captionText(t Tile) string {
	link := t.Link
	if link == "" {
		link = "(no link)"
	}
	return fmt.Sprintf("%s\n%.0f / %.0f px", link, t.Resolution, t.Rect.Width)
}

// draw renders the caption just below the tile's rendered rectangle.
func (o *captionOverlay) draw(screen *ebiten.Image, t Tile) {
	s := captionText(t)
	w, h := text.Measure(s, o.face, o.lh)
	rr := t.RenderedRect()
	x, y := rr.X, rr.Y+rr.Height+2

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w+6), float32(h+4), color.RGBA{0, 0, 0, 160}, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x+3, y+2)
	op.LineSpacing = o.lh
	text.Draw(screen, s, o.face, op)
}
