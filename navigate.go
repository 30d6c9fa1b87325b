package pixelgrid

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNoLink is returned by navigators asked to open an empty link.
var ErrNoLink = errors.New("pixelgrid: empty link")

// Navigator opens a tile's link.
type Navigator interface {
	Open(link string) error
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(link string) error

// Open calls f(link).
func (f NavigatorFunc) Open(link string) error { return f(link) }

// SystemBrowser opens links with the platform's default handler.
type SystemBrowser struct{}

// Open starts the platform opener for link and returns without waiting for it.
func (SystemBrowser) Open(link string) error {
	if link == "" {
		return ErrNoLink
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", link)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	default:
		cmd = exec.Command("xdg-open", link)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %q: %w", link, err)
	}
	// Reap the opener so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

// CursorSetter shows a pointer indicator.
type CursorSetter interface {
	SetCursor(shape CursorShape)
}

// CursorFunc adapts a function to the CursorSetter interface.
type CursorFunc func(shape CursorShape)

// SetCursor calls f(shape).
func (f CursorFunc) SetCursor(shape CursorShape) { f(shape) }

type ebitenCursor struct{}

func (ebitenCursor) SetCursor(shape CursorShape) {
	switch shape {
	case CursorPointer:
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	default:
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}
