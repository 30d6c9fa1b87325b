package pixelgrid

import (
	"math"
	"testing"
)

func TestInjectClick(t *testing.T) {
	g, rec := newTestGrid(t, 3, Viewport{W: 1200, H: 800}, nil)
	x, y := center(g.Tiles()[1].Rect)

	g.InjectClick(x, y)
	if len(g.injectQueue) != 1 {
		t.Fatalf("queue = %d, want 1", len(g.injectQueue))
	}
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if len(rec.opened) != 1 || rec.opened[0] != g.Tiles()[1].Link {
		t.Errorf("opened = %v", rec.opened)
	}
	// The pointer stays where it clicked, so the tile remains hovered.
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if !g.Tiles()[1].Hovered || len(rec.opened) != 1 {
		t.Errorf("hovered=%v opened=%d, want true and 1", g.Tiles()[1].Hovered, len(rec.opened))
	}
}

func TestInjectTap(t *testing.T) {
	g, rec := newTestGrid(t, 3, Viewport{W: 600, H: 800}, nil)
	x, y := center(g.Tiles()[2].Rect)
	g.InjectTap(x, y)
	_ = g.Update()
	if len(rec.opened) != 1 {
		t.Errorf("opened = %v, want one link", rec.opened)
	}
}

func TestInjectPath(t *testing.T) {
	g, _ := newTestGrid(t, 1, Viewport{W: 1200, H: 800}, nil)
	g.InjectPath(0, 0, 90, 30, 4)
	if len(g.injectQueue) != 4 {
		t.Fatalf("queue = %d, want 4", len(g.injectQueue))
	}
	last := g.injectQueue[3]
	if last.x != 90 || last.y != 30 || last.kind != injectMove {
		t.Errorf("last = %+v, want move to (90, 30)", last)
	}
	mid := g.injectQueue[1]
	if math.Abs(mid.x-30) > 1e-9 || math.Abs(mid.y-10) > 1e-9 {
		t.Errorf("mid = %+v, want (30, 10)", mid)
	}
}

func TestInjectPath_MinTicks(t *testing.T) {
	g, _ := newTestGrid(t, 1, Viewport{W: 1200, H: 800}, nil)
	g.InjectPath(0, 0, 10, 10, 1)
	if len(g.injectQueue) != 2 {
		t.Errorf("queue = %d, want 2", len(g.injectQueue))
	}
}

func TestNextInjectedInput(t *testing.T) {
	g, _ := newTestGrid(t, 1, Viewport{W: 1200, H: 800}, nil)
	g.InjectMove(5, 6)
	g.InjectClick(7, 8)
	g.InjectLeave()

	snap, ok := g.nextInjectedInput()
	if !ok || snap.X != 5 || snap.Y != 6 || !snap.HasPointer || snap.Pressed {
		t.Errorf("move snap = %+v", snap)
	}
	snap, _ = g.nextInjectedInput()
	if snap.X != 7 || !snap.Pressed {
		t.Errorf("press snap = %+v", snap)
	}
	// The press is a single-tick event; the position persists until the leave.
	if g.injected.Pressed {
		t.Error("press persisted into the held state")
	}
	snap, _ = g.nextInjectedInput()
	if snap.HasPointer {
		t.Errorf("leave snap = %+v", snap)
	}
	if len(g.injectQueue) != 0 {
		t.Errorf("queue = %d, want drained", len(g.injectQueue))
	}
}

func TestNextInjectedInput_Unscripted(t *testing.T) {
	images, links := testImages(1)
	cfg := DefaultConfig()
	cfg.Links = links
	g, err := NewGrid(images, cfg, WithBackend(NewSoftBackend()))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.nextInjectedInput(); ok {
		t.Error("unscripted grid with an empty queue should read real input")
	}
}
