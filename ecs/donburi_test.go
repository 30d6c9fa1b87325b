package ecs

import (
	"image"
	"io"
	"testing"

	"github.com/phanxgames/pixelgrid"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []pixelgrid.TileEvent
	TileEventType.Subscribe(world, func(w donburi.World, e pixelgrid.TileEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(pixelgrid.TileEvent{Type: pixelgrid.EventClick, Index: 5, Link: "https://example.com/5", X: 100, Y: 200})
	sink.EmitEvent(pixelgrid.TileEvent{Type: pixelgrid.EventHoverEnter, Index: 2})

	// Events are queued; process them.
	TileEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != pixelgrid.EventClick || e.Index != 5 || e.X != 100 || e.Y != 200 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != pixelgrid.EventHoverEnter || e.Index != 2 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	TileEventType.Subscribe(world, func(w donburi.World, e pixelgrid.TileEvent) { count1++ })
	TileEventType.Subscribe(world, func(w donburi.World, e pixelgrid.TileEvent) { count2++ })

	sink.EmitEvent(pixelgrid.TileEvent{Type: pixelgrid.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiSink_FromGrid(t *testing.T) {
	world := donburi.NewWorld()

	images := make([]pixelgrid.SourceImage, 4)
	links := make([]string, 4)
	for i := range images {
		images[i] = pixelgrid.NewSourceImage(image.NewRGBA(image.Rect(0, 0, 40, 30)))
		links[i] = "https://example.com/" + string(rune('a'+i))
	}
	cfg := pixelgrid.DefaultConfig()
	cfg.Links = links

	var opened []string
	g, err := pixelgrid.NewGrid(images, cfg,
		pixelgrid.WithBackend(pixelgrid.NewSoftBackend()),
		pixelgrid.WithViewport(pixelgrid.Viewport{W: 1200, H: 800}),
		pixelgrid.WithCursor(pixelgrid.CursorFunc(func(pixelgrid.CursorShape) {})),
		pixelgrid.WithNavigator(pixelgrid.NavigatorFunc(func(link string) error {
			opened = append(opened, link)
			return nil
		})),
		pixelgrid.WithLogger(io.Discard),
		pixelgrid.WithEventSink(NewDonburiSink(world)),
	)
	if err != nil {
		t.Fatal(err)
	}

	var clicks []pixelgrid.TileEvent
	TileEventType.Subscribe(world, func(w donburi.World, e pixelgrid.TileEvent) {
		if e.Type == pixelgrid.EventClick {
			clicks = append(clicks, e)
		}
	})

	r := g.Tiles()[1].Rect
	g.InjectClick(r.X+r.Width/2, r.Y+r.Height/2)
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	TileEventType.ProcessEvents(world)

	if len(clicks) != 1 || clicks[0].Index != 1 || !clicks[0].Opened {
		t.Fatalf("clicks = %+v, want one opened click on tile 1", clicks)
	}
	if len(opened) != 1 || opened[0] != links[1] {
		t.Errorf("opened = %v, want [%s]", opened, links[1])
	}
}
