package ecs

import (
	"github.com/phanxgames/pixelgrid"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TileEventType is the Donburi event type for pixelgrid tile events.
var TileEventType = events.NewEventType[pixelgrid.TileEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Tile events
// are published to TileEventType and can be consumed with events.Subscribe
// and ProcessEvents.
func NewDonburiSink(world donburi.World) pixelgrid.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event pixelgrid.TileEvent) {
	TileEventType.Publish(s.world, event)
}
