// Package ecs provides ECS adapters for pixelgrid's tile event system.
//
// The primary adapter is [NewDonburiSink], which bridges pixelgrid tile
// events (click, hover enter, hover leave) into a [Donburi] world as typed
// events. Subscribe to [TileEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	grid, err := pixelgrid.NewGrid(images, cfg, pixelgrid.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
