// Package pixelgrid is a responsive image grid for [Ebitengine] in which every
// image starts as a single coarse block and sharpens to full resolution over
// a few seconds.
//
// Tiles keep their image's aspect ratio and share one width. A width
// breakpoint switches between a desktop and a mobile column count. Hovering a
// tile on desktop lifts it; clicking or tapping it opens its link.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a resizable window
// and game loop for you:
//
//	cfg := pixelgrid.DefaultConfig()
//	cfg.Links = links // one per image, same order
//	g, err := pixelgrid.NewGrid(images, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	pixelgrid.Run(g, pixelgrid.RunConfig{Title: "Gallery", Width: 1200, Height: 800})
//
// [Grid] implements [ebiten.Game], so it can also be handed to
// ebiten.RunGame directly or embedded in a larger game.
//
// # Images
//
// [LoadImages] decodes 0.jpg, 1.png, 2.webp and so on from any [io/fs.FS].
// Failed indices come back as [*ImageError]; [Config.Missing] decides whether
// they stop the grid or are dropped together with their link.
//
// # Resolution ramp
//
// Each tick, [RampController] moves every tile's sample width toward the
// tile width. [RampUniform] shares one accelerating speed across tiles,
// [RampStaggered] seeds speeds per group and snaps near the end, and
// [RampEased] follows a [gween] easing curve.
//
// # Rendering
//
// A [Renderer] downsamples each source to the current sample width and
// stretches it back with nearest-neighbour filtering. The [EbitenBackend]
// draws on the GPU; the [SoftBackend] draws on the CPU for headless runs and
// tests (see [RunHeadless]).
//
// # Input
//
// Tile callbacks are registered with [Grid.OnTileClick],
// [Grid.OnHoverEnter] and [Grid.OnHoverLeave]. Links are opened by a
// [Navigator]; the default uses the system browser. Synthetic input
// ([Grid.InjectClick], [Grid.InjectMove], [Grid.InjectTap]) and JSON
// scripts ([LoadTestScript]) drive the grid without a mouse.
//
// Events can also be forwarded to an ECS world through [WithEventSink]; see
// the pixelgrid/ecs module for a [Donburi] adapter.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package pixelgrid
