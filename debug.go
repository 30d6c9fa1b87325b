package pixelgrid

import (
	"fmt"
	"time"
)

// debugStats holds layout and frame metrics. Only populated when
// Config.Debug is true.
type debugStats struct {
	layout     bool // layout pass rather than a frame
	layoutTime time.Duration
	drawTime   time.Duration
	tiles      int
	recomposed int
	tileWidth  float64
	bounds     Rect
	mobile     bool
}

// debugLog prints layout or frame stats to the grid's log writer.
func (g *Grid) debugLog(stats debugStats) {
	if !g.cfg.Debug {
		return
	}
	if stats.layout {
		mode := "desktop"
		if stats.mobile {
			mode = "mobile"
		}
		g.logf("layout: %v | tiles: %d | tile width: %.2f | grid: %.0fx%.0f at y %.0f | %s",
			stats.layoutTime, stats.tiles, stats.tileWidth,
			stats.bounds.Width, stats.bounds.Height, stats.bounds.Y, mode)
		return
	}
	g.logf("draw: %v | tiles: %d | recomposed: %d | ramp: %s to %.1fpx, done: %v",
		stats.drawTime, stats.tiles, stats.recomposed, g.ramp.Policy(), g.ramp.Max(), g.ramp.Done())
}

// debugFrame logs frame stats at most once per second of ticks.
func (g *Grid) debugFrame(drawTime time.Duration) {
	if g.ticks-g.debugTick < g.cfg.TickRate && g.debugTick != 0 {
		return
	}
	g.debugTick = max(g.ticks, 1)
	g.debugLog(debugStats{drawTime: drawTime, tiles: len(g.tiles), recomposed: g.renderer.Recomposed()})
}

// logf writes one diagnostic line.
func (g *Grid) logf(format string, args ...any) {
	if g.log == nil {
		return
	}
	_, _ = fmt.Fprintf(g.log, "[pixelgrid] "+format+"\n", args...)
}

// reportOnce writes a diagnostic the first time key is seen. Deterministic
// failures repeat every tick, so each is reported a single time.
func (g *Grid) reportOnce(key, format string, args ...any) {
	if g.reported[key] {
		return
	}
	g.reported[key] = true
	g.logf(format, args...)
}
