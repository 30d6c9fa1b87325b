package pixelgrid

import "math"

// raiseEpsilon is the distance below which the offset settles on its target.
const raiseEpsilon = 1e-3

// RaiseState is the hover lift of one tile.
type RaiseState struct {
	Offset float64
}

// Step moves the offset a fixed fraction of the way toward Amount when
// hovering, or toward zero otherwise, and returns the new offset. The filter
// is first order, so the offset approaches its target without overshoot.
func (r *RaiseState) Step(hovering bool, cfg RaiseConfig) float64 {
	target := 0.0
	if hovering {
		target = cfg.Amount
	}
	r.Offset += (target - r.Offset) * cfg.Speed
	if math.Abs(target-r.Offset) < raiseEpsilon {
		r.Offset = target
	}
	return r.Offset
}

// Settled reports whether the offset rests on the target for the given
// hover state.
func (r RaiseState) Settled(hovering bool, cfg RaiseConfig) bool {
	if hovering {
		return r.Offset == cfg.Amount
	}
	return r.Offset == 0
}
