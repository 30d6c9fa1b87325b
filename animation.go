package pixelgrid

import (
	"math"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// easeFuncs maps config names to gween easing functions for RampEased.
// Overshooting easings (back, elastic, bounce) are accepted; stepEased clamps
// their output so resolution still only grows.
var easeFuncs = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
	"inexpo":     ease.InExpo,
	"outexpo":    ease.OutExpo,
	"inoutexpo":  ease.InOutExpo,
	"outback":    ease.OutBack,
	"outelastic": ease.OutElastic,
	"outbounce":  ease.OutBounce,
}

// easeFunc resolves an easing by name, falling back to linear.
func easeFunc(name string) ease.TweenFunc {
	if fn, ok := easeFuncs[strings.ToLower(name)]; ok {
		return fn
	}
	return ease.Linear
}

// newTween starts a tween from the current resolution to the controller
// maximum. The duration shrinks with the distance already covered, so a
// tile re-synced mid-ramp keeps its pace instead of starting over.
func (c *RampController) newTween(from float64) *gween.Tween {
	duration := c.cfg.Duration
	if c.max > 0 {
		duration *= 1 - clamp01(from/c.max)
	}
	if duration <= 0 {
		duration = float64(c.dt)
	}
	return gween.New(float32(from), float32(c.max), float32(duration), easeFunc(c.cfg.Ease))
}

// stepEased advances one tween by dt and returns the new resolution,
// clamped to [current, max].
func stepEased(tw *gween.Tween, current, max float64, dt float32) float64 {
	if current >= max {
		return max
	}
	val, finished := tw.Update(dt)
	if finished {
		return max
	}
	return math.Min(math.Max(current, float64(val)), max)
}
