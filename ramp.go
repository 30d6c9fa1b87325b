package pixelgrid

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween"
)

// initialResolution is the most pixelated state: one sample across the tile.
const initialResolution = 1.0

// RampState is the per-tile progress of the resolution ramp.
type RampState struct {
	Resolution float64
	Speed      float64
}

// RampController advances tile sampling resolution toward the tile width,
// one step per tick. All state is owned by the controller and mutated only
// from Tick, Reset and Resync.
type RampController struct {
	cfg RampConfig
	dt  float32 // seconds per tick, for the eased policy
	max float64

	shared RampState   // RampUniform
	tiles  []RampState // RampStaggered, RampEased
	seeds  []float64   // one initial speed per stagger group
	tweens []*gween.Tween
}

// NewRampController creates a controller for the given policy. rng seeds the
// stagger groups; nil derives a generator from cfg.Seed, or from the clock
// when cfg.Seed is zero.
func NewRampController(cfg RampConfig, tickRate int, rng *rand.Rand) *RampController {
	if tickRate < 1 {
		tickRate = 1
	}
	c := &RampController{cfg: cfg, dt: float32(1.0 / float64(tickRate))}
	if cfg.Policy == RampStaggered {
		if rng == nil {
			rng = newRand(cfg.Seed)
		}
		c.seeds = drawSeeds(rng, cfg.StaggerGroups, cfg.MinSpeed, cfg.MaxSpeed)
	}
	return c
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// drawSeeds draws n speeds uniformly from [lo, hi].
func drawSeeds(rng *rand.Rand, n int, lo, hi float64) []float64 {
	if n < 1 {
		n = 1
	}
	seeds := make([]float64, n)
	for i := range seeds {
		seeds[i] = lo + rng.Float64()*(hi-lo)
	}
	return seeds
}

// Seeds returns the per-group initial speeds. Empty unless the policy is
// RampStaggered. The returned slice MUST NOT be mutated.
func (c *RampController) Seeds() []float64 {
	return c.seeds
}

// Policy returns the active ramp policy.
func (c *RampController) Policy() RampPolicy {
	return c.cfg.Policy
}

// Max returns the current full-detail resolution (the tile width).
func (c *RampController) Max() float64 {
	return c.max
}

// Reset puts n tiles into the most pixelated state with the given maximum.
func (c *RampController) Reset(n int, max float64) {
	c.max = max
	c.shared = RampState{Resolution: math.Min(initialResolution, max), Speed: c.cfg.StartSpeed}
	c.tiles = c.tiles[:0]
	for i := 0; i < n; i++ {
		c.tiles = append(c.tiles, c.initialState(i))
	}
	c.tweens = c.tweens[:0]
	if c.cfg.Policy == RampEased {
		for i := range c.tiles {
			c.tweens = append(c.tweens, c.newTween(c.tiles[i].Resolution))
		}
	}
}

// Resync adapts the state to a new layout. With preserve, progress is kept by
// index and clamped to the new maximum; otherwise it is the same as Reset.
func (c *RampController) Resync(n int, max float64, preserve bool) {
	if !preserve {
		c.Reset(n, max)
		return
	}
	c.max = max
	c.shared.Resolution = math.Min(c.shared.Resolution, max)
	for i := range c.tiles {
		c.tiles[i].Resolution = math.Min(c.tiles[i].Resolution, max)
	}
	for i := len(c.tiles); i < n; i++ {
		c.tiles = append(c.tiles, c.initialState(i))
	}
	c.tiles = c.tiles[:n]

	// A grown tile ramps on from its current resolution.
	if c.cfg.Policy == RampEased {
		c.tweens = c.tweens[:0]
		for i := range c.tiles {
			c.tweens = append(c.tweens, c.newTween(c.tiles[i].Resolution))
		}
	}
}

func (c *RampController) initialState(i int) RampState {
	s := RampState{Resolution: math.Min(initialResolution, c.max), Speed: c.cfg.StartSpeed}
	if len(c.seeds) > 0 {
		s.Speed = c.seeds[i%len(c.seeds)]
	}
	return s
}

// Tick advances every tile by one step.
func (c *RampController) Tick() {
	switch c.cfg.Policy {
	case RampUniform:
		c.shared = stepUniform(c.shared, c.max, c.cfg)
	case RampStaggered:
		for i := range c.tiles {
			c.tiles[i] = stepStaggered(c.tiles[i], c.max, c.cfg)
		}
	case RampEased:
		for i := range c.tiles {
			c.tiles[i].Resolution = stepEased(c.tweens[i], c.tiles[i].Resolution, c.max, c.dt)
		}
	}
}

// Resolution returns the current sample width of tile i.
func (c *RampController) Resolution(i int) float64 {
	if c.cfg.Policy == RampUniform {
		return c.shared.Resolution
	}
	if i < 0 || i >= len(c.tiles) {
		return 0
	}
	return c.tiles[i].Resolution
}

// State returns the ramp state of tile i.
func (c *RampController) State(i int) RampState {
	if c.cfg.Policy == RampUniform {
		return c.shared
	}
	return c.tiles[i]
}

// Done reports whether every tile has reached full detail.
func (c *RampController) Done() bool {
	if c.cfg.Policy == RampUniform {
		return c.shared.Resolution >= c.max
	}
	for _, s := range c.tiles {
		if s.Resolution < c.max {
			return false
		}
	}
	return true
}

// stepUniform accelerates toward MaxSpeed, then advances by the new speed.
func stepUniform(s RampState, max float64, cfg RampConfig) RampState {
	s.Speed = math.Min(s.Speed+cfg.Acceleration, cfg.MaxSpeed)
	if s.Resolution < max {
		s.Resolution = math.Min(s.Resolution+s.Speed, max)
	}
	return s
}

// stepStaggered accelerates by MinSpeed up to MaxSpeed, advances, and snaps
// to full detail once the snap threshold is crossed.
func stepStaggered(s RampState, max float64, cfg RampConfig) RampState {
	if s.Resolution >= max {
		s.Resolution = max
		return s
	}
	s.Speed = math.Min(s.Speed+cfg.MinSpeed, cfg.MaxSpeed)
	s.Resolution = math.Min(s.Resolution+s.Speed, max)
	if max > 0 && s.Resolution/max >= cfg.SnapThreshold {
		s.Resolution = max
	}
	return s
}
