package pixelgrid

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

var (
	// ErrLinkCountMismatch is returned when the link list length differs from
	// the image count.
	ErrLinkCountMismatch = errors.New("pixelgrid: link count does not match image count")

	// ErrDegenerateGrid is returned when a row count or padding leaves no room
	// for a tile of positive width.
	ErrDegenerateGrid = errors.New("pixelgrid: degenerate grid")

	// ErrInvalidAspect is wrapped by ImageError when a source image has no
	// positive aspect ratio.
	ErrInvalidAspect = errors.New("pixelgrid: image has no positive aspect ratio")
)

// ImageError reports a failure tied to one image index.
type ImageError struct {
	Index int
	Err   error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("image %d: %v", e.Index, e.Err)
}

func (e *ImageError) Unwrap() error { return e.Err }

// LayoutConfig selects the row-wrap count and spacing for each side of the
// breakpoint. Widths below Breakpoint use the mobile values.
type LayoutConfig struct {
	RowsDesktop    int     `json:"rowsDesktop"`
	RowsMobile     int     `json:"rowsMobile"`
	PaddingDesktop float64 `json:"paddingDesktop"`
	PaddingMobile  float64 `json:"paddingMobile"`
	Breakpoint     float64 `json:"breakpoint"`
}

// RampPolicy selects how tile resolution advances each tick.
type RampPolicy uint8

const (
	RampUniform   RampPolicy = iota // one shared resolution and speed
	RampStaggered                   // per-tile speeds seeded by stagger group, with snap
	RampEased                       // per-tile gween tween over a fixed duration
)

var rampPolicyNames = map[string]RampPolicy{
	"uniform":   RampUniform,
	"staggered": RampStaggered,
	"eased":     RampEased,
}

func (p RampPolicy) String() string {
	for name, v := range rampPolicyNames {
		if v == p {
			return name
		}
	}
	return fmt.Sprintf("RampPolicy(%d)", uint8(p))
}

// UnmarshalText parses a policy name.
func (p *RampPolicy) UnmarshalText(text []byte) error {
	v, ok := rampPolicyNames[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown ramp policy %q", text)
	}
	*p = v
	return nil
}

// RampConfig tunes the resolution ramp. Speeds are in sample pixels per tick.
type RampConfig struct {
	Policy RampPolicy `json:"policy"`

	// Uniform policy.
	StartSpeed   float64 `json:"startSpeed"`
	Acceleration float64 `json:"acceleration"`

	// Shared speed ceiling; staggered seeds are drawn from [MinSpeed, MaxSpeed]
	// and each tile's speed grows by MinSpeed per tick.
	MinSpeed float64 `json:"minSpeed"`
	MaxSpeed float64 `json:"maxSpeed"`

	// Staggered policy.
	SnapThreshold float64 `json:"snapThreshold"`
	StaggerGroups int     `json:"staggerGroups"`
	Seed          uint64  `json:"seed"`

	// Eased policy.
	Duration float64 `json:"duration"` // seconds
	Ease     string  `json:"ease"`
}

// RaiseConfig tunes the hover lift. Speed is an interpolation factor per tick.
type RaiseConfig struct {
	Amount float64 `json:"amount"`
	Speed  float64 `json:"speed"`
}

// Config is the static configuration of a grid, read once at construction.
type Config struct {
	Links    []string     `json:"links"`
	Layout   LayoutConfig `json:"layout"`
	Ramp     RampConfig   `json:"ramp"`
	Raise    RaiseConfig  `json:"raise"`
	TickRate int          `json:"tickRate"`

	Navigation NavigationPolicy `json:"navigation"`
	Resize     ResizePolicy     `json:"resize"`
	Missing    MissingPolicy    `json:"missing"`

	ClearColor Color `json:"clearColor"`
	Debug      bool  `json:"debug"`
	ShowFPS    bool  `json:"showFPS"`
	Captions   bool  `json:"captions"` // label the hovered tile with its link
}

// DefaultConfig returns the stock gallery settings: twelve
// images on one desktop row, four per row on mobile.
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{
			RowsDesktop:    12,
			RowsMobile:     4,
			PaddingDesktop: 20,
			PaddingMobile:  10,
			Breakpoint:     860,
		},
		Ramp: RampConfig{
			Policy:        RampUniform,
			StartSpeed:    0.1,
			Acceleration:  1,
			MinSpeed:      0.5,
			MaxSpeed:      2,
			SnapThreshold: 0.9,
			StaggerGroups: 3,
			Duration:      4,
			Ease:          "outcubic",
		},
		Raise: RaiseConfig{
			Amount: 20,
			Speed:  0.8,
		},
		TickRate:   10,
		ClearColor: ColorWhite,
	}
}

// LoadConfig reads a JSON config file. Fields missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses JSON config data on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks everything that can be checked without images. The image
// count is checked against Links by NewGrid.
func (c Config) Validate() error {
	l := c.Layout
	if l.RowsDesktop < 1 || l.RowsMobile < 1 {
		return fmt.Errorf("%w: row counts must be at least 1 (desktop %d, mobile %d)",
			ErrDegenerateGrid, l.RowsDesktop, l.RowsMobile)
	}
	if l.PaddingDesktop < 0 || l.PaddingMobile < 0 {
		return fmt.Errorf("%w: negative padding (desktop %v, mobile %v)",
			ErrDegenerateGrid, l.PaddingDesktop, l.PaddingMobile)
	}
	if l.Breakpoint < 0 || math.IsNaN(l.Breakpoint) {
		return fmt.Errorf("config: invalid breakpoint %v", l.Breakpoint)
	}

	r := c.Ramp
	if r.MaxSpeed <= 0 {
		return fmt.Errorf("config: ramp max speed must be positive, got %v", r.MaxSpeed)
	}
	switch r.Policy {
	case RampUniform:
		if r.StartSpeed < 0 || r.Acceleration < 0 {
			return fmt.Errorf("config: uniform ramp needs non-negative start speed and acceleration")
		}
	case RampStaggered:
		if r.MinSpeed <= 0 || r.MinSpeed > r.MaxSpeed {
			return fmt.Errorf("config: staggered ramp needs 0 < minSpeed <= maxSpeed, got [%v, %v]",
				r.MinSpeed, r.MaxSpeed)
		}
		if r.SnapThreshold <= 0 || r.SnapThreshold > 1 {
			return fmt.Errorf("config: snap threshold must be in (0, 1], got %v", r.SnapThreshold)
		}
		if r.StaggerGroups < 1 {
			return fmt.Errorf("config: stagger groups must be at least 1, got %d", r.StaggerGroups)
		}
	case RampEased:
		if r.Duration <= 0 {
			return fmt.Errorf("config: eased ramp duration must be positive, got %v", r.Duration)
		}
		if _, ok := easeFuncs[strings.ToLower(r.Ease)]; !ok {
			return fmt.Errorf("config: unknown ease %q", r.Ease)
		}
	default:
		return fmt.Errorf("config: unknown ramp policy %d", r.Policy)
	}

	if c.Raise.Amount < 0 {
		return fmt.Errorf("config: raise amount must not be negative, got %v", c.Raise.Amount)
	}
	if c.Raise.Speed <= 0 || c.Raise.Speed > 1 {
		return fmt.Errorf("config: raise speed must be in (0, 1], got %v", c.Raise.Speed)
	}
	if c.TickRate < 1 {
		return fmt.Errorf("config: tick rate must be at least 1, got %d", c.TickRate)
	}
	return nil
}

var navigationNames = map[string]NavigationPolicy{
	"new":     NavigateNewContext,
	"replace": NavigateReplace,
}

// UnmarshalText parses "new" or "replace".
func (p *NavigationPolicy) UnmarshalText(text []byte) error {
	v, ok := navigationNames[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown navigation policy %q", text)
	}
	*p = v
	return nil
}

var resizeNames = map[string]ResizePolicy{
	"preserve": ResizePreserve,
	"reset":    ResizeReset,
}

// UnmarshalText parses "preserve" or "reset".
func (p *ResizePolicy) UnmarshalText(text []byte) error {
	v, ok := resizeNames[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown resize policy %q", text)
	}
	*p = v
	return nil
}

var missingNames = map[string]MissingPolicy{
	"halt":    MissingHalt,
	"exclude": MissingExclude,
}

// UnmarshalText parses "halt" or "exclude".
func (p *MissingPolicy) UnmarshalText(text []byte) error {
	v, ok := missingNames[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown missing-image policy %q", text)
	}
	*p = v
	return nil
}
