package pixelgrid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		is      error
	}{
		{"defaults", func(c *Config) {}, false, nil},
		{"zero desktop rows", func(c *Config) { c.Layout.RowsDesktop = 0 }, true, ErrDegenerateGrid},
		{"negative padding", func(c *Config) { c.Layout.PaddingMobile = -1 }, true, ErrDegenerateGrid},
		{"zero max speed", func(c *Config) { c.Ramp.MaxSpeed = 0 }, true, nil},
		{"staggered min above max", func(c *Config) {
			c.Ramp.Policy = RampStaggered
			c.Ramp.MinSpeed = 3
		}, true, nil},
		{"staggered snap out of range", func(c *Config) {
			c.Ramp.Policy = RampStaggered
			c.Ramp.SnapThreshold = 1.5
		}, true, nil},
		{"eased unknown ease", func(c *Config) {
			c.Ramp.Policy = RampEased
			c.Ramp.Ease = "wobbly"
		}, true, nil},
		{"eased ok", func(c *Config) {
			c.Ramp.Policy = RampEased
			c.Ramp.Ease = "InOutSine"
		}, false, nil},
		{"raise speed zero", func(c *Config) { c.Raise.Speed = 0 }, true, nil},
		{"raise speed above one", func(c *Config) { c.Raise.Speed = 1.2 }, true, nil},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("err = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`{
		"links": ["https://a.example", "https://b.example"],
		"layout": {"rowsDesktop": 6},
		"ramp": {"policy": "staggered", "seed": 42},
		"navigation": "replace",
		"resize": "reset",
		"missing": "exclude",
		"showFPS": true
	}`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Links) != 2 || cfg.Layout.RowsDesktop != 6 {
		t.Errorf("links/rows = %v/%d", cfg.Links, cfg.Layout.RowsDesktop)
	}
	// Unset fields keep their defaults.
	if cfg.Layout.RowsMobile != 4 || cfg.Layout.Breakpoint != 860 || cfg.TickRate != 10 {
		t.Errorf("defaults lost: %+v tick %d", cfg.Layout, cfg.TickRate)
	}
	if cfg.Ramp.Policy != RampStaggered || cfg.Ramp.Seed != 42 {
		t.Errorf("ramp = %+v", cfg.Ramp)
	}
	if cfg.Navigation != NavigateReplace || cfg.Resize != ResizeReset || cfg.Missing != MissingExclude {
		t.Errorf("policies = %v %v %v", cfg.Navigation, cfg.Resize, cfg.Missing)
	}
	if !cfg.ShowFPS {
		t.Error("showFPS not set")
	}
}

func TestParseConfig_Errors(t *testing.T) {
	for _, data := range []string{
		`not json`,
		`{"ramp": {"policy": "sideways"}}`,
		`{"navigation": "teleport"}`,
		`{"resize": "shrink"}`,
		`{"missing": "ignore"}`,
	} {
		if _, err := ParseConfig([]byte(data)); err == nil {
			t.Errorf("ParseConfig(%s) succeeded, want error", data)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.json")
	if err := os.WriteFile(path, []byte(`{"tickRate": 30}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TickRate != 30 {
		t.Errorf("TickRate = %d, want 30", cfg.TickRate)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestImageError(t *testing.T) {
	err := error(&ImageError{Index: 3, Err: ErrInvalidAspect})
	if err.Error() != "image 3: pixelgrid: image has no positive aspect ratio" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidAspect) {
		t.Error("ImageError does not unwrap")
	}
}
