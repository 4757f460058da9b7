package infigrid

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Config describes a grid. Layout fields are required; behavioural constants
// left at zero are filled from DefaultConfig by NewGrid. Collaborators
// (Content, Proximity, Events) are set in code and never read from files.
type Config struct {
	ViewportWidth  float64 `toml:"viewport_width"`
	ViewportHeight float64 `toml:"viewport_height"`

	VisibleRows    int `toml:"visible_rows"`
	VisibleColumns int `toml:"visible_columns"`
	BufferRows     int `toml:"buffer_rows"`
	BufferColumns  int `toml:"buffer_columns"`

	Spacing Vec2    `toml:"spacing"`
	Padding Padding `toml:"padding"`

	// Gesture timing and radii.
	HoldDuration       float64 `toml:"hold_duration"`
	HoldCancelVelocity float64 `toml:"hold_cancel_velocity"`
	SwapRadius         float64 `toml:"swap_radius"`
	SwapDuration       float64 `toml:"swap_duration"`
	SnapBackDuration   float64 `toml:"snap_back_duration"`
	DragScale          float64 `toml:"drag_scale"`
	DragScaleDuration  float64 `toml:"drag_scale_duration"`
	AxisDeadZone       float64 `toml:"axis_dead_zone"`
	DragDeadZone       float64 `toml:"drag_dead_zone"`

	// Snap band: a snap starts once the surface speed decays strictly
	// between SnapMinVelocity and SnapMaxVelocity.
	SnapMinVelocity float64 `toml:"snap_min_velocity"`
	SnapMaxVelocity float64 `toml:"snap_max_velocity"`
	SnapDuration    float64 `toml:"snap_duration"`

	// DecelerationRate is the fraction of velocity kept after one second of
	// inertial scrolling.
	DecelerationRate float64 `toml:"deceleration_rate"`

	CollapseDuration float64 `toml:"collapse_duration"`
	ExpandScale      float64 `toml:"expand_scale"`
	ExpandGap        float64 `toml:"expand_gap"`

	// ImageDir, when set, is loaded into an ImagePool by the example program.
	ImageDir string `toml:"image_dir"`
	Debug    bool   `toml:"debug"`

	Content   ContentSource  `toml:"-"`
	Proximity ProximityQuery `toml:"-"`
	Events    EventSink      `toml:"-"`
	LogOutput io.Writer      `toml:"-"`
}

// DefaultConfig returns a 3x3 visible grid with one buffer line on every side
// and the stock gesture constants. Content must still be supplied.
func DefaultConfig() Config {
	return Config{
		ViewportWidth:      600,
		ViewportHeight:     600,
		VisibleRows:        3,
		VisibleColumns:     3,
		BufferRows:         1,
		BufferColumns:      1,
		HoldDuration:       1.0,
		HoldCancelVelocity: 2.0,
		SwapRadius:         100,
		SwapDuration:       0.2,
		SnapBackDuration:   0.2,
		DragScale:          1.05,
		DragScaleDuration:  0.15,
		AxisDeadZone:       10,
		DragDeadZone:       4,
		SnapMinVelocity:    1,
		SnapMaxVelocity:    250,
		SnapDuration:       0.2,
		DecelerationRate:   0.135,
		CollapseDuration:   0.1,
		ExpandScale:        2.1,
		ExpandGap:          10,
	}
}

// withDefaults fills zero behavioural fields. Layout fields are left alone so
// Validate can report them.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&c.HoldDuration, d.HoldDuration)
	fill(&c.HoldCancelVelocity, d.HoldCancelVelocity)
	fill(&c.SwapRadius, d.SwapRadius)
	fill(&c.SwapDuration, d.SwapDuration)
	fill(&c.SnapBackDuration, d.SnapBackDuration)
	fill(&c.DragScale, d.DragScale)
	fill(&c.DragScaleDuration, d.DragScaleDuration)
	fill(&c.AxisDeadZone, d.AxisDeadZone)
	fill(&c.DragDeadZone, d.DragDeadZone)
	fill(&c.SnapMinVelocity, d.SnapMinVelocity)
	fill(&c.SnapMaxVelocity, d.SnapMaxVelocity)
	fill(&c.SnapDuration, d.SnapDuration)
	fill(&c.DecelerationRate, d.DecelerationRate)
	fill(&c.CollapseDuration, d.CollapseDuration)
	fill(&c.ExpandScale, d.ExpandScale)
	fill(&c.ExpandGap, d.ExpandGap)
	if c.LogOutput == nil {
		c.LogOutput = os.Stderr
	}
	return c
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error
	if c.Content == nil {
		errs = append(errs, errors.New("content source is required"))
	}
	if c.VisibleRows < 1 || c.VisibleColumns < 1 {
		errs = append(errs, fmt.Errorf("visible rows and columns must be at least 1, got %dx%d",
			c.VisibleColumns, c.VisibleRows))
	}
	if c.BufferRows < 0 || c.BufferColumns < 0 {
		errs = append(errs, fmt.Errorf("buffer rows and columns must not be negative, got %dx%d",
			c.BufferColumns, c.BufferRows))
	}
	if c.Spacing.X < 0 || c.Spacing.Y < 0 {
		errs = append(errs, fmt.Errorf("spacing must not be negative, got %v", c.Spacing))
	}
	if c.Padding.Left < 0 || c.Padding.Right < 0 || c.Padding.Top < 0 || c.Padding.Bottom < 0 {
		errs = append(errs, fmt.Errorf("padding must not be negative, got %+v", c.Padding))
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"hold_duration", c.HoldDuration},
		{"swap_radius", c.SwapRadius},
		{"swap_duration", c.SwapDuration},
		{"snap_back_duration", c.SnapBackDuration},
		{"snap_duration", c.SnapDuration},
		{"collapse_duration", c.CollapseDuration},
		{"drag_scale_duration", c.DragScaleDuration},
	}
	for _, p := range positive {
		if p.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", p.name, p.v))
		}
	}
	if c.SnapMinVelocity >= c.SnapMaxVelocity {
		errs = append(errs, fmt.Errorf("snap velocity band is empty: min %g >= max %g",
			c.SnapMinVelocity, c.SnapMaxVelocity))
	}
	if c.DecelerationRate < 0 || c.DecelerationRate >= 1 {
		errs = append(errs, fmt.Errorf("deceleration_rate must be in [0, 1), got %g", c.DecelerationRate))
	}
	return errors.Join(errs...)
}

// DecodeConfig parses TOML data on top of DefaultConfig.
func DecodeConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
