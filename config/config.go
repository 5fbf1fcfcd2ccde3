package config

import (
	"encoding/json"
	"image"
	"os"
)

// Color space identifiers accepted by ColorRange.Space.
const (
	SpaceRGB = "rgb"
	SpaceHSV = "hsv"
)

// ColorRange selects pixels whose color lies between Lower and Upper in the
// given space. For "rgb" the bounds are 8-bit channel values (0-255). For
// "hsv" the bounds are hue in degrees (0-360; Lower>Upper wraps around the
// hue circle) and saturation/value in 0-1.
type ColorRange struct {
	Space string     `json:"space"`
	Lower [3]float64 `json:"lower"`
	Upper [3]float64 `json:"upper"`
}

// Empty reports whether the range selects nothing (all bounds zero).
func (r ColorRange) Empty() bool {
	return r.Lower == [3]float64{} && r.Upper == [3]float64{}
}

// Region is the screen rectangle captured each cycle. A zero Width or
// Height means the full primary screen.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Config holds runtime configuration for the detection pipeline and overlay.
// Fields may be loaded from a JSON file and are fixed for the process
// lifetime.
type Config struct {
	Debug bool `json:"debug"`

	// Capture region (zero size = full primary screen).
	Region Region `json:"region"`

	// Target line color and optional pre-mask smoothing.
	LineRange ColorRange `json:"line_range"`
	BlurSigma float64    `json:"blur_sigma"`

	// Backdrop color probed near segment endpoints. An empty range
	// disables the endpoint contrast filter.
	BackdropRange ColorRange `json:"backdrop_range"`
	ProbeRadius   int        `json:"probe_radius"`

	// Segment shape filters.
	MinArea      int     `json:"min_area"`
	MinLength    float64 `json:"min_length"`
	MinThickness float64 `json:"min_thickness"`
	MaxThickness float64 `json:"max_thickness"`
	MinAspect    float64 `json:"min_aspect"`

	// Near-duplicate merge tolerances.
	MergeAngleDeg float64 `json:"merge_angle_deg"`
	MergeDistance float64 `json:"merge_distance"`

	// Loop timing and cancellation.
	IntervalMS int    `json:"interval_ms"`
	CancelKey  uint16 `json:"cancel_key"`

	// Overlay appearance.
	LineColor string `json:"line_color"`
	LineWidth int    `json:"line_width"`
}

// DefaultConfig returns a Config populated with standard defaults, tuned for
// a bright white line on a dark table.
func DefaultConfig() *Config {
	return &Config{
		Debug: false,
		LineRange: ColorRange{
			Space: SpaceRGB,
			Lower: [3]float64{240, 240, 240},
			Upper: [3]float64{255, 255, 255},
		},
		BackdropRange: ColorRange{
			Space: SpaceRGB,
			Lower: [3]float64{0, 0, 0},
			Upper: [3]float64{40, 40, 40},
		},
		ProbeRadius:   20,
		MinArea:       50,
		MinLength:     30,
		MinThickness:  2,
		MaxThickness:  15,
		MinAspect:     3,
		MergeAngleDeg: 5,
		MergeDistance: 12,
		IntervalMS:    1,
		CancelKey:     27, // Escape
		LineColor:     "#00FF00",
		LineWidth:     3,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.LineRange.Space == "" {
		c.LineRange.Space = SpaceRGB
	}
	if c.BackdropRange.Space == "" {
		c.BackdropRange.Space = SpaceRGB
	}
	if c.Region.Width < 0 {
		c.Region.Width = 0
	}
	if c.Region.Height < 0 {
		c.Region.Height = 0
	}
	if c.BlurSigma < 0 {
		c.BlurSigma = 0
	}
	if c.ProbeRadius <= 0 {
		c.ProbeRadius = 20
	}
	if c.MinArea <= 0 {
		c.MinArea = 50
	}
	if c.MinLength <= 0 {
		c.MinLength = 30
	}
	if c.MinThickness <= 0 {
		c.MinThickness = 2
	}
	if c.MaxThickness < c.MinThickness {
		c.MaxThickness = c.MinThickness + 13
	}
	if c.MinAspect <= 0 {
		c.MinAspect = 3
	}
	if c.MergeAngleDeg <= 0 {
		c.MergeAngleDeg = 5
	}
	if c.MergeAngleDeg > 90 {
		c.MergeAngleDeg = 90
	}
	if c.MergeDistance <= 0 {
		c.MergeDistance = 12
	}
	if c.IntervalMS <= 0 {
		c.IntervalMS = 1
	}
	if c.CancelKey == 0 {
		c.CancelKey = 27
	}
	if c.LineColor == "" {
		c.LineColor = "#00FF00"
	}
	if c.LineWidth <= 0 {
		c.LineWidth = 3
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns DefaultConfig(). On JSON error it returns
// defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
