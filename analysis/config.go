package analysis

import (
	"fmt"
	"math"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// GrRad converts degrees to radians.
const GrRad = math.Pi / 180.0

// MaxImageDim is the largest supported image dimension along either axis.
const MaxImageDim = 4096

// Fixed-annulus window limits, in pixels.
const (
	MinWindow = 2
	MaxWindow = 512
)

// Config holds the tunable parameters of the annulus analysis pipeline.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	// DimTheta is the number of angular steps covering 360 degrees.
	DimTheta int `yaml:"dim_theta"`

	// DimRadius is the number of logarithmic radius steps per annulus.
	DimRadius int `yaml:"dim_radius"`

	// FreqStep is the physical frequency spacing between remapped bins.
	FreqStep float64 `yaml:"freq_step"`

	// FreqMin and FreqMax bound the frequency band that contributes to the
	// summed spectrum. The extractor window extends one bin beyond each end.
	FreqMin float64 `yaml:"freq_min"`
	FreqMax float64 `yaml:"freq_max"`

	// ModeMin and ModeMax give the inclusive harmonic mode range.
	ModeMin int `yaml:"mode_min"`
	ModeMax int `yaml:"mode_max"`

	// Workers sets the size of the annulus worker pool. Zero or negative
	// means one worker per CPU.
	Workers int `yaml:"workers"`

	// Reverse grows annuli by decreasing outer radius instead of
	// increasing inner radius.
	Reverse bool `yaml:"reverse"`

	// FixedWidth, when positive, analyzes fixed-width annuli centered on
	// the current radius instead of growing ones.
	FixedWidth int `yaml:"fixed_width"`

	// ZeroPad zeroes a band of angular rows at both edges of the polar
	// plane to simulate an FFT window.
	ZeroPad bool `yaml:"zero_pad"`

	// MaskCore zeroes samples at least as bright as the image center.
	MaskCore bool `yaml:"mask_core"`

	// MaskBar estimates the bar radius from the image and zeroes all
	// samples inside it.
	MaskBar bool `yaml:"mask_bar"`

	// HighPass zeroes remapped bins within 0.25*mode of zero frequency.
	HighPass bool `yaml:"high_pass"`

	// PolarMap captures the radius-1 log-polar sampling for inspection.
	PolarMap bool `yaml:"polar_map"`
}

// DefaultConfig returns the standard analysis geometry: a 1024x2048 polar
// plane, frequency axis -50..+50 in steps of 0.25, and modes 0 through 6.
func DefaultConfig() Config {
	return Config{
		DimTheta:  1024,
		DimRadius: 2048,
		FreqStep:  0.25,
		FreqMin:   -50.0,
		FreqMax:   50.0,
		ModeMin:   0,
		ModeMax:   6,
		Workers:   runtime.NumCPU(),
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.DimTheta < 8 || c.DimTheta%2 != 0 {
		return fmt.Errorf("dim_theta must be even and at least 8, got %d", c.DimTheta)
	}
	if c.DimRadius < 8 || c.DimRadius%2 != 0 {
		return fmt.Errorf("dim_radius must be even and at least 8, got %d", c.DimRadius)
	}
	if c.FreqStep <= 0 {
		return fmt.Errorf("freq_step must be positive, got %g", c.FreqStep)
	}
	if c.FreqMin >= 0 || c.FreqMax <= 0 {
		return fmt.Errorf("frequency band [%g, %g] must straddle zero", c.FreqMin, c.FreqMax)
	}
	if c.ModeMin < 0 || c.ModeMax < c.ModeMin {
		return fmt.Errorf("invalid mode range [%d, %d]", c.ModeMin, c.ModeMax)
	}
	if c.Reverse && c.FixedWidth > 0 {
		return fmt.Errorf("reverse and fixed_width cannot be combined")
	}
	if c.FixedWidth != 0 && (c.FixedWidth < MinWindow || c.FixedWidth > MaxWindow) {
		return fmt.Errorf("fixed_width must be between %d and %d, got %d", MinWindow, MaxWindow, c.FixedWidth)
	}
	if c.ModeMax >= c.DimTheta {
		return fmt.Errorf("mode_max %d exceeds the %d angular rows available", c.ModeMax, c.DimTheta)
	}

	g := newGeometry(*c)
	if g.windowLo < 1 || g.windowHi > c.DimRadius+1 {
		return fmt.Errorf("frequency band [%g, %g] exceeds the %d-bin axis",
			c.FreqMin, c.FreqMax, c.DimRadius+1)
	}
	return nil
}

func (c *Config) workerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// geometry holds the derived quantities shared by the sampler, remapper and
// extractor. Everything here is fixed once an Analyzer is built.
type geometry struct {
	dimTheta  int
	dimRadius int

	thetaStep float64 // degrees per angular step
	radStep   float64 // natural-log radius per radial step

	freqStep float64
	freqMin  float64
	freqMax  float64

	// midIndex is the 1-based slot holding zero frequency after remap.
	// windowLo..windowHi is the extractor scan window; it extends one bin
	// beyond the configured frequency band at each end, replacing the
	// inherited hard-coded 824/1226 bounds.
	midIndex int
	windowLo int
	windowHi int

	// sumBins is the length of the per-mode summed spectrum.
	sumBins int
}

func newGeometry(cfg Config) geometry {
	g := geometry{
		dimTheta:  cfg.DimTheta,
		dimRadius: cfg.DimRadius,
		thetaStep: 360.0 / float64(cfg.DimTheta),
		radStep:   2.0 * math.Pi / cfg.FreqStep / float64(cfg.DimRadius),
		freqStep:  cfg.FreqStep,
		freqMin:   cfg.FreqMin,
		freqMax:   cfg.FreqMax,
	}
	g.midIndex = cfg.DimRadius/2 + 1
	g.windowLo = g.binIndex(cfg.FreqMin) - 1
	g.windowHi = g.binIndex(cfg.FreqMax) + 1
	g.sumBins = int((math.Abs(cfg.FreqMin)+math.Abs(cfg.FreqMax))/cfg.FreqStep) + 1
	return g
}

// freqAt returns the physical frequency of 1-based remapped slot j.
func (g geometry) freqAt(j int) float64 {
	return -g.freqStep*float64(g.dimRadius)/2.0 + float64(j-1)*g.freqStep
}

// binIndex returns the 1-based remapped slot whose frequency is f.
func (g geometry) binIndex(f float64) int {
	return int(math.Round((f+g.freqStep*float64(g.dimRadius)/2.0)/g.freqStep)) + 1
}

// signalLen is the flattened length of one annulus signal.
func (g geometry) signalLen() int {
	return g.dimTheta * g.dimRadius
}
