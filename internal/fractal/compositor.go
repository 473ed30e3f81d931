// Package fractal combines octaves of noise kernels into fbm, turbulence and
// ridged multifractal fields.
//
// A Compositor tracks a running extent of every height it has produced and
// normalizes display output against it. Normalized output therefore depends
// on evaluation history: two traversal orders of the same image can shade a
// coordinate near the edge of the observed range differently. Raw heights
// (Height, or Evaluate with GetNoise) do not have this property.
package fractal

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/MeKo-Tech/noisefield/internal/field"
	"github.com/MeKo-Tech/noisefield/internal/noise"
)

// Fractal kinds.
const (
	KindFBM        = "fbm"
	KindTurbulence = "turbulence"
	KindRidged     = "ridged"
)

// Kinds lists the accepted fractal kinds.
var Kinds = []string{KindFBM, KindTurbulence, KindRidged}

// NoiseGens lists the kernels a compositor can stack.
var NoiseGens = []string{noise.VariantPerlin, noise.VariantWorley, noise.VariantWhite}

// worleyClarity lifts the ridged upper bound for Worley octaves, whose values
// never go negative.
const worleyClarity = 0.5

// Config describes a fractal field.
type Config struct {
	Fractal          string             `mapstructure:"fractal" yaml:"fractal"`
	NoiseGen         string             `mapstructure:"noiseGen" yaml:"noiseGen"`
	Seed             int64              `mapstructure:"seed" yaml:"seed"`
	Scale            float64            `mapstructure:"scale" yaml:"scale"`
	Octaves          int                `mapstructure:"octaves" yaml:"octaves"`
	Persistence      float64            `mapstructure:"persistence" yaml:"persistence"`
	Lacunarity       float64            `mapstructure:"lacunarity" yaml:"lacunarity"`
	InitialAmplitude float64            `mapstructure:"initialAmplitude" yaml:"initialAmplitude"`
	InitialFrequency float64            `mapstructure:"initialFrequency" yaml:"initialFrequency"`
	Colored          bool               `mapstructure:"colored" yaml:"colored"`
	GetNoise         bool               `mapstructure:"getNoise" yaml:"getNoise"`
	Worley           noise.WorleyConfig `mapstructure:"worley" yaml:"worley"`
	Palette          field.Palette      `mapstructure:"palette" yaml:"palette"`
}

// WithDefaults fills unset fields.
func (c Config) WithDefaults() Config {
	if c.Fractal == "" {
		c.Fractal = KindFBM
	}
	if c.NoiseGen == "" {
		c.NoiseGen = noise.VariantPerlin
	}
	if c.Scale == 0 {
		c.Scale = noise.DefaultScale
	}
	if c.Octaves == 0 {
		c.Octaves = 6
	}
	if c.Persistence == 0 {
		c.Persistence = 0.5
	}
	if c.Lacunarity == 0 {
		c.Lacunarity = 2
	}
	if c.InitialAmplitude == 0 {
		c.InitialAmplitude = 1
	}
	if c.InitialFrequency == 0 {
		c.InitialFrequency = 1
	}
	if c.Palette.IsZero() {
		c.Palette = field.DefaultPalette
	}
	return c
}

// Validate checks the enumerated options and the octave count.
func (c Config) Validate() error {
	if err := noise.CheckOption("fractal", c.Fractal, Kinds); err != nil {
		return err
	}
	if err := noise.CheckOption("noiseGen", c.NoiseGen, NoiseGens); err != nil {
		return err
	}
	if c.Octaves < 1 {
		return &noise.DomainError{Field: "octaves", Reason: fmt.Sprintf("must be at least 1, got %d", c.Octaves)}
	}
	return nil
}

// Theoretical returns the analytic bounds a compositor's extent starts from.
func (c Config) Theoretical() field.Extent {
	switch c.Fractal {
	case KindTurbulence:
		return field.Extent{Min: 0, Max: 1}
	case KindRidged:
		e := field.Extent{Min: -1, Max: -0.5}
		if c.NoiseGen == noise.VariantWorley {
			e.Max += worleyClarity
		}
		return e
	}
	return field.Extent{Min: -1, Max: 1}
}

type octave struct {
	kernel    noise.Kernel
	amplitude float64
	frequency float64
}

// Compositor sums octaves of one kernel type.
type Compositor struct {
	cfg         Config
	octaves     []octave
	initial     float64
	transform   func(v, amp float64) float64
	theoretical field.Extent

	mu     sync.Mutex
	extent field.Extent
}

// New builds the octave kernels for a width x height field.
func New(width, height int, cfg Config) (*Compositor, error) {
	if err := noise.CheckSize(width, height); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Compositor{cfg: cfg, theoretical: cfg.Theoretical()}
	switch cfg.Fractal {
	case KindFBM:
		c.transform = func(v, amp float64) float64 { return v * amp }
	case KindTurbulence:
		c.transform = func(v, amp float64) float64 { return math.Abs(v) * amp }
	case KindRidged:
		c.initial = -1
		c.transform = func(v, amp float64) float64 {
			r := 1 - math.Abs(v)
			return r * r * amp
		}
	}

	amplitude := cfg.InitialAmplitude
	frequency := cfg.InitialFrequency
	for i := 0; i < cfg.Octaves; i++ {
		seed := cfg.Seed
		// Perlin octaves already differ by frequency; the point-based and
		// stream-based kernels need their own seed per octave.
		if cfg.NoiseGen != noise.VariantPerlin {
			seed += int64(i)
		}
		k, err := noise.Build(width, height, noise.Config{
			Variant: cfg.NoiseGen,
			Seed:    seed,
			Scale:   cfg.Scale,
			Worley:  cfg.Worley,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build octave %d: %w", i, err)
		}

		amplitude *= cfg.Persistence
		c.octaves = append(c.octaves, octave{kernel: k, amplitude: amplitude, frequency: frequency})
		frequency *= cfg.Lacunarity
	}

	c.extent = c.theoretical
	return c, nil
}

// Config returns the effective configuration, defaults applied.
func (c *Compositor) Config() Config { return c.cfg }

// Octave returns the amplitude and frequency of octave i.
func (c *Compositor) Octave(i int) (amplitude, frequency float64) {
	return c.octaves[i].amplitude, c.octaves[i].frequency
}

func (c *Compositor) sum(x, y float64) float64 {
	h := c.initial
	for _, o := range c.octaves {
		h += c.transform(o.kernel.Eval(x*o.frequency, y*o.frequency), o.amplitude)
	}
	return h
}

// observe widens the running extent with h and returns the extent as it was
// before.
func (c *Compositor) observe(h float64) field.Extent {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.extent
	c.extent = c.extent.Widen(h)
	return prev
}

// Height returns the raw summed height at (x, y) and records it in the
// running extent.
func (c *Compositor) Height(x, y float64) float64 {
	h := c.sum(x, y)
	c.observe(h)
	return h
}

// Evaluate returns the raw height when GetNoise is set, otherwise a gray level
// in [0,255]. A height beyond the extent is clamped to the boundary on the
// call that discovers it; the widened extent applies from the next call on.
func (c *Compositor) Evaluate(x, y float64) float64 {
	h := c.sum(x, y)
	prev := c.observe(h)
	if c.cfg.GetNoise {
		return h
	}
	return float64(field.GrayLevels.At(prev.Normalize(h)))
}

// Pixel returns the display color at (x, y), normalized like Evaluate.
func (c *Compositor) Pixel(x, y float64) color.RGBA {
	h := c.sum(x, y)
	prev := c.observe(h)
	return c.Shade(h, prev)
}

// Shade maps h to a color against e without touching the running extent.
func (c *Compositor) Shade(h float64, e field.Extent) color.RGBA {
	t := e.Normalize(h)
	if c.cfg.Colored {
		return c.cfg.Palette.At(t)
	}
	return field.Gray(t)
}

// Extent returns the running extent.
func (c *Compositor) Extent() field.Extent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extent
}

// ResetExtent restores the running extent to the theoretical bounds.
func (c *Compositor) ResetExtent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extent = c.theoretical
}
