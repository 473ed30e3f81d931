// Package noise implements the single-octave noise kernels: value, gradient
// (Perlin), simplex, white and cellular (Worley) noise, plus two kernels
// backed by third-party generators.
//
// Kernels take pixel coordinates. Lattice kernels sample lattice space at
// u = x/width*scale, v = y/height*scale; Worley noise works in pixel space.
package noise

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Kernel variants.
const (
	VariantValue       = "value"
	VariantPerlin      = "perlin"
	VariantSimplex     = "simplex"
	VariantWhite       = "white"
	VariantWorley      = "worley"
	VariantOpenSimplex = "opensimplex"
	VariantClassic     = "classic"
)

// Variants lists every accepted kernel variant.
var Variants = []string{
	VariantValue,
	VariantPerlin,
	VariantSimplex,
	VariantWhite,
	VariantWorley,
	VariantOpenSimplex,
	VariantClassic,
}

// DefaultScale is the number of lattice cells spanned by the field width.
const DefaultScale = 4.0

// Kernel is a single-octave noise field.
type Kernel interface {
	// Eval returns the noise value at pixel coordinate (x, y).
	Eval(x, y float64) float64
	// Range returns the bounds of every value Eval can produce.
	Range() (lo, hi float64)
}

// Config selects and parameterizes a kernel.
type Config struct {
	Variant string       `mapstructure:"variant" yaml:"variant"`
	Seed    int64        `mapstructure:"seed" yaml:"seed"`
	Scale   float64      `mapstructure:"scale" yaml:"scale"`
	Worley  WorleyConfig `mapstructure:"worley" yaml:"worley"`
}

// WithDefaults fills unset fields. width is the field width used for the
// default number of Worley feature points.
func (c Config) WithDefaults(width int) Config {
	if c.Variant == "" {
		c.Variant = VariantPerlin
	}
	if c.Scale == 0 {
		c.Scale = DefaultScale
	}
	c.Worley = c.Worley.WithDefaults(width)
	return c
}

// Validate checks every enumerated option and numeric domain.
func (c Config) Validate() error {
	if err := CheckOption("variant", c.Variant, Variants); err != nil {
		return err
	}
	if c.Scale <= 0 || math.IsNaN(c.Scale) || math.IsInf(c.Scale, 0) {
		return &DomainError{Field: "scale", Reason: fmt.Sprintf("must be positive and finite, got %v", c.Scale)}
	}
	return c.Worley.Validate()
}

// Build constructs the kernel described by cfg for a width x height field.
func Build(width, height int, cfg Config) (Kernel, error) {
	if err := CheckSize(width, height); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults(width)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := newSampler(width, height, cfg.Scale)
	switch cfg.Variant {
	case VariantValue:
		return NewValue(cfg.Seed, s), nil
	case VariantPerlin:
		return NewGradient(cfg.Seed, s), nil
	case VariantSimplex:
		return NewSimplex(cfg.Seed, s), nil
	case VariantWhite:
		return NewWhite(cfg.Seed), nil
	case VariantWorley:
		return NewWorley(width, height, cfg.Seed, cfg.Worley)
	case VariantOpenSimplex:
		return &openSimplex{gen: opensimplex.New(cfg.Seed), s: s}, nil
	case VariantClassic:
		return &classic{gen: perlin.NewPerlin(2.0, 2.0, 3, cfg.Seed), s: s}, nil
	}
	// Validate has already rejected anything else.
	return nil, CheckOption("variant", cfg.Variant, Variants)
}

// Sampler converts pixel coordinates into lattice coordinates.
type Sampler struct {
	sx float64
	sy float64
}

func newSampler(width, height int, scale float64) Sampler {
	return Sampler{sx: scale / float64(width), sy: scale / float64(height)}
}

// IdentitySampler maps pixel coordinates onto lattice coordinates unchanged.
func IdentitySampler() Sampler { return Sampler{sx: 1, sy: 1} }

func (s Sampler) at(x, y float64) (float64, float64) {
	return x * s.sx, y * s.sy
}

// fade is the quintic smoothing curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type openSimplex struct {
	gen opensimplex.Noise
	s   Sampler
}

func (n *openSimplex) Eval(x, y float64) float64 {
	u, v := n.s.at(x, y)
	return clamp(n.gen.Eval2(u, v), -1, 1)
}

func (n *openSimplex) Range() (float64, float64) { return -1, 1 }

type classic struct {
	gen *perlin.Perlin
	s   Sampler
}

func (n *classic) Eval(x, y float64) float64 {
	u, v := n.s.at(x, y)
	return clamp(n.gen.Noise2D(u, v), -1, 1)
}

func (n *classic) Range() (float64, float64) { return -1, 1 }
