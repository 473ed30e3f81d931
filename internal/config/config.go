// Package config describes a complete field (kernel, fractal or domain warp)
// with named, independently defaulted options, and builds it.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/noisefield/internal/field"
	"github.com/MeKo-Tech/noisefield/internal/fractal"
	"github.com/MeKo-Tech/noisefield/internal/noise"
	"github.com/MeKo-Tech/noisefield/internal/warp"
)

// Field kinds.
const (
	KindKernel  = "kernel"
	KindFractal = "fractal"
	KindWarp    = "warp"
)

// Kinds lists the accepted field kinds.
var Kinds = []string{KindKernel, KindFractal, KindWarp}

// Field is the full description of a field.
type Field struct {
	Kind   string `mapstructure:"kind" yaml:"kind"`
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
	// GetNoise applies to kernel fields; fractal fields carry their own flag.
	GetNoise bool           `mapstructure:"getNoise" yaml:"getNoise"`
	Kernel   noise.Config   `mapstructure:"kernel" yaml:"kernel"`
	Fractal  fractal.Config `mapstructure:"fractal" yaml:"fractal"`
	Warp     WarpOptions    `mapstructure:"warp" yaml:"warp"`
}

// WarpOptions are the domain warp strengths. The warped fractal is the
// Field's Fractal block.
type WarpOptions struct {
	QMultiplier float64 `mapstructure:"qMultiplier" yaml:"qMultiplier"`
	RMultiplier float64 `mapstructure:"rMultiplier" yaml:"rMultiplier"`
}

// Default returns the base configuration. Decoding a file or flags on top of
// it overrides only the keys that are set. Width-dependent options such as
// the Worley point count stay zero and are resolved against the final width
// when the field is built.
func Default() Field {
	const size = 512
	return Field{
		Kind:   KindFractal,
		Width:  size,
		Height: size,
		Kernel: noise.Config{
			Variant: noise.VariantPerlin,
			Seed:    1337,
			Scale:   noise.DefaultScale,
		},
		Fractal: fractal.Config{Seed: 1337}.WithDefaults(),
		Warp:    WarpOptions{QMultiplier: 4, RMultiplier: 4},
	}
}

// Validate checks the kind and the dimensions. Kernel, fractal and warp
// options are validated when the field is built.
func (f Field) Validate() error {
	if err := noise.CheckOption("kind", f.Kind, Kinds); err != nil {
		return err
	}
	return noise.CheckSize(f.Width, f.Height)
}

// Build constructs the field source.
func (f Field) Build() (field.Source, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	switch f.Kind {
	case KindKernel:
		k, err := noise.Build(f.Width, f.Height, f.Kernel)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s kernel: %w", f.Kernel.Variant, err)
		}
		return field.FromKernel(k, f.GetNoise), nil
	case KindFractal:
		c, err := fractal.New(f.Width, f.Height, f.Fractal)
		if err != nil {
			return nil, fmt.Errorf("failed to build fractal: %w", err)
		}
		return c, nil
	case KindWarp:
		w, err := warp.New(f.Width, f.Height, warp.Config{
			Fractal:     f.Fractal,
			QMultiplier: f.Warp.QMultiplier,
			RMultiplier: f.Warp.RMultiplier,
		})
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	return nil, noise.CheckOption("kind", f.Kind, Kinds)
}

// Load decodes a field description in the layout Marshal writes, on top of
// Default. Unknown keys are rejected.
func Load(r io.Reader) (Field, error) {
	f := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return Field{}, fmt.Errorf("failed to decode field config: %w", err)
	}
	return f, nil
}

// Marshal encodes f as YAML.
func Marshal(f Field) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode field config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadFile reads a field description written by Marshal.
func LoadFile(path string) (Field, error) {
	file, err := os.Open(path)
	if err != nil {
		return Field{}, fmt.Errorf("failed to open field file: %w", err)
	}
	defer file.Close()

	f, err := Load(file)
	if err != nil {
		return Field{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
