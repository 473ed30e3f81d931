// Package field defines the boundary contract between the noise engine and
// its consumers: scalar and pixel field functions, extents and channel ranges.
package field

import (
	"image/color"
	"math"
)

// Func evaluates a scalar field at (x, y).
type Func func(x, y float64) float64

// PixelFunc evaluates a colored field at (x, y).
type PixelFunc func(x, y float64) color.RGBA

// Source is a field that can be sampled raw, in its configured output mode or
// as a pixel. Shade maps a raw height to a pixel against a fixed extent
// without touching any state.
type Source interface {
	Evaluate(x, y float64) float64
	Height(x, y float64) float64
	Pixel(x, y float64) color.RGBA
	Shade(h float64, e Extent) color.RGBA
}

// AsFunc returns the scalar contract of src.
func AsFunc(src Source) Func { return src.Evaluate }

// AsPixelFunc returns the pixel contract of src.
func AsPixelFunc(src Source) PixelFunc { return src.Pixel }

// Extent is an observed or theoretical value range.
type Extent struct {
	Min float64
	Max float64
}

// Widen returns e grown to include h.
func (e Extent) Widen(h float64) Extent {
	if h < e.Min {
		e.Min = h
	}
	if h > e.Max {
		e.Max = h
	}
	return e
}

// Contains reports whether h lies within e.
func (e Extent) Contains(h float64) bool {
	return h >= e.Min && h <= e.Max
}

// Normalize maps h from e onto [0,1], clamping values outside e. A collapsed
// extent maps everything to 0.
func (e Extent) Normalize(h float64) float64 {
	span := e.Max - e.Min
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 0
	}
	t := (h - e.Min) / span
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Channel is an output range for one color channel.
type Channel struct {
	Lo float64 `mapstructure:"lo" yaml:"lo"`
	Hi float64 `mapstructure:"hi" yaml:"hi"`
}

// At maps t in [0,1] onto the channel range.
func (c Channel) At(t float64) uint8 {
	v := c.Lo + (c.Hi-c.Lo)*t
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

// Palette holds per-channel ranges for colored output.
type Palette struct {
	R Channel `mapstructure:"r" yaml:"r"`
	G Channel `mapstructure:"g" yaml:"g"`
	B Channel `mapstructure:"b" yaml:"b"`
}

// GrayLevels is the grayscale display range.
var GrayLevels = Channel{Lo: 0, Hi: 255}

// DefaultPalette is used by colored fields that do not set their own ranges.
var DefaultPalette = Palette{
	R: Channel{Lo: 20, Hi: 235},
	G: Channel{Lo: 60, Hi: 215},
	B: Channel{Lo: 110, Hi: 250},
}

// IsZero reports whether no channel range has been set.
func (p Palette) IsZero() bool { return p == Palette{} }

// At maps t in [0,1] onto an opaque color.
func (p Palette) At(t float64) color.RGBA {
	return color.RGBA{R: p.R.At(t), G: p.G.At(t), B: p.B.At(t), A: 255}
}

// Gray maps t in [0,1] onto an opaque gray.
func Gray(t float64) color.RGBA {
	l := GrayLevels.At(t)
	return color.RGBA{R: l, G: l, B: l, A: 255}
}
