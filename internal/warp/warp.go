// Package warp displaces the input coordinates of a fractal field by two
// levels of samples of the same field.
package warp

import (
	"fmt"
	"image/color"

	"github.com/MeKo-Tech/noisefield/internal/field"
	"github.com/MeKo-Tech/noisefield/internal/fractal"
)

// Config wraps a fractal configuration with the warp strengths.
type Config struct {
	Fractal     fractal.Config `mapstructure:"fractal" yaml:"fractal"`
	QMultiplier float64        `mapstructure:"qMultiplier" yaml:"qMultiplier"`
	RMultiplier float64        `mapstructure:"rMultiplier" yaml:"rMultiplier"`
}

// Warp is a two-stage domain warp over one compositor.
//
// The second first-level sample, at (x+5.2, y+1.3), is evaluated but never
// used. It still widens the compositor's running extent, which affects
// normalized output, so it is kept.
type Warp struct {
	fractal *fractal.Compositor
	qm      float64
	rm      float64
}

// New builds the wrapped compositor. Zero multipliers are valid and turn the
// warp into the identity.
func New(width, height int, cfg Config) (*Warp, error) {
	f, err := fractal.New(width, height, cfg.Fractal)
	if err != nil {
		return nil, fmt.Errorf("failed to build warp fractal: %w", err)
	}
	return &Warp{fractal: f, qm: cfg.QMultiplier, rm: cfg.RMultiplier}, nil
}

// Fractal returns the wrapped compositor.
func (w *Warp) Fractal() *fractal.Compositor { return w.fractal }

// Displace returns the coordinate the final sample for (x, y) is taken at.
func (w *Warp) Displace(x, y float64) (float64, float64) {
	q0 := w.fractal.Height(x, y)
	_ = w.fractal.Height(x+5.2, y+1.3)

	qx := x + w.qm*q0
	qy := y + w.qm*q0
	r0 := w.fractal.Height(qx+1.7, qy+9.2)
	r1 := w.fractal.Height(qx+8.3, qy+2.8)

	return x + w.rm*r0, y + w.rm*r1
}

// Height returns the raw warped height.
func (w *Warp) Height(x, y float64) float64 {
	return w.fractal.Height(w.Displace(x, y))
}

// Evaluate returns the warped value in the compositor's output mode.
func (w *Warp) Evaluate(x, y float64) float64 {
	return w.fractal.Evaluate(w.Displace(x, y))
}

// Pixel returns the warped display color.
func (w *Warp) Pixel(x, y float64) color.RGBA {
	return w.fractal.Pixel(w.Displace(x, y))
}

func (w *Warp) Shade(h float64, e field.Extent) color.RGBA {
	return w.fractal.Shade(h, e)
}

// Extent returns the compositor's running extent.
func (w *Warp) Extent() field.Extent { return w.fractal.Extent() }
