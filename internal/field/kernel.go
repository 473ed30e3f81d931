package field

import "image/color"

// Kernel is a scalar field with known bounds.
type Kernel interface {
	Eval(x, y float64) float64
	Range() (lo, hi float64)
}

// KernelSource adapts a kernel to Source. Its extent is the kernel's fixed
// range, so every output mode is a pure function of the coordinate.
type KernelSource struct {
	kernel   Kernel
	extent   Extent
	getNoise bool
}

// FromKernel wraps k. When getNoise is set Evaluate returns raw kernel
// values, otherwise gray levels in [0,255].
func FromKernel(k Kernel, getNoise bool) *KernelSource {
	lo, hi := k.Range()
	return &KernelSource{kernel: k, extent: Extent{Min: lo, Max: hi}, getNoise: getNoise}
}

func (s *KernelSource) Height(x, y float64) float64 { return s.kernel.Eval(x, y) }

func (s *KernelSource) Evaluate(x, y float64) float64 {
	h := s.kernel.Eval(x, y)
	if s.getNoise {
		return h
	}
	return float64(GrayLevels.At(s.extent.Normalize(h)))
}

func (s *KernelSource) Pixel(x, y float64) color.RGBA {
	return s.Shade(s.kernel.Eval(x, y), s.extent)
}

func (s *KernelSource) Shade(h float64, e Extent) color.RGBA {
	return Gray(e.Normalize(h))
}

// Extent returns the kernel's fixed range.
func (s *KernelSource) Extent() Extent { return s.extent }
