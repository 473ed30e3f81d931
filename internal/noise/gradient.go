package noise

import (
	"math"

	"github.com/MeKo-Tech/noisefield/internal/lattice"
	"github.com/MeKo-Tech/noisefield/internal/rng"
)

// gradientExtent is the largest magnitude 2D gradient noise with unit
// gradients reaches in practice.
const gradientExtent = math.Sqrt2 / 2

// Vec is a 2D vector.
type Vec struct {
	X float64
	Y float64
}

// Dot returns the dot product of v and (x, y).
func (v Vec) Dot(x, y float64) float64 { return v.X*x + v.Y*y }

// Gradient is Perlin-style gradient noise with one random unit gradient per
// lattice corner.
type Gradient struct {
	seed    int64
	s       Sampler
	corners *lattice.Cache[lattice.Key, Vec]
}

// NewGradient creates gradient noise for seed.
func NewGradient(seed int64, s Sampler) *Gradient {
	return &Gradient{seed: seed, s: s, corners: lattice.New[lattice.Key, Vec]()}
}

func (n *Gradient) Eval(x, y float64) float64 {
	u, v := n.s.at(x, y)
	x0, y0 := math.Floor(u), math.Floor(v)
	ix, iy := int(x0), int(y0)
	dx, dy := u-x0, v-y0

	n00 := n.Corner(ix, iy).Dot(dx, dy)
	n10 := n.Corner(ix+1, iy).Dot(dx-1, dy)
	n01 := n.Corner(ix, iy+1).Dot(dx, dy-1)
	n11 := n.Corner(ix+1, iy+1).Dot(dx-1, dy-1)

	fx, fy := fade(dx), fade(dy)
	raw := lerp(lerp(n00, n10, fx), lerp(n01, n11, fx), fy)
	return clamp(raw/gradientExtent, -1, 1)
}

func (n *Gradient) Range() (float64, float64) { return -1, 1 }

// Corner returns the unit gradient of lattice corner (ix, iy), creating it on
// first use.
func (n *Gradient) Corner(ix, iy int) Vec {
	return n.corners.GetOrCreate(lattice.Key{X: ix, Y: iy}, func() Vec {
		a := rng.Derive(n.seed, ix, iy).Angle()
		return Vec{X: math.Cos(a), Y: math.Sin(a)}
	})
}

// Cached reports how many lattice corners have been assigned.
func (n *Gradient) Cached() int { return n.corners.Len() }
