package noise

import (
	"math"

	"github.com/MeKo-Tech/noisefield/internal/lattice"
	"github.com/MeKo-Tech/noisefield/internal/rng"
)

// Value is lattice value noise: a random scalar per lattice corner,
// interpolated with the quintic fade curve.
type Value struct {
	seed    int64
	s       Sampler
	corners *lattice.Cache[lattice.Key, float64]
}

// NewValue creates value noise for seed.
func NewValue(seed int64, s Sampler) *Value {
	return &Value{seed: seed, s: s, corners: lattice.New[lattice.Key, float64]()}
}

func (n *Value) Eval(x, y float64) float64 {
	u, v := n.s.at(x, y)
	x0, y0 := math.Floor(u), math.Floor(v)
	ix, iy := int(x0), int(y0)
	fx, fy := fade(u-x0), fade(v-y0)

	top := lerp(n.Corner(ix, iy), n.Corner(ix+1, iy), fx)
	bottom := lerp(n.Corner(ix, iy+1), n.Corner(ix+1, iy+1), fx)
	return lerp(top, bottom, fy)
}

func (n *Value) Range() (float64, float64) { return -1, 1 }

// Corner returns the scalar assigned to lattice corner (ix, iy), creating it
// on first use.
func (n *Value) Corner(ix, iy int) float64 {
	return n.corners.GetOrCreate(lattice.Key{X: ix, Y: iy}, func() float64 {
		return rng.Derive(n.seed, ix, iy).Signed()
	})
}

// Cached reports how many lattice corners have been assigned.
func (n *Value) Cached() int { return n.corners.Len() }
