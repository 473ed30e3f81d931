package noise

import (
	"math"

	"github.com/MeKo-Tech/noisefield/internal/lattice"
)

var (
	// skewF2 skews (x, y) into simplex space.
	skewF2 = 0.5 * (math.Sqrt(3) - 1)
	// unskewG2 maps simplex corners back to (x, y) space.
	unskewG2 = (3 - math.Sqrt(3)) / 6
	// simplexNorm scales the three-corner sum into [-1,1].
	simplexNorm = 2916 * math.Sqrt2 / 125
)

// simplexGradients are eight unit vectors spaced 45 degrees apart.
var simplexGradients = [8]Vec{
	{1, 0},
	{math.Sqrt2 / 2, math.Sqrt2 / 2},
	{0, 1},
	{-math.Sqrt2 / 2, math.Sqrt2 / 2},
	{-1, 0},
	{-math.Sqrt2 / 2, -math.Sqrt2 / 2},
	{0, -1},
	{math.Sqrt2 / 2, -math.Sqrt2 / 2},
}

// permutation is Ken Perlin's reference permutation of 0..255.
var permutation = [256]uint8{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// Simplex is 2D simplex noise over a triangular lattice. The gradient index
// of each lattice corner comes from the fixed permutation table offset by the
// seed and is memoized per corner.
type Simplex struct {
	seed  int64
	s     Sampler
	grads *lattice.Cache[lattice.Key, uint8]
}

// NewSimplex creates simplex noise for seed.
func NewSimplex(seed int64, s Sampler) *Simplex {
	return &Simplex{seed: seed, s: s, grads: lattice.New[lattice.Key, uint8]()}
}

func (n *Simplex) Eval(x, y float64) float64 {
	u, v := n.s.at(x, y)

	skew := (u + v) * skewF2
	i := math.Floor(u + skew)
	j := math.Floor(v + skew)

	t := (i + j) * unskewG2
	x0 := u - (i - t)
	y0 := v - (j - t)

	// Lower triangle takes the (1,0) middle corner, upper takes (0,1).
	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + unskewG2
	y1 := y0 - float64(j1) + unskewG2
	x2 := x0 - 1 + 2*unskewG2
	y2 := y0 - 1 + 2*unskewG2

	ii, jj := int(i), int(j)
	sum := n.contribution(ii, jj, x0, y0) +
		n.contribution(ii+i1, jj+j1, x1, y1) +
		n.contribution(ii+1, jj+1, x2, y2)
	return clamp(sum*simplexNorm, -1, 1)
}

func (n *Simplex) Range() (float64, float64) { return -1, 1 }

func (n *Simplex) contribution(ci, cj int, dx, dy float64) float64 {
	t := 0.5 - dx*dx - dy*dy
	if t <= 0 {
		return 0
	}
	t *= t
	return t * t * simplexGradients[n.gradientIndex(ci, cj)].Dot(dx, dy)
}

func (n *Simplex) gradientIndex(ci, cj int) uint8 {
	return n.grads.GetOrCreate(lattice.Key{X: ci, Y: cj}, func() uint8 {
		a := wrap256(n.seed + int64(ci))
		b := wrap256(n.seed + int64(cj))
		return permutation[(a+int(permutation[b]))&255] & 7
	})
}

// Cached reports how many lattice corners have a memoized gradient.
func (n *Simplex) Cached() int { return n.grads.Len() }

func wrap256(v int64) int {
	r := v % 256
	if r < 0 {
		r += 256
	}
	return int(r)
}
