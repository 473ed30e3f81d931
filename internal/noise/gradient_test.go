package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradient_SharedCornersAreCached(t *testing.T) {
	n := NewGradient(1338, IdentitySampler())

	n.Eval(0.1, 0.1)
	require.Equal(t, 4, n.Cached())
	first := n.Corner(0, 0)

	// (0.9,0.9) lies in the same lattice cell and must reuse all four corners.
	n.Eval(0.9, 0.9)
	assert.Equal(t, 4, n.Cached())
	assert.Equal(t, first, n.Corner(0, 0))

	for _, c := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		g := n.Corner(c[0], c[1])
		assert.InDelta(t, 1.0, g.X*g.X+g.Y*g.Y, 1e-12, "gradient must be unit length")
	}
}

func TestGradient_CornerIndependentOfQueryOrder(t *testing.T) {
	a := NewGradient(42, IdentitySampler())
	b := NewGradient(42, IdentitySampler())

	a.Eval(0.5, 0.5)
	a.Eval(5.5, 7.5)
	b.Eval(5.5, 7.5)
	b.Eval(0.5, 0.5)

	assert.Equal(t, a.Corner(0, 0), b.Corner(0, 0))
	assert.Equal(t, a.Corner(6, 8), b.Corner(6, 8))
	assert.Equal(t, a.Eval(3.3, 2.2), b.Eval(3.3, 2.2))
}

func TestGradient_ZeroAtLatticePoints(t *testing.T) {
	n := NewGradient(9, IdentitySampler())
	assert.Equal(t, 0.0, n.Eval(0, 0))
	assert.Equal(t, 0.0, n.Eval(3, -2))
}

func TestValue_InterpolatesCorners(t *testing.T) {
	n := NewValue(11, IdentitySampler())

	assert.Equal(t, n.Corner(2, 3), n.Eval(2, 3))
	mid := n.Eval(2.5, 3)
	assert.InDelta(t, (n.Corner(2, 3)+n.Corner(3, 3))/2, mid, 1e-12)

	n.Eval(0.1, 0.1)
	n.Eval(0.9, 0.9)
	before := n.Corner(1, 1)
	n.Eval(0.5, 0.5)
	assert.Equal(t, before, n.Corner(1, 1))
}
