package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReferenceSimplex(t *testing.T) Kernel {
	t.Helper()
	k, err := Build(250, 250, Config{Variant: VariantSimplex, Seed: 1338, Scale: 8})
	require.NoError(t, err)
	return k
}

func TestSimplex_Golden(t *testing.T) {
	k := newReferenceSimplex(t)

	tests := []struct {
		x, y float64
		want float64
	}{
		{0, 0, 0},
		{125, 125, -0.08314495355018026},
		{60, 37, -0.2402358238313343},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, k.Eval(tt.x, tt.y), 1e-9, "(%v,%v)", tt.x, tt.y)
	}
}

func TestSimplex_CenterDiffersFromOrigin(t *testing.T) {
	k := newReferenceSimplex(t)
	assert.Greater(t, math.Abs(k.Eval(125, 125)-k.Eval(0, 0)), 0.01)
}

func TestSimplex_DeterministicAndCached(t *testing.T) {
	n := NewSimplex(1338, IdentitySampler())
	first := n.Eval(3.7, 1.2)
	cached := n.Cached()
	require.GreaterOrEqual(t, cached, 1)
	require.LessOrEqual(t, cached, 3)

	assert.Equal(t, first, n.Eval(3.7, 1.2))
	assert.Equal(t, cached, n.Cached())
}

func TestSimplex_SeedChangesField(t *testing.T) {
	a := NewSimplex(1, IdentitySampler())
	b := NewSimplex(2, IdentitySampler())
	diff := 0
	for i := 0; i < 50; i++ {
		x := float64(i)*0.37 + 0.1
		if a.Eval(x, x*0.5) != b.Eval(x, x*0.5) {
			diff++
		}
	}
	assert.Greater(t, diff, 25)
}

func TestWrap256(t *testing.T) {
	assert.Equal(t, 58, wrap256(1338))
	assert.Equal(t, 255, wrap256(-1))
	assert.Equal(t, 0, wrap256(256))
}
