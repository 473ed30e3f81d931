package warp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/noisefield/internal/fractal"
	"github.com/MeKo-Tech/noisefield/internal/noise"
)

func TestWarp_ZeroMultipliersIsIdentity(t *testing.T) {
	for _, kind := range fractal.Kinds {
		t.Run(kind, func(t *testing.T) {
			fcfg := fractal.Config{Fractal: kind, Seed: 31, GetNoise: true}
			w, err := New(200, 200, Config{Fractal: fcfg})
			require.NoError(t, err)
			plain, err := fractal.New(200, 200, fcfg)
			require.NoError(t, err)

			for _, pt := range [][2]float64{{0, 0}, {10.5, 99.25}, {150, 3}} {
				x, y := w.Displace(pt[0], pt[1])
				assert.Equal(t, pt[0], x)
				assert.Equal(t, pt[1], y)
				assert.Equal(t, plain.Evaluate(pt[0], pt[1]), w.Evaluate(pt[0], pt[1]))
			}
		})
	}
}

func TestWarp_DisplacesCoordinates(t *testing.T) {
	w, err := New(200, 200, Config{
		Fractal:     fractal.Config{Seed: 31, GetNoise: true},
		QMultiplier: 40,
		RMultiplier: 40,
	})
	require.NoError(t, err)

	moved := 0
	for i := 0; i < 20; i++ {
		x, y := float64(i)*9.3+0.5, float64(i)*4.1+0.5
		dx, dy := w.Displace(x, y)
		if dx != x || dy != y {
			moved++
		}
	}
	assert.Greater(t, moved, 15)
}

func TestWarp_Deterministic(t *testing.T) {
	cfg := Config{Fractal: fractal.Config{Seed: 3, GetNoise: true}, QMultiplier: 4, RMultiplier: 4}
	a, err := New(128, 128, cfg)
	require.NoError(t, err)
	b, err := New(128, 128, cfg)
	require.NoError(t, err)

	for _, pt := range [][2]float64{{1, 2}, {64, 64}, {100.5, 7.25}} {
		first := a.Evaluate(pt[0], pt[1])
		assert.Equal(t, first, a.Evaluate(pt[0], pt[1]))
		assert.Equal(t, first, b.Evaluate(pt[0], pt[1]))
		assert.Equal(t, first, a.Height(pt[0], pt[1]))
	}
}

func TestWarp_OutputFollowsExtent(t *testing.T) {
	w, err := New(128, 128, Config{Fractal: fractal.Config{Seed: 3}, QMultiplier: 4, RMultiplier: 4})
	require.NoError(t, err)

	for y := 0.0; y < 128; y += 16 {
		for x := 0.0; x < 128; x += 16 {
			v := w.Evaluate(x, y)
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 255.0)
			p := w.Pixel(x, y)
			require.Equal(t, p.R, p.G)
		}
	}
	assert.Equal(t, w.Fractal().Extent(), w.Extent())
}

func TestWarp_InvalidFractal(t *testing.T) {
	_, err := New(128, 128, Config{Fractal: fractal.Config{NoiseGen: "cubic"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, noise.ErrConfig))
}
