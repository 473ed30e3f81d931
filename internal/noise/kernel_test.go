package noise

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_AllVariants(t *testing.T) {
	for _, variant := range Variants {
		t.Run(variant, func(t *testing.T) {
			k, err := Build(64, 64, Config{Variant: variant, Seed: 7})
			require.NoError(t, err)

			lo, hi := k.Range()
			for y := 0.0; y < 64; y += 3.7 {
				for x := 0.0; x < 64; x += 3.7 {
					v := k.Eval(x, y)
					require.False(t, math.IsNaN(v), "NaN at (%v,%v)", x, y)
					assert.GreaterOrEqual(t, v, lo)
					assert.LessOrEqual(t, v, hi)
				}
			}
		})
	}
}

func TestBuild_DeterministicVariants(t *testing.T) {
	for _, variant := range []string{VariantValue, VariantPerlin, VariantSimplex, VariantWorley, VariantOpenSimplex, VariantClassic} {
		t.Run(variant, func(t *testing.T) {
			a, err := Build(100, 100, Config{Variant: variant, Seed: 99})
			require.NoError(t, err)
			b, err := Build(100, 100, Config{Variant: variant, Seed: 99})
			require.NoError(t, err)

			for _, pt := range [][2]float64{{0, 0}, {13.5, 71.25}, {99, 1}, {-20, 340}} {
				first := a.Eval(pt[0], pt[1])
				assert.Equal(t, first, a.Eval(pt[0], pt[1]), "repeat on same instance")
				assert.Equal(t, first, b.Eval(pt[0], pt[1]), "separate instance")
			}
		})
	}
}

func TestBuild_SpatialVariation(t *testing.T) {
	for _, variant := range []string{VariantValue, VariantPerlin, VariantSimplex, VariantWorley} {
		t.Run(variant, func(t *testing.T) {
			k, err := Build(128, 128, Config{Variant: variant, Seed: 3})
			require.NoError(t, err)

			seen := map[float64]bool{}
			for y := 0.0; y < 128; y += 9 {
				for x := 0.0; x < 128; x += 9 {
					seen[k.Eval(x, y)] = true
				}
			}
			assert.Greater(t, len(seen), 10)
		})
	}
}

func TestBuild_ConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"variant", Config{Variant: "voronoi"}, "variant"},
		{"distance", Config{Variant: VariantWorley, Worley: WorleyConfig{Distance: "minkowski"}}, "distance"},
		{"type", Config{Variant: VariantWorley, Worley: WorleyConfig{Type: "f3"}}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(32, 32, tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfig))

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.NotEmpty(t, cfgErr.Accepted)
			assert.Contains(t, err.Error(), cfgErr.Value)
		})
	}
}

func TestBuild_DomainErrors(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		cfg           Config
	}{
		{"zero width", 0, 10, Config{}},
		{"zero height", 10, 0, Config{}},
		{"negative scale", 10, 10, Config{Scale: -1}},
		{"negative points", 10, 10, Config{Variant: VariantWorley, Worley: WorleyConfig{NumberOfPoints: -4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.width, tt.height, tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDomain))
			assert.False(t, errors.Is(err, ErrConfig))
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	err := CheckOption("fractal", "fbn", []string{"fbm", "turbulence"})
	require.Error(t, err)
	assert.Equal(t, `invalid fractal "fbn": must be one of "fbm", "turbulence"`, err.Error())
	assert.NoError(t, CheckOption("fractal", "fbm", []string{"fbm", "turbulence"}))
}

func TestFade(t *testing.T) {
	assert.Equal(t, 0.0, fade(0))
	assert.Equal(t, 1.0, fade(1))
	assert.InDelta(t, 0.5, fade(0.5), 1e-12)
}

func TestWhite_NoCoherence(t *testing.T) {
	k, err := Build(10, 10, Config{Variant: VariantWhite, Seed: 1})
	require.NoError(t, err)

	// Same coordinate, fresh value every call.
	assert.NotEqual(t, k.Eval(1, 1), k.Eval(1, 1))

	a := NewWhite(5)
	b := NewWhite(5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Eval(0, 0), b.Eval(float64(i), 3))
	}
}
