package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/noisefield/internal/field"
	"github.com/MeKo-Tech/noisefield/internal/fractal"
	"github.com/MeKo-Tech/noisefield/internal/noise"
	"github.com/MeKo-Tech/noisefield/internal/warp"
)

func TestDefault_Builds(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(kind, func(t *testing.T) {
			f := Default()
			f.Kind = kind
			f.Width, f.Height = 64, 64
			src, err := f.Build()
			require.NoError(t, err)
			require.NotNil(t, src)
		})
	}
}

func TestBuild_KindTypes(t *testing.T) {
	f := Default()
	f.Width, f.Height = 32, 32

	f.Kind = KindKernel
	src, err := f.Build()
	require.NoError(t, err)
	assert.IsType(t, &field.KernelSource{}, src)

	f.Kind = KindFractal
	src, err = f.Build()
	require.NoError(t, err)
	assert.IsType(t, &fractal.Compositor{}, src)

	f.Kind = KindWarp
	src, err = f.Build()
	require.NoError(t, err)
	assert.IsType(t, &warp.Warp{}, src)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Field)
		target error
	}{
		{"kind", func(f *Field) { f.Kind = "image" }, noise.ErrConfig},
		{"width", func(f *Field) { f.Width = 0 }, noise.ErrDomain},
		{"variant", func(f *Field) { f.Kind = KindKernel; f.Kernel.Variant = "gabor" }, noise.ErrConfig},
		{"fractal", func(f *Field) { f.Fractal.Fractal = "hybrid" }, noise.ErrConfig},
		{"warp noise gen", func(f *Field) { f.Kind = KindWarp; f.Fractal.NoiseGen = "value" }, noise.ErrConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Default()
			tt.mutate(&f)
			_, err := f.Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	src := `
kind: warp
width: 250
height: 200
fractal:
  fractal: turbulence
  noiseGen: worley
  octaves: 3
  worley:
    distance: manhattan
    type: f2 - f1
warp:
  qMultiplier: 0
`
	f, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, KindWarp, f.Kind)
	assert.Equal(t, 250, f.Width)
	assert.Equal(t, 200, f.Height)
	assert.Equal(t, fractal.KindTurbulence, f.Fractal.Fractal)
	assert.Equal(t, noise.VariantWorley, f.Fractal.NoiseGen)
	assert.Equal(t, 3, f.Fractal.Octaves)
	assert.Equal(t, noise.TypeF2MinusF1, f.Fractal.Worley.Type)
	assert.Equal(t, 0.0, f.Warp.QMultiplier)
	assert.Equal(t, 4.0, f.Warp.RMultiplier, "unset keys keep defaults")
	assert.Equal(t, 0.5, f.Fractal.Persistence)

	_, err = f.Build()
	require.NoError(t, err)
}

func TestLoad_WorleyPointsFollowWidth(t *testing.T) {
	f, err := Load(strings.NewReader("kind: kernel\nwidth: 90\nheight: 90\nkernel:\n  variant: worley\n"))
	require.NoError(t, err)
	assert.Zero(t, f.Kernel.Worley.NumberOfPoints, "point count is resolved at build time")

	k, err := noise.Build(f.Width, f.Height, f.Kernel)
	require.NoError(t, err)
	w, ok := k.(*noise.Worley)
	require.True(t, ok)
	assert.Len(t, w.Points(), 30)

	src, err := f.Build()
	require.NoError(t, err)
	ref, err := noise.NewWorley(90, 90, 1337, noise.WorleyConfig{})
	require.NoError(t, err)
	for y := 0.0; y < 90; y += 7 {
		for x := 0.0; x < 90; x += 7 {
			require.Equal(t, ref.Eval(x, y), src.Height(x, y), "at (%v, %v)", x, y)
		}
	}
}

func TestLoadFile(t *testing.T) {
	f := Default()
	f.Kind = KindKernel
	f.Width, f.Height = 40, 30
	f.Kernel.Variant = noise.VariantWorley
	out, err := Marshal(f)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "field.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o644))

	back, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, back)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(strings.NewReader("kind: [oops"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("unknownKey: 1"))
	assert.Error(t, err)

	f, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), f)
}

func TestMarshal_RoundTrip(t *testing.T) {
	f := Default()
	f.Kind = KindKernel
	f.Kernel.Variant = noise.VariantSimplex

	out, err := Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(out), "variant: simplex")
	assert.Contains(t, string(out), "noiseGen: perlin")

	back, err := Load(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, f, back)
}
