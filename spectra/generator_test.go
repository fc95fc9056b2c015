package spectra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mirpls/pkg/errors"
)

func TestGenerateShape(t *testing.T) {
	data, err := Generate(DefaultConfig())
	require.NoError(t, err)

	r, c := data.Spectra.Dims()
	assert.Equal(t, 100, r)
	assert.Equal(t, 500, c)
	assert.Equal(t, 100, data.Concentrations.Len())
	require.Len(t, data.Wavenumbers, 500)
	assert.Equal(t, 800.0, data.Wavenumbers[0])
	assert.Equal(t, 1800.0, data.Wavenumbers[499])
}

func TestGenerateIsReproducible(t *testing.T) {
	a, err := Generate(DefaultConfig())
	require.NoError(t, err)
	b, err := Generate(DefaultConfig())
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.Spectra, b.Spectra), "spectra differ between runs with the same seed")
	assert.True(t, mat.Equal(a.Concentrations, b.Concentrations), "concentrations differ between runs with the same seed")

	cfg := DefaultConfig()
	cfg.Seed = 7
	c, err := Generate(cfg)
	require.NoError(t, err)
	assert.False(t, mat.Equal(a.Spectra, c.Spectra))
}

func TestGenerateConcentrationRange(t *testing.T) {
	data, err := Generate(DefaultConfig())
	require.NoError(t, err)

	for i := 0; i < data.Concentrations.Len(); i++ {
		v := data.Concentrations.AtVec(i)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 10.0)
	}
}

func TestGenerateNoiselessStructure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoiseSigma = 0
	cfg.NSamples = 5
	data, err := Generate(cfg)
	require.NoError(t, err)

	peakBin := floats.MinIdx(absDiff(data.Wavenumbers, cfg.PeakCenter))
	bgBin := floats.MinIdx(absDiff(data.Wavenumbers, cfg.BackgroundCenter))

	for i := 0; i < cfg.NSamples; i++ {
		c := data.Concentrations.AtVec(i)
		nu := data.Wavenumbers[peakBin]
		z := (nu - cfg.PeakCenter) / cfg.PeakWidth
		d := nu - cfg.BackgroundCenter
		want := math.Exp(-cfg.BackgroundRate*d*d) + c*math.Exp(-0.5*z*z)
		assert.InDelta(t, want, data.Spectra.At(i, peakBin), 1e-12)

		// the glucose band is negligible at the background centre
		assert.InDelta(t, 1.0, data.Spectra.At(i, bgBin), 1e-3)
	}
}

func absDiff(xs []float64, v float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Abs(x - v)
	}
	return out
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		param  string
	}{
		{"no samples", func(c *Config) { c.NSamples = 0 }, "n_samples"},
		{"one bin", func(c *Config) { c.NBins = 1 }, "n_bins"},
		{"inverted axis", func(c *Config) { c.WavenumberMin = 1800; c.WavenumberMax = 800 }, "wavenumber_range"},
		{"negative noise", func(c *Config) { c.NoiseSigma = -1 }, "noise_sigma"},
		{"zero width", func(c *Config) { c.PeakWidth = 0 }, "peak_width"},
		{"empty concentration range", func(c *Config) { c.ConcentrationMax = c.ConcentrationMin }, "concentration_range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			_, err := Generate(cfg)
			require.Error(t, err)
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}
}

func TestWavenumbers(t *testing.T) {
	wn := Wavenumbers(5, 800, 1800)
	assert.Equal(t, []float64{800, 1050, 1300, 1550, 1800}, wn)
	assert.Equal(t, []float64{800}, Wavenumbers(1, 800, 1800))
}
