// Package spectra generates synthetic mid-infrared spectra whose glucose
// band amplitude is the ground-truth concentration.
//
// Each spectrum over ν ∈ [WavenumberMin, WavenumberMax] is
//
//	noise(ν) + exp(-BackgroundRate·(ν-BackgroundCenter)²) + c·exp(-½((ν-PeakCenter)/PeakWidth)²)
//
// where noise is N(0, NoiseSigma) per point and c ~ U[ConcentrationMin, ConcentrationMax]
// per sample, in g/L.
package spectra

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/mirpls/pkg/errors"
)

// Config describes the simulated instrument and sample population.
type Config struct {
	NSamples int
	NBins    int

	// Wavenumber range in cm⁻¹
	WavenumberMin float64
	WavenumberMax float64

	NoiseSigma float64

	BackgroundCenter float64
	BackgroundRate   float64

	PeakCenter float64
	PeakWidth  float64

	// Concentration range in g/L
	ConcentrationMin float64
	ConcentrationMax float64

	Seed uint64
}

// DefaultConfig returns 100 samples over 500 bins spanning 800–1800 cm⁻¹
// with the glucose band at 1050 cm⁻¹.
func DefaultConfig() Config {
	return Config{
		NSamples:         100,
		NBins:            500,
		WavenumberMin:    800,
		WavenumberMax:    1800,
		NoiseSigma:       0.02,
		BackgroundCenter: 1200,
		BackgroundRate:   0.001,
		PeakCenter:       1050,
		PeakWidth:        10,
		ConcentrationMin: 0,
		ConcentrationMax: 10,
		Seed:             42,
	}
}

// Validate checks that the configuration describes a non-empty, well-formed
// population.
func (c Config) Validate() error {
	switch {
	case c.NSamples < 1:
		return errors.NewValidationError("n_samples", "must be at least 1", c.NSamples)
	case c.NBins < 2:
		return errors.NewValidationError("n_bins", "must be at least 2", c.NBins)
	case !(c.WavenumberMin < c.WavenumberMax):
		return errors.NewValidationError("wavenumber_range", "min must be below max", [2]float64{c.WavenumberMin, c.WavenumberMax})
	case c.NoiseSigma < 0:
		return errors.NewValidationError("noise_sigma", "must be non-negative", c.NoiseSigma)
	case c.PeakWidth <= 0:
		return errors.NewValidationError("peak_width", "must be positive", c.PeakWidth)
	case !(c.ConcentrationMin < c.ConcentrationMax):
		return errors.NewValidationError("concentration_range", "min must be below max", [2]float64{c.ConcentrationMin, c.ConcentrationMax})
	}
	return nil
}

// Synthetic is a generated data set.
type Synthetic struct {
	// Spectra is NSamples × NBins.
	Spectra *mat.Dense
	// Concentrations is aligned with the rows of Spectra.
	Concentrations *mat.VecDense
	Wavenumbers    []float64
}

// Wavenumbers returns n evenly spaced values from lo to hi inclusive.
func Wavenumbers(n int, lo, hi float64) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Generate draws a data set. All randomness comes from one PCG stream seeded
// with cfg.Seed: first the noise for every point in row-major order, then one
// concentration per sample. The same Config always yields the same output.
func Generate(cfg Config) (*Synthetic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	noise := distuv.Normal{Mu: 0, Sigma: cfg.NoiseSigma, Src: src}
	conc := distuv.Uniform{Min: cfg.ConcentrationMin, Max: cfg.ConcentrationMax, Src: src}

	wn := Wavenumbers(cfg.NBins, cfg.WavenumberMin, cfg.WavenumberMax)
	background := make([]float64, cfg.NBins)
	peak := make([]float64, cfg.NBins)
	for j, v := range wn {
		d := v - cfg.BackgroundCenter
		background[j] = math.Exp(-cfg.BackgroundRate * d * d)
		z := (v - cfg.PeakCenter) / cfg.PeakWidth
		peak[j] = math.Exp(-0.5 * z * z)
	}

	X := mat.NewDense(cfg.NSamples, cfg.NBins, nil)
	for i := 0; i < cfg.NSamples; i++ {
		row := X.RawRowView(i)
		for j := range row {
			row[j] = noise.Rand() + background[j]
		}
	}

	y := mat.NewVecDense(cfg.NSamples, nil)
	for i := 0; i < cfg.NSamples; i++ {
		c := conc.Rand()
		y.SetVec(i, c)
		floats.AddScaled(X.RawRowView(i), c, peak)
	}

	return &Synthetic{Spectra: X, Concentrations: y, Wavenumbers: wn}, nil
}
