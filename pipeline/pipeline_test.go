package pipeline

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mirpls/dataset"
	"github.com/YuminosukeSato/mirpls/pkg/errors"
	"github.com/YuminosukeSato/mirpls/pkg/log"
	"github.com/YuminosukeSato/mirpls/spectra"
)

func TestMain(m *testing.M) {
	log.SetProvider(log.NewZerologProviderWithWriter(io.Discard, log.LevelWarn))
	os.Exit(m.Run())
}

// writeDataset generates the default data set into dir and returns a
// Config pointing at it.
func writeDataset(t *testing.T, dir string) Config {
	t.Helper()

	syn, err := spectra.Generate(spectra.DefaultConfig())
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.SpectraPath = filepath.Join(dir, "data", "spectra.bin")
	cfg.GlucosePath = filepath.Join(dir, "data", "glucose_conc.bin")
	cfg.PlotPath = filepath.Join(dir, "plsr_prediction.png")
	require.NoError(t, dataset.Save(cfg.SpectraPath, cfg.GlucosePath, syn.Spectra, syn.Concentrations))

	return cfg
}

func TestRunEndToEnd(t *testing.T) {
	cfg := writeDataset(t, t.TempDir())

	var out bytes.Buffer
	ev, err := Run(cfg, &out)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(ev.RMSE))
	assert.GreaterOrEqual(t, ev.RMSE, 0.0)
	assert.LessOrEqual(t, ev.R2, 1.0)
	assert.Equal(t, 20, ev.NTest)

	report := out.String()
	for _, line := range []string{
		"Data loaded.",
		"Preprocessing complete.",
		"Data split into training and testing sets.",
		"Model training complete.",
		"Prediction complete.",
		"RMSE: ",
		"R²: ",
		cfg.PlotPath,
	} {
		assert.Contains(t, report, line)
	}

	info, err := os.Stat(cfg.PlotPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := writeDataset(t, t.TempDir())

	first, err := Run(cfg, io.Discard)
	require.NoError(t, err)
	second, err := Run(cfg, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, first.RMSE, second.RMSE)
	assert.Equal(t, first.R2, second.R2)
}

func TestLoad(t *testing.T) {
	cfg := writeDataset(t, t.TempDir())

	ds, err := Load(cfg)
	require.NoError(t, err)

	r, c := ds.Spectra.Dims()
	assert.Equal(t, 100, r)
	assert.Equal(t, 500, c)
	assert.Equal(t, 100, ds.Concentrations.Len())
	require.Len(t, ds.Wavenumbers, 500)
	assert.Equal(t, 800.0, ds.Wavenumbers[0])
	assert.Equal(t, 1800.0, ds.Wavenumbers[499])
}

func TestLoadMissingFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpectraPath = filepath.Join(t.TempDir(), "missing.bin")

	_, err := Load(cfg)
	assert.Error(t, err)

	_, err = Run(cfg, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load")
}

func TestLoadMisaligned(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.SpectraPath = filepath.Join(dir, "spectra.bin")
	cfg.GlucosePath = filepath.Join(dir, "glucose_conc.bin")

	require.NoError(t, dataset.SaveMatrix(cfg.SpectraPath, mat.NewDense(10, 20, nil)))
	require.NoError(t, dataset.SaveVector(cfg.GlucosePath, mat.NewVecDense(9, nil)))

	_, err := Load(cfg)
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 10, dimErr.Expected)
	assert.Equal(t, 9, dimErr.Got)
}

func TestPreprocessKeepsShape(t *testing.T) {
	cfg := writeDataset(t, t.TempDir())
	ds, err := Load(cfg)
	require.NoError(t, err)
	raw := mat.DenseCopyOf(ds.Spectra)

	pp, err := Preprocess(ds)
	require.NoError(t, err)

	r, c := pp.X.Dims()
	assert.Equal(t, 100, r)
	assert.Equal(t, 500, c)
	assert.True(t, mat.Equal(raw, ds.Spectra), "input spectra must not be modified")
}

func TestSplitKeepsAlignment(t *testing.T) {
	cfg := writeDataset(t, t.TempDir())
	ds, err := Load(cfg)
	require.NoError(t, err)
	pp, err := Preprocess(ds)
	require.NoError(t, err)

	split, err := Split(pp, 0.2, 42)
	require.NoError(t, err)
	assert.Len(t, split.TestIndices, 20)
	assert.Len(t, split.TrainIndices, 80)

	for k, i := range split.TrainIndices {
		assert.Equal(t, pp.Concentrations.AtVec(i), split.YTrain.AtVec(k))
		assert.Equal(t, mat.Row(nil, i, pp.X), mat.Row(nil, k, split.XTrain))
	}
	for k, i := range split.TestIndices {
		assert.Equal(t, pp.Concentrations.AtVec(i), split.YTest.AtVec(k))
	}
}

func TestTrainRejectsTooManyComponents(t *testing.T) {
	cfg := writeDataset(t, t.TempDir())
	cfg.NComponents = 501

	_, err := Run(cfg, io.Discard)
	var valErr *errors.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "n_components", valErr.ParamName)
}

func TestStagesRejectMissingInput(t *testing.T) {
	_, err := Preprocess(nil)
	assert.Error(t, err)
	_, err = Split(nil, 0.2, 42)
	assert.Error(t, err)
	_, err = Train(nil, 10)
	assert.Error(t, err)
	_, err = Predict(nil)
	assert.Error(t, err)
	_, err = Evaluate(nil)
	assert.Error(t, err)
	assert.Error(t, Plot(nil, filepath.Join(t.TempDir(), "p.png")))
}

func TestPlot(t *testing.T) {
	pred := &Predictions{
		Actual:    mat.NewVecDense(4, []float64{1, 3, 5, 9}),
		Predicted: mat.NewVecDense(4, []float64{1.2, 2.7, 5.1, 8.8}),
	}
	path := filepath.Join(t.TempDir(), "plots", "pred.png")

	require.NoError(t, Plot(pred, path))
	_, err := os.Stat(path)
	assert.NoError(t, err)

	pred.Predicted = mat.NewVecDense(3, []float64{1, 2, 3})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(Plot(pred, path), &dimErr))
}

func TestEvaluate(t *testing.T) {
	ev, err := Evaluate(&Predictions{
		Actual:    mat.NewVecDense(4, []float64{1, 2, 3, 4}),
		Predicted: mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, ev.RMSE, 1e-12)
	assert.InDelta(t, 0.8, ev.R2, 1e-12)
	assert.InDelta(t, 0.5, ev.MAE, 1e-12)
	assert.Equal(t, 4, ev.NTest)
}
