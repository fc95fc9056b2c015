// Package pipeline runs the PLSR glucose workflow on stored MIR spectra.
//
// Each stage is a plain function that takes the previous stage's result and
// returns a new value; nothing is mutated in place, so a stage cannot be run
// before its inputs exist:
//
//	ds, err := pipeline.Load(cfg)
//	pp, err := pipeline.Preprocess(ds)
//	split, err := pipeline.Split(pp, cfg.TestSize, cfg.RandomState)
//	tr, err := pipeline.Train(split, cfg.NComponents)
//	pred, err := pipeline.Predict(tr)
//	ev, err := pipeline.Evaluate(pred)
//	err = pipeline.Plot(pred, cfg.PlotPath)
//
// Run chains all seven and prints a short progress report.
package pipeline

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mirpls/dataset"
	"github.com/YuminosukeSato/mirpls/metrics"
	"github.com/YuminosukeSato/mirpls/pkg/errors"
	"github.com/YuminosukeSato/mirpls/pkg/log"
	"github.com/YuminosukeSato/mirpls/preprocessing"
	"github.com/YuminosukeSato/mirpls/sklearn/cross_decomposition"
	"github.com/YuminosukeSato/mirpls/sklearn/model_selection"
	"github.com/YuminosukeSato/mirpls/spectra"
)

// Config holds the file locations and hyperparameters of a run.
type Config struct {
	SpectraPath string
	GlucosePath string

	NComponents int
	TestSize    float64
	RandomState uint64

	PlotPath string
}

// DefaultConfig reads the files written by cmd/generate-data and fits ten
// components on an 80/20 split.
func DefaultConfig() Config {
	return Config{
		SpectraPath: "data/spectra.bin",
		GlucosePath: "data/glucose_conc.bin",
		NComponents: 10,
		TestSize:    0.2,
		RandomState: 42,
		PlotPath:    "plsr_prediction.png",
	}
}

// Dataset is the raw data as loaded from disk.
type Dataset struct {
	Spectra        *mat.Dense
	Concentrations *mat.VecDense
	Wavenumbers    []float64
}

// Preprocessed holds the SNV-corrected first-derivative spectra. Rows stay
// aligned with Concentrations.
type Preprocessed struct {
	X              *mat.Dense
	Concentrations *mat.VecDense
	Wavenumbers    []float64
}

// Trained is a model fitted on the training side of a split.
type Trained struct {
	Split *model_selection.Split
	Model *cross_decomposition.PLSRegression
}

// Predictions pairs the held-out concentrations with the model output.
type Predictions struct {
	Actual      *mat.VecDense
	Predicted   *mat.VecDense
	TestIndices []int
}

// Evaluation is the held-out error report.
type Evaluation struct {
	RMSE  float64
	R2    float64
	MAE   float64
	NTest int
}

func logger() log.Logger {
	return log.GetLoggerWithName("pipeline")
}

// Load reads the spectra and concentrations and checks that they describe
// the same samples.
func Load(cfg Config) (*Dataset, error) {
	start := time.Now()

	X, err := dataset.LoadMatrix(cfg.SpectraPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading spectra")
	}
	y, err := dataset.LoadVector(cfg.GlucosePath)
	if err != nil {
		return nil, errors.Wrap(err, "loading concentrations")
	}

	r, c := X.Dims()
	if r != y.Len() {
		return nil, errors.NewDimensionError("pipeline.Load", r, y.Len(), 0)
	}

	def := spectra.DefaultConfig()
	ds := &Dataset{
		Spectra:        X,
		Concentrations: y,
		Wavenumbers:    spectra.Wavenumbers(c, def.WavenumberMin, def.WavenumberMax),
	}

	logger().Info("Data loaded",
		log.OperationKey, log.OperationLoad,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.DurationMsKey, time.Since(start).Milliseconds())

	return ds, nil
}

// Preprocess applies SNV to every spectrum and then a Savitzky-Golay first
// derivative (window 11, order 2).
func Preprocess(ds *Dataset) (*Preprocessed, error) {
	if ds == nil || ds.Spectra == nil {
		return nil, errors.NewModelError("pipeline.Preprocess", "no data", errors.ErrEmptyData)
	}
	start := time.Now()

	deriv, err := preprocessing.FirstDerivative(preprocessing.SNV(ds.Spectra))
	if err != nil {
		return nil, err
	}

	r, c := deriv.Dims()
	logger().Info("Preprocessing complete",
		log.PhaseKey, log.PhasePreprocessing,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.DurationMsKey, time.Since(start).Milliseconds())

	return &Preprocessed{
		X:              deriv,
		Concentrations: ds.Concentrations,
		Wavenumbers:    ds.Wavenumbers,
	}, nil
}

// Split partitions the preprocessed rows with a seeded shuffle.
func Split(pp *Preprocessed, testSize float64, seed uint64) (*model_selection.Split, error) {
	if pp == nil || pp.X == nil {
		return nil, errors.NewModelError("pipeline.Split", "no data", errors.ErrEmptyData)
	}

	split, err := model_selection.TrainTestSplit(pp.X, pp.Concentrations, testSize, seed)
	if err != nil {
		return nil, err
	}

	logger().Info("Data split",
		log.OperationKey, log.OperationSplit,
		log.TrainSamplesKey, len(split.TrainIndices),
		log.TestSamplesKey, len(split.TestIndices),
		log.TestSizeKey, testSize,
		log.RandomSeedKey, seed)

	return split, nil
}

// Train fits PLS regression on the training partition only.
func Train(split *model_selection.Split, nComponents int) (*Trained, error) {
	if split == nil || split.XTrain == nil {
		return nil, errors.NewModelError("pipeline.Train", "no training data", errors.ErrEmptyData)
	}
	start := time.Now()

	pls := cross_decomposition.NewPLSRegression(nComponents)
	if err := pls.Fit(split.XTrain, split.YTrain); err != nil {
		return nil, err
	}

	logger().Info("Model training complete",
		log.PhaseKey, log.PhaseTraining,
		log.ModelNameKey, "PLSRegression",
		log.NComponentsKey, pls.NComponents(),
		log.DurationMsKey, time.Since(start).Milliseconds())

	return &Trained{Split: split, Model: pls}, nil
}

// Predict runs the fitted model on the held-out spectra.
func Predict(tr *Trained) (*Predictions, error) {
	if tr == nil || tr.Model == nil {
		return nil, errors.NewModelError("pipeline.Predict", "no trained model", nil)
	}

	out, err := tr.Model.Predict(tr.Split.XTest)
	if err != nil {
		return nil, err
	}

	r, _ := out.Dims()
	pred := mat.NewVecDense(r, mat.Col(nil, 0, out))

	logger().Info("Prediction complete",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseTesting,
		log.SamplesKey, r)

	return &Predictions{
		Actual:      tr.Split.YTest,
		Predicted:   pred,
		TestIndices: tr.Split.TestIndices,
	}, nil
}

// Evaluate scores the predictions.
func Evaluate(pred *Predictions) (*Evaluation, error) {
	if pred == nil || pred.Actual == nil || pred.Predicted == nil {
		return nil, errors.NewModelError("pipeline.Evaluate", "no predictions", errors.ErrEmptyData)
	}

	rmse, err := metrics.RMSE(pred.Actual, pred.Predicted)
	if err != nil {
		return nil, err
	}
	r2, err := metrics.R2Score(pred.Actual, pred.Predicted)
	if err != nil {
		return nil, err
	}
	mae, err := metrics.MAE(pred.Actual, pred.Predicted)
	if err != nil {
		return nil, err
	}

	ev := &Evaluation{RMSE: rmse, R2: r2, MAE: mae, NTest: pred.Actual.Len()}

	logger().Info("Evaluation complete",
		log.OperationKey, log.OperationScore,
		log.RMSEKey, rmse,
		log.R2ScoreKey, r2,
		log.MAEKey, mae)

	return ev, nil
}
