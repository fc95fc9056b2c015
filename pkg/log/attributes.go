package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator, e.g. "PLSRegression".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed: "fit", "predict", ...
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or pipeline stage.
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase: "preprocessing", "training", ...
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	TargetsKey  = "data.targets"

	// PathKey is a file read or written by the operation.
	PathKey = "data.path"

	// TrainSamplesKey and TestSamplesKey describe a train/test partition.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"
)

// Spectral axis.
const (
	WavenumberMinKey = "spectra.wavenumber_min"
	WavenumberMaxKey = "spectra.wavenumber_max"
	WindowLengthKey  = "savgol.window_length"
	PolyOrderKey     = "savgol.polyorder"
	DerivKey         = "savgol.deriv"
)

// Metrics and performance.
const (
	DurationMsKey = "perf.duration_ms"
	RMSEKey       = "metrics.rmse"
	MAEKey        = "metrics.mae"

	// R2ScoreKey is the coefficient of determination, in (-inf, 1].
	R2ScoreKey = "metrics.r2_score"

	IterationKey = "training.iteration"
)

// Hyperparameters and configuration.
const (
	NComponentsKey = "hyperparams.n_components"
	TestSizeKey    = "config.test_size"
	RandomSeedKey  = "config.random_seed"
)

// Error context.
const (
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"
	OperationSplit     = "split"
	OperationLoad      = "load"
	OperationSave      = "save"
	OperationGenerate  = "generate"
	OperationPlot      = "plot"

	PhaseTraining      = "training"
	PhaseTesting       = "testing"
	PhasePreprocessing = "preprocessing"
)
