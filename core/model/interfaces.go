package model

import "gonum.org/v1/gonum/mat"

// Fitter is a supervised estimator.
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor produces one row of predictions per input row.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer computes the coefficient of determination R² of the predictions.
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// Transformer learns parameters from X and applies them.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Regressor is a fitted-then-scored regression model.
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// ParameterGetter exposes hyperparameters with scikit-learn names.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
