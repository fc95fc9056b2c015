// Package model holds the estimator state types and the interfaces shared by
// the preprocessing and regression packages.
package model

// EstimatorState is the training state of an estimator.
type EstimatorState int

const (
	NotFitted EstimatorState = iota
	Fitted
)

// BaseEstimator is embedded by simple estimators that only need a fitted
// flag. Estimators with more bookkeeping use StateManager instead.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether Fit has completed.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the estimator as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the estimator to NotFitted.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
