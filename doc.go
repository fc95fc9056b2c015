// Package mirpls predicts glucose concentration from mid-infrared (MIR)
// absorbance spectra with Partial Least Squares regression.
//
// The module covers the whole workflow: a synthetic spectrum generator,
// spectral preprocessing (Standard Normal Variate and Savitzky-Golay
// derivatives), a seeded train/test split, PLS regression fitted with
// NIPALS, regression metrics and a predicted-vs-actual plot.
//
// # Installation
//
//	go get github.com/YuminosukeSato/mirpls
//
// # Quick Start
//
// Generate a data set, then fit and score the model:
//
//	go run ./cmd/generate-data
//	go run ./cmd/plsr-glucose
//
// The second command prints
//
//	Data loaded.
//	Preprocessing complete.
//	Data split into training and testing sets.
//	Model training complete.
//	Prediction complete.
//	RMSE: ...
//	R²: ...
//
// and writes plsr_prediction.png.
//
// The same run from Go:
//
//	package main
//
//	import (
//	    "log"
//	    "os"
//
//	    "github.com/YuminosukeSato/mirpls/pipeline"
//	)
//
//	func main() {
//	    ev, err := pipeline.Run(pipeline.DefaultConfig(), os.Stdout)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    _ = ev.R2
//	}
//
// # Packages
//
//   - spectra: synthetic MIR spectra of glucose solutions
//   - dataset: binary persistence of the spectra and concentrations
//   - preprocessing: SNV, Savitzky-Golay filtering, StandardScaler
//   - sklearn/model_selection: seeded train/test split
//   - sklearn/cross_decomposition: PLSRegression
//   - metrics: MSE, RMSE, MAE, R²
//   - pipeline: the staged workflow and its plot
//   - core/model: shared estimator interfaces and state
//   - pkg/errors, pkg/log: error types and structured logging
//
// # scikit-learn Compatibility
//
// PLSRegression follows scikit-learn's PLSRegression (NIPALS, regression
// deflation, autoscaling) and exposes the same hyperparameters:
//
//	pls := cross_decomposition.NewPLSRegression(10,
//	    cross_decomposition.WithScale(true),
//	    cross_decomposition.WithMaxIter(500),
//	    cross_decomposition.WithTol(1e-6),
//	)
//
// # License
//
// mirpls is released under the MIT License.
package mirpls
