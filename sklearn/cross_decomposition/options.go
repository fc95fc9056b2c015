package cross_decomposition

import "github.com/YuminosukeSato/mirpls/pkg/log"

// Option is a function that configures PLSRegression
type Option func(*PLSRegression)

// WithScale sets whether X and Y are scaled to unit variance before fitting
func WithScale(scale bool) Option {
	return func(p *PLSRegression) {
		p.scale = scale
	}
}

// WithMaxIter sets the iteration limit of the NIPALS inner loop
func WithMaxIter(maxIter int) Option {
	return func(p *PLSRegression) {
		p.maxIter = maxIter
	}
}

// WithTol sets the convergence tolerance of the NIPALS inner loop
func WithTol(tol float64) Option {
	return func(p *PLSRegression) {
		p.tol = tol
	}
}

// WithLogger replaces the component logger
func WithLogger(logger log.Logger) Option {
	return func(p *PLSRegression) {
		p.logger = logger
	}
}
