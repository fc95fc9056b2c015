// Package cross_decomposition implements Partial Least Squares regression.
package cross_decomposition

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mirpls/core/model"
	"github.com/YuminosukeSato/mirpls/metrics"
	"github.com/YuminosukeSato/mirpls/pkg/errors"
	"github.com/YuminosukeSato/mirpls/pkg/log"
	"github.com/YuminosukeSato/mirpls/preprocessing"
)

const eps = 2.220446049250313e-16

var _ model.Regressor = (*PLSRegression)(nil)

// PLSRegression is PLS2 regression fitted with NIPALS and regression-mode
// deflation. It accepts one or more target columns.
type PLSRegression struct {
	state  *model.StateManager
	logger log.Logger

	nComponents int
	scale       bool
	maxIter     int
	tol         float64

	xScaler *preprocessing.StandardScaler
	yScaler *preprocessing.StandardScaler

	xWeights   *mat.Dense // W, n_features × k
	yWeights   *mat.Dense // C, n_targets × k
	xLoadings  *mat.Dense // P, n_features × k
	yLoadings  *mat.Dense // Q, n_targets × k
	xScores    *mat.Dense // T, n_samples × k
	xRotations *mat.Dense // W (PᵀW)⁻¹
	coef       *mat.Dense // n_features × n_targets, original units
	intercept  []float64
	nIter      []int
	nTargets   int
}

// NewPLSRegression creates a PLSRegression extracting nComponents latent
// variables. The component count is validated in Fit against the data.
func NewPLSRegression(nComponents int, opts ...Option) *PLSRegression {
	p := &PLSRegression{
		state:       model.NewStateManager(),
		nComponents: nComponents,
		scale:       true,
		maxIter:     500,
		tol:         1e-6,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.GetLoggerWithName("PLSRegression")
	}
	return p
}

// Fit learns the latent components from X (n_samples × n_features) and
// Y (n_samples × n_targets).
//
// Each component is found by NIPALS power iteration on the current
// residuals, after which both X and Y are deflated by the X scores. Fitting
// stops early, with a warning, if the Y residual becomes constant.
func (p *PLSRegression) Fit(X, Y mat.Matrix) (err error) {
	defer errors.Recover(&err, "PLSRegression.Fit")

	nSamples, nFeatures := X.Dims()
	yRows, nTargets := Y.Dims()

	if nSamples == 0 || nFeatures == 0 || nTargets == 0 {
		return errors.NewModelError("PLSRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != nSamples {
		return errors.NewDimensionError("PLSRegression.Fit", nSamples, yRows, 0)
	}
	if nSamples < 2 {
		return errors.NewValidationError("n_samples", "at least 2 samples are required", nSamples)
	}
	if p.nComponents < 1 || p.nComponents > nFeatures {
		return errors.NewValidationError("n_components",
			fmt.Sprintf("must be in [1, n_features=%d]", nFeatures), p.nComponents)
	}
	if p.maxIter < 1 {
		return errors.NewValidationError("max_iter", "must be positive", p.maxIter)
	}
	if p.tol < 0 {
		return errors.NewValidationError("tol", "must be non-negative", p.tol)
	}

	p.state.Reset()

	p.xScaler = preprocessing.NewStandardScaler(true, p.scale)
	p.yScaler = preprocessing.NewStandardScaler(true, p.scale)
	xs, err := p.xScaler.FitTransform(X)
	if err != nil {
		return errors.Wrap(err, "scaling X")
	}
	ys, err := p.yScaler.FitTransform(Y)
	if err != nil {
		return errors.Wrap(err, "scaling Y")
	}
	Xk := mat.DenseCopyOf(xs)
	Yk := mat.DenseCopyOf(ys)

	k := p.nComponents
	W := mat.NewDense(nFeatures, k, nil)
	C := mat.NewDense(nTargets, k, nil)
	P := mat.NewDense(nFeatures, k, nil)
	Q := mat.NewDense(nTargets, k, nil)
	T := mat.NewDense(nSamples, k, nil)
	p.nIter = p.nIter[:0]

	fitted := 0
	for comp := 0; comp < k; comp++ {
		zeroConstantColumns(Yk)

		xw, yw, nIter, ok := p.nipals(Xk, Yk)
		if !ok {
			p.logger.Warn("Y residual is constant, stopping early",
				log.IterationKey, comp,
				log.NComponentsKey, k)
			break
		}
		p.nIter = append(p.nIter, nIter)
		flipSigns(xw, yw)

		xScore := mat.NewVecDense(nSamples, nil)
		xScore.MulVec(Xk, xw)
		tt := mat.Dot(xScore, xScore)

		xLoad := mat.NewVecDense(nFeatures, nil)
		xLoad.MulVec(Xk.T(), xScore)
		xLoad.ScaleVec(1/tt, xLoad)
		Xk.RankOne(Xk, -1, xScore, xLoad)

		yLoad := mat.NewVecDense(nTargets, nil)
		yLoad.MulVec(Yk.T(), xScore)
		yLoad.ScaleVec(1/tt, yLoad)
		Yk.RankOne(Yk, -1, xScore, yLoad)

		W.SetCol(comp, xw.RawVector().Data)
		C.SetCol(comp, yw.RawVector().Data)
		P.SetCol(comp, xLoad.RawVector().Data)
		Q.SetCol(comp, yLoad.RawVector().Data)
		T.SetCol(comp, xScore.RawVector().Data)
		fitted++

		p.logger.Debug("Component extracted",
			log.IterationKey, comp,
			"nipals_iterations", nIter)
	}

	if fitted == 0 {
		return errors.NewModelError("PLSRegression.Fit", "target has no variance", nil)
	}

	p.xWeights = firstCols(W, fitted)
	p.yWeights = firstCols(C, fitted)
	p.xLoadings = firstCols(P, fitted)
	p.yLoadings = firstCols(Q, fitted)
	p.xScores = firstCols(T, fitted)

	var ptw, inv mat.Dense
	ptw.Mul(p.xLoadings.T(), p.xWeights)
	if err := inv.Inverse(&ptw); err != nil {
		cond, ok := err.(mat.Condition)
		if !ok || math.IsInf(float64(cond), 1) {
			return errors.NewModelError("PLSRegression.Fit", "PᵀW is not invertible", errors.ErrSingularMatrix)
		}
		p.logger.Warn("PᵀW is ill-conditioned", "condition", float64(cond))
	}
	p.xRotations = mat.NewDense(nFeatures, fitted, nil)
	p.xRotations.Mul(p.xWeights, &inv)

	// coefficients in scaled units, then mapped back
	var coefScaled mat.Dense
	coefScaled.Mul(p.xRotations, p.yLoadings.T())

	p.coef = mat.NewDense(nFeatures, nTargets, nil)
	p.coef.Apply(func(j, m int, v float64) float64 {
		return v * p.yScaler.Scale[m] / p.xScaler.Scale[j]
	}, &coefScaled)

	p.intercept = make([]float64, nTargets)
	for m := 0; m < nTargets; m++ {
		b := p.yScaler.Mean[m]
		for j := 0; j < nFeatures; j++ {
			b -= p.xScaler.Mean[j] * p.coef.At(j, m)
		}
		p.intercept[m] = b
	}

	if err := errors.CheckMatrix("PLSRegression.Fit", p.coef, nFeatures, nTargets, fitted); err != nil {
		return err
	}

	p.nTargets = nTargets
	p.state.SetDimensions(nFeatures, nSamples)
	p.state.SetFitted()

	p.logger.Info("Model fitted",
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.TargetsKey, nTargets,
		log.NComponentsKey, fitted)

	return nil
}

// nipals returns the first left and right singular vectors of XᵀY by power
// iteration. ok is false when every column of Y is zero.
func (p *PLSRegression) nipals(X, Y *mat.Dense) (xw, yw *mat.VecDense, nIter int, ok bool) {
	nSamples, nFeatures := X.Dims()
	_, nTargets := Y.Dims()

	yScore := mat.NewVecDense(nSamples, nil)
	found := false
	for m := 0; m < nTargets && !found; m++ {
		for i := 0; i < nSamples; i++ {
			if math.Abs(Y.At(i, m)) > eps {
				mat.Col(yScore.RawVector().Data, m, Y)
				found = true
				break
			}
		}
	}
	if !found {
		return nil, nil, 0, false
	}

	xw = mat.NewVecDense(nFeatures, nil)
	yw = mat.NewVecDense(nTargets, nil)
	xScore := mat.NewVecDense(nSamples, nil)
	xwOld := mat.NewVecDense(nFeatures, nil)
	for j := 0; j < nFeatures; j++ {
		xwOld.SetVec(j, 100)
	}
	diff := mat.NewVecDense(nFeatures, nil)

	for nIter = 1; nIter <= p.maxIter; nIter++ {
		xw.MulVec(X.T(), yScore)
		xw.ScaleVec(1/mat.Dot(yScore, yScore), xw)
		xw.ScaleVec(1/(mat.Norm(xw, 2)+eps), xw)

		xScore.MulVec(X, xw)

		yw.MulVec(Y.T(), xScore)
		yw.ScaleVec(1/mat.Dot(xScore, xScore), yw)

		yScore.MulVec(Y, yw)
		yScore.ScaleVec(1/(mat.Dot(yw, yw)+eps), yScore)

		diff.SubVec(xw, xwOld)
		if mat.Dot(diff, diff) < p.tol || nTargets == 1 {
			return xw, yw, nIter, true
		}
		xwOld.CopyVec(xw)
	}

	errors.Warn(errors.NewConvergenceWarning("NIPALS", p.maxIter, ""))
	return xw, yw, p.maxIter, true
}

// zeroConstantColumns clears Y columns whose residual is numerically zero so
// they do not seed the power iteration.
func zeroConstantColumns(Y *mat.Dense) {
	r, c := Y.Dims()
	for m := 0; m < c; m++ {
		constant := true
		for i := 0; i < r; i++ {
			if math.Abs(Y.At(i, m)) >= 10*eps {
				constant = false
				break
			}
		}
		if constant {
			for i := 0; i < r; i++ {
				Y.Set(i, m, 0)
			}
		}
	}
}

// flipSigns makes the largest-magnitude entry of u positive and applies the
// same sign to v.
func flipSigns(u, v *mat.VecDense) {
	best, idx := -1.0, 0
	for i := 0; i < u.Len(); i++ {
		if a := math.Abs(u.AtVec(i)); a > best {
			best, idx = a, i
		}
	}
	if u.AtVec(idx) < 0 {
		u.ScaleVec(-1, u)
		v.ScaleVec(-1, v)
	}
}

func firstCols(m *mat.Dense, k int) *mat.Dense {
	r, _ := m.Dims()
	return mat.DenseCopyOf(m.Slice(0, r, 0, k))
}

// Predict returns X·coef + intercept, one row per sample and one column per
// target.
func (p *PLSRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := p.state.RequireFitted("PLSRegression", "Predict"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if err := p.state.RequireFeatures("PLSRegression.Predict", c); err != nil {
		return nil, err
	}

	pred := mat.NewDense(r, p.nTargets, nil)
	pred.Mul(X, p.coef)
	pred.Apply(func(_, m int, v float64) float64 {
		return v + p.intercept[m]
	}, pred)

	return pred, nil
}

// Transform projects X onto the latent space, returning the X scores.
func (p *PLSRegression) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := p.state.RequireFitted("PLSRegression", "Transform"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if err := p.state.RequireFeatures("PLSRegression.Transform", c); err != nil {
		return nil, err
	}

	xs, err := p.xScaler.Transform(X)
	if err != nil {
		return nil, err
	}
	_, k := p.xRotations.Dims()
	scores := mat.NewDense(r, k, nil)
	scores.Mul(xs, p.xRotations)
	return scores, nil
}

// Score returns R² of the predictions on X, averaged uniformly over the
// target columns.
func (p *PLSRegression) Score(X, Y mat.Matrix) (float64, error) {
	pred, err := p.Predict(X)
	if err != nil {
		return 0, err
	}
	r, c := Y.Dims()
	pr, pc := pred.Dims()
	if r != pr {
		return 0, errors.NewDimensionError("PLSRegression.Score", pr, r, 0)
	}
	if c != pc {
		return 0, errors.NewDimensionError("PLSRegression.Score", pc, c, 1)
	}

	var total float64
	for m := 0; m < c; m++ {
		r2, err := metrics.R2Score(
			mat.NewVecDense(r, mat.Col(nil, m, Y)),
			mat.NewVecDense(r, mat.Col(nil, m, pred)),
		)
		if err != nil {
			return 0, errors.Wrapf(err, "target %d", m)
		}
		total += r2
	}
	return total / float64(c), nil
}

// Coef returns the n_features × n_targets coefficient matrix in the units of
// the original data, or nil before Fit.
func (p *PLSRegression) Coef() *mat.Dense {
	if p.coef == nil {
		return nil
	}
	return mat.DenseCopyOf(p.coef)
}

// Intercept returns the per-target intercept.
func (p *PLSRegression) Intercept() []float64 {
	return append([]float64(nil), p.intercept...)
}

// XWeights returns W.
func (p *PLSRegression) XWeights() *mat.Dense { return p.xWeights }

// XLoadings returns P.
func (p *PLSRegression) XLoadings() *mat.Dense { return p.xLoadings }

// YLoadings returns Q.
func (p *PLSRegression) YLoadings() *mat.Dense { return p.yLoadings }

// XRotations returns W (PᵀW)⁻¹.
func (p *PLSRegression) XRotations() *mat.Dense { return p.xRotations }

// XScores returns the training scores T.
func (p *PLSRegression) XScores() *mat.Dense { return p.xScores }

// NIter returns the NIPALS iteration count of each fitted component.
func (p *PLSRegression) NIter() []int {
	return append([]int(nil), p.nIter...)
}

// NComponents returns the number of components actually fitted, or the
// requested number before Fit.
func (p *PLSRegression) NComponents() int {
	if p.xWeights == nil {
		return p.nComponents
	}
	_, k := p.xWeights.Dims()
	return k
}

// IsFitted reports whether Fit has completed.
func (p *PLSRegression) IsFitted() bool {
	return p.state.IsFitted()
}

// GetParams returns the hyperparameters.
func (p *PLSRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_components": p.nComponents,
		"scale":        p.scale,
		"max_iter":     p.maxIter,
		"tol":          p.tol,
	}
}

func (p *PLSRegression) String() string {
	return fmt.Sprintf("PLSRegression(n_components=%d, scale=%t, max_iter=%d, tol=%g)",
		p.nComponents, p.scale, p.maxIter, p.tol)
}
