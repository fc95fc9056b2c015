package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mirpls/pkg/errors"
)

// SavitzkyGolay is a least-squares polynomial smoothing filter applied along
// each row of a matrix. With Deriv > 0 it returns the derivative of the
// fitted local polynomial instead of its value.
//
// Interior points use the window centred on them. The first and last
// WindowLength/2 points are evaluated on the polynomial fitted to the first
// or last full window.
type SavitzkyGolay struct {
	WindowLength int
	PolyOrder    int
	Deriv        int

	// Delta is the sample spacing used to scale derivatives.
	Delta float64
}

// SavGolOption configures a SavitzkyGolay filter.
type SavGolOption func(*SavitzkyGolay)

// WithWindowLength sets the number of points in each local fit. Must be odd.
func WithWindowLength(n int) SavGolOption {
	return func(s *SavitzkyGolay) {
		s.WindowLength = n
	}
}

// WithPolyOrder sets the order of the fitted polynomial.
func WithPolyOrder(order int) SavGolOption {
	return func(s *SavitzkyGolay) {
		s.PolyOrder = order
	}
}

// WithDeriv sets the derivative order. Orders above PolyOrder yield zeros.
func WithDeriv(deriv int) SavGolOption {
	return func(s *SavitzkyGolay) {
		s.Deriv = deriv
	}
}

// WithDelta sets the spacing between samples.
func WithDelta(delta float64) SavGolOption {
	return func(s *SavitzkyGolay) {
		s.Delta = delta
	}
}

// NewSavitzkyGolay returns a filter with window 11, quadratic fit, first
// derivative and unit spacing, modified by opts.
func NewSavitzkyGolay(opts ...SavGolOption) *SavitzkyGolay {
	s := &SavitzkyGolay{
		WindowLength: 11,
		PolyOrder:    2,
		Deriv:        1,
		Delta:        1.0,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FirstDerivative applies the default filter: window 11, polyorder 2, first
// derivative.
func FirstDerivative(X mat.Matrix) (*mat.Dense, error) {
	return NewSavitzkyGolay().Transform(X)
}

// Transform filters every row of X and returns a new matrix of the same
// shape. Rows shorter than the window are rejected.
func (s *SavitzkyGolay) Transform(X mat.Matrix) (out *mat.Dense, err error) {
	defer errors.Recover(&err, "SavitzkyGolay.Transform")

	r, c := X.Dims()
	if c < s.WindowLength {
		return nil, errors.NewValidationError("window_length",
			"must be less than or equal to the row length", s.WindowLength)
	}

	weights, err := s.Coefficients()
	if err != nil {
		return nil, err
	}

	w := s.WindowLength
	half := w / 2
	center := weights.RawRowView(half)

	out = mat.NewDense(r, c, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, X)
		dst := out.RawRowView(i)

		for k := half; k < c-half; k++ {
			dst[k] = floats.Dot(center, row[k-half:k+half+1])
		}
		for k := 0; k < half; k++ {
			dst[k] = floats.Dot(weights.RawRowView(k), row[:w])
		}
		for k := c - half; k < c; k++ {
			dst[k] = floats.Dot(weights.RawRowView(k-(c-w)), row[c-w:])
		}
	}

	return out, nil
}

// Coefficients returns a WindowLength × WindowLength matrix whose row p holds
// the weights that evaluate the Deriv-th derivative of the least-squares
// polynomial at window position p. Row WindowLength/2 is the usual
// convolution kernel (in correlation order).
func (s *SavitzkyGolay) Coefficients() (*mat.Dense, error) {
	w, p, d := s.WindowLength, s.PolyOrder, s.Deriv
	switch {
	case w < 1 || w%2 == 0:
		return nil, errors.NewValidationError("window_length", "must be a positive odd integer", w)
	case p < 0:
		return nil, errors.NewValidationError("polyorder", "must be non-negative", p)
	case p >= w:
		return nil, errors.NewValidationError("polyorder", "must be less than window_length", p)
	case d < 0:
		return nil, errors.NewValidationError("deriv", "must be non-negative", d)
	case s.Delta <= 0:
		return nil, errors.NewValidationError("delta", "must be positive", s.Delta)
	}

	out := mat.NewDense(w, w, nil)
	if d > p {
		return out, nil
	}

	half := w / 2

	// Vandermonde design on offsets -half..half
	A := mat.NewDense(w, p+1, nil)
	for i := 0; i < w; i++ {
		t := float64(i - half)
		for k := 0; k <= p; k++ {
			A.Set(i, k, math.Pow(t, float64(k)))
		}
	}

	// pinv(A): maps window values to polynomial coefficients
	var pinv mat.Dense
	if err := pinv.Solve(A, eye(w)); err != nil {
		return nil, errors.NewModelError("SavitzkyGolay.Coefficients", "least squares design is rank deficient", err)
	}

	scale := math.Pow(s.Delta, float64(d))
	for pos := 0; pos < w; pos++ {
		t := float64(pos - half)
		dst := out.RawRowView(pos)
		for k := d; k <= p; k++ {
			f := fallingFactorial(k, d) * math.Pow(t, float64(k-d)) / scale
			floats.AddScaled(dst, f, pinv.RawRowView(k))
		}
	}

	return out, nil
}

// fallingFactorial returns k·(k-1)···(k-d+1).
func fallingFactorial(k, d int) float64 {
	f := 1.0
	for i := 0; i < d; i++ {
		f *= float64(k - i)
	}
	return f
}

func eye(n int) *mat.Dense {
	I := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		I.Set(i, i, 1)
	}
	return I
}
