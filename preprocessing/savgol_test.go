package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mirpls/pkg/errors"
)

func quadraticRows(n int) *mat.Dense {
	X := mat.NewDense(2, n, nil)
	for j := 0; j < n; j++ {
		x := float64(j)
		X.Set(0, j, 3+0.5*x-0.25*x*x)
		X.Set(1, j, -1+2*x+0.1*x*x)
	}
	return X
}

func TestFirstDerivativeOfQuadraticIsExact(t *testing.T) {
	X := quadraticRows(30)

	out, err := FirstDerivative(X)
	require.NoError(t, err)

	for j := 0; j < 30; j++ {
		x := float64(j)
		assert.InDelta(t, 0.5-0.5*x, out.At(0, j), 1e-9, "row 0 col %d", j)
		assert.InDelta(t, 2+0.2*x, out.At(1, j), 1e-9, "row 1 col %d", j)
	}
}

func TestSmoothingReproducesPolynomial(t *testing.T) {
	X := quadraticRows(15)

	out, err := NewSavitzkyGolay(WithDeriv(0), WithWindowLength(7)).Transform(X)
	require.NoError(t, err)

	assert.True(t, mat.EqualApprox(X, out, 1e-9))
}

func TestSecondDerivativeWithDelta(t *testing.T) {
	X := quadraticRows(20)

	out, err := NewSavitzkyGolay(WithDeriv(2), WithPolyOrder(3), WithDelta(0.5)).Transform(X)
	require.NoError(t, err)

	// d²/dx² of -0.25x² is -0.5; sample spacing 0.5 scales by 1/0.25
	for j := 0; j < 20; j++ {
		assert.InDelta(t, -2.0, out.At(0, j), 1e-8)
		assert.InDelta(t, 0.8, out.At(1, j), 1e-8)
	}
}

func TestDerivativeAbovePolyOrderIsZero(t *testing.T) {
	out, err := NewSavitzkyGolay(WithDeriv(3), WithPolyOrder(2)).Transform(quadraticRows(12))
	require.NoError(t, err)

	assert.Zero(t, floats.Norm(out.RawMatrix().Data, 2))
}

func TestCentralKernel(t *testing.T) {
	coef, err := NewSavitzkyGolay(WithWindowLength(5)).Coefficients()
	require.NoError(t, err)

	// first derivative kernel for window 5, quadratic fit: [-2 -1 0 1 2] / 10
	assert.InDeltaSlice(t, []float64{-0.2, -0.1, 0, 0.1, 0.2}, coef.RawRowView(2), 1e-12)
}

func TestSavitzkyGolayPreservesShape(t *testing.T) {
	for _, n := range []int{11, 12, 50, 500} {
		X := mat.NewDense(3, n, nil)
		for j := 0; j < n; j++ {
			X.Set(0, j, float64(j%7))
			X.Set(1, j, float64(j*j%13))
			X.Set(2, j, 1)
		}
		before := mat.DenseCopyOf(X)

		out, err := FirstDerivative(X)
		require.NoError(t, err)

		r, c := out.Dims()
		assert.Equal(t, 3, r)
		assert.Equal(t, n, c)
		assert.True(t, mat.Equal(before, X), "input modified")
	}
}

func TestSavitzkyGolayValidation(t *testing.T) {
	tests := []struct {
		name  string
		opts  []SavGolOption
		cols  int
		param string
	}{
		{"row shorter than window", nil, 10, "window_length"},
		{"even window", []SavGolOption{WithWindowLength(10)}, 20, "window_length"},
		{"polyorder equals window", []SavGolOption{WithWindowLength(3), WithPolyOrder(3)}, 20, "polyorder"},
		{"negative deriv", []SavGolOption{WithDeriv(-1)}, 20, "deriv"},
		{"zero delta", []SavGolOption{WithDelta(0)}, 20, "delta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSavitzkyGolay(tt.opts...).Transform(mat.NewDense(2, tt.cols, nil))
			require.Error(t, err)

			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}
}
