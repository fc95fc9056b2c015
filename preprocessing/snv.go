// Package preprocessing provides the spectral pretreatments applied before
// regression: row-wise standard normal variate, Savitzky-Golay smoothing and
// differentiation, and column standardization.
package preprocessing

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// SNV applies the standard normal variate transform to every row of X:
// each row has its own mean subtracted and is divided by its own population
// standard deviation. X is not modified.
//
// A row holding a single distinct value has zero deviation; its output is
// NaN. This is left to the caller to detect (see errors.CheckMatrix).
func SNV(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, X)
		mean, std := stat.PopMeanStdDev(row, nil)
		dst := out.RawRowView(i)
		for j, v := range row {
			dst[j] = (v - mean) / std
		}
	}
	return out
}
