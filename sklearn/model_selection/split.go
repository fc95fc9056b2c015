// Package model_selection partitions samples into training and test sets.
package model_selection

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mirpls/pkg/errors"
)

// Split is a train/test partition. Row k of XTrain and entry k of YTrain
// both come from original row TrainIndices[k]; likewise for the test side.
type Split struct {
	XTrain *mat.Dense
	XTest  *mat.Dense
	YTrain *mat.VecDense
	YTest  *mat.VecDense

	TrainIndices []int
	TestIndices  []int
}

// TrainTestSplit shuffles the rows of X and y with one seeded permutation
// and puts the first ceil(testSize·n) of them in the test set.
func TrainTestSplit(X mat.Matrix, y mat.Vector, testSize float64, seed uint64) (*Split, error) {
	n, c := X.Dims()
	if n == 0 || c == 0 {
		return nil, errors.NewModelError("TrainTestSplit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("TrainTestSplit", n, y.Len(), 0)
	}
	if !(testSize > 0 && testSize < 1) {
		return nil, errors.NewValidationError("test_size", "must be in the open interval (0, 1)", testSize)
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTrain < 1 {
		return nil, errors.NewValidationError("test_size",
			"leaves the training set empty", testSize)
	}

	r := rand.New(rand.NewPCG(seed, seed))
	perm := r.Perm(n)

	split := &Split{
		TestIndices:  perm[:nTest],
		TrainIndices: perm[nTest:],
	}
	split.XTest, split.YTest = takeRows(X, y, split.TestIndices)
	split.XTrain, split.YTrain = takeRows(X, y, split.TrainIndices)

	return split, nil
}

func takeRows(X mat.Matrix, y mat.Vector, idx []int) (*mat.Dense, *mat.VecDense) {
	_, c := X.Dims()
	Xs := mat.NewDense(len(idx), c, nil)
	ys := mat.NewVecDense(len(idx), nil)
	for k, i := range idx {
		mat.Row(Xs.RawRowView(k), i, X)
		ys.SetVec(k, y.AtVec(i))
	}
	return Xs, ys
}
