// Package dataset persists the spectral matrix and concentration vector in
// gonum's native binary encoding. The files are only meant to be read back
// by this module.
package dataset

import (
	"bufio"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mirpls/pkg/errors"
)

// SaveMatrix writes X to path, creating parent directories as needed.
func SaveMatrix(path string, X *mat.Dense) error {
	return writeFile(path, func(w *bufio.Writer) error {
		_, err := X.MarshalBinaryTo(w)
		return err
	})
}

// SaveVector writes v to path, creating parent directories as needed.
func SaveVector(path string, v *mat.VecDense) error {
	return writeFile(path, func(w *bufio.Writer) error {
		_, err := v.MarshalBinaryTo(w)
		return err
	})
}

// LoadMatrix reads a matrix written by SaveMatrix.
func LoadMatrix(path string) (*mat.Dense, error) {
	var X mat.Dense
	if err := readFile(path, func(r *bufio.Reader) error {
		_, err := X.UnmarshalBinaryFrom(r)
		return err
	}); err != nil {
		return nil, err
	}
	return &X, nil
}

// LoadVector reads a vector written by SaveVector.
func LoadVector(path string) (*mat.VecDense, error) {
	var v mat.VecDense
	if err := readFile(path, func(r *bufio.Reader) error {
		_, err := v.UnmarshalBinaryFrom(r)
		return err
	}); err != nil {
		return nil, err
	}
	return &v, nil
}

// Save writes the spectra and concentrations to their two files.
func Save(spectraPath, concPath string, X *mat.Dense, y *mat.VecDense) error {
	if r := X.RawMatrix().Rows; r != y.Len() {
		return errors.NewDimensionError("dataset.Save", r, y.Len(), 0)
	}
	if err := SaveMatrix(spectraPath, X); err != nil {
		return err
	}
	return SaveVector(concPath, y)
}

func writeFile(path string, encode func(*bufio.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := encode(w); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "flush %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

func readFile(path string, decode func(*bufio.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	if err := decode(bufio.NewReader(f)); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}
