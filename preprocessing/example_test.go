package preprocessing_test

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mirpls/preprocessing"
)

func ExampleSNV() {
	X := mat.NewDense(1, 3, []float64{2, 4, 6})

	out := preprocessing.SNV(X)
	fmt.Printf("%.4f %.4f %.4f\n", out.At(0, 0), out.At(0, 1), out.At(0, 2))
	// Output: -1.2247 0.0000 1.2247
}

func ExampleSavitzkyGolay_Transform() {
	// a straight line with slope 3
	row := make([]float64, 15)
	for i := range row {
		row[i] = 3 * float64(i)
	}
	X := mat.NewDense(1, 15, row)

	out, err := preprocessing.NewSavitzkyGolay(
		preprocessing.WithWindowLength(5),
		preprocessing.WithPolyOrder(2),
		preprocessing.WithDeriv(1),
	).Transform(X)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.2f %.2f %.2f\n", out.At(0, 0), out.At(0, 7), out.At(0, 14))
	// Output: 3.00 3.00 3.00
}
