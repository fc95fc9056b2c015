package pipeline

import (
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/mirpls/pkg/errors"
	"github.com/YuminosukeSato/mirpls/pkg/log"
)

// Plot draws actual against predicted concentration with the identity line
// over the 0–10 g/L range and saves it as an image. The format follows the
// extension of path.
func Plot(pred *Predictions, path string) error {
	if pred == nil || pred.Actual == nil || pred.Predicted == nil {
		return errors.NewModelError("pipeline.Plot", "no predictions", errors.ErrEmptyData)
	}
	n := pred.Actual.Len()
	if pred.Predicted.Len() != n {
		return errors.NewDimensionError("pipeline.Plot", n, pred.Predicted.Len(), 0)
	}

	p := plot.New()
	p.Title.Text = "PLSR Prediction on MIR Spectra"
	p.X.Label.Text = "Actual Glucose (g/L)"
	p.Y.Label.Text = "Predicted Glucose (g/L)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, n)
	for i := range pts {
		pts[i].X = pred.Actual.AtVec(i)
		pts[i].Y = pred.Predicted.AtVec(i)
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "building scatter")
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Color = color.RGBA{B: 200, A: 255}

	diagonal, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 10, Y: 10}})
	if err != nil {
		return errors.Wrap(err, "building diagonal")
	}
	diagonal.LineStyle.Color = color.RGBA{R: 220, A: 255}
	diagonal.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}

	p.Add(scatter, diagonal)
	p.Legend.Add("Predictions", scatter)
	p.Legend.Add("Ideal", diagonal)
	p.Legend.Top = true
	p.Legend.Left = true

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}
	if err := p.Save(6*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving plot to %s", path)
	}

	logger().Info("Plot saved",
		log.OperationKey, log.OperationPlot,
		log.PathKey, path)

	return nil
}
