package pipeline

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/mirpls/pkg/errors"
)

// Run executes every stage in order and writes the progress report to out.
// The first failing stage aborts the run; its error is returned wrapped
// with the stage name.
func Run(cfg Config, out io.Writer) (*Evaluation, error) {
	ds, err := Load(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "load")
	}
	fmt.Fprintln(out, "Data loaded.")

	pp, err := Preprocess(ds)
	if err != nil {
		return nil, errors.Wrap(err, "preprocess")
	}
	fmt.Fprintln(out, "Preprocessing complete.")

	split, err := Split(pp, cfg.TestSize, cfg.RandomState)
	if err != nil {
		return nil, errors.Wrap(err, "split")
	}
	fmt.Fprintln(out, "Data split into training and testing sets.")

	tr, err := Train(split, cfg.NComponents)
	if err != nil {
		return nil, errors.Wrap(err, "train")
	}
	fmt.Fprintln(out, "Model training complete.")

	pred, err := Predict(tr)
	if err != nil {
		return nil, errors.Wrap(err, "predict")
	}
	fmt.Fprintln(out, "Prediction complete.")

	ev, err := Evaluate(pred)
	if err != nil {
		return nil, errors.Wrap(err, "evaluate")
	}

	fmt.Fprintf(out, "RMSE: %.4f\n", ev.RMSE)
	fmt.Fprintf(out, "R²: %.4f\n", ev.R2)

	if err := Plot(pred, cfg.PlotPath); err != nil {
		return nil, errors.Wrap(err, "plot")
	}
	fmt.Fprintf(out, "Plot saved to %s\n", cfg.PlotPath)

	return ev, nil
}
