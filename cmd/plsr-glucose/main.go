// Command plsr-glucose fits a PLS regression model to the spectra written by
// generate-data and reports its held-out error.
package main

import (
	"log/slog"
	"os"

	"github.com/YuminosukeSato/mirpls/pipeline"
	"github.com/YuminosukeSato/mirpls/pkg/log"
)

func main() {
	log.SetupLogger("info")
	log.SetProvider(log.NewZerologProvider(log.LevelInfo))

	if _, err := pipeline.Run(pipeline.DefaultConfig(), os.Stdout); err != nil {
		slog.Error("Pipeline failed", log.ErrAttr(err))
		os.Exit(1)
	}
}
