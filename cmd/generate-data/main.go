// Command generate-data simulates MIR spectra of glucose solutions and
// writes them, with their concentrations, under data/.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/YuminosukeSato/mirpls/dataset"
	"github.com/YuminosukeSato/mirpls/pkg/log"
	"github.com/YuminosukeSato/mirpls/spectra"
)

const (
	spectraPath = "data/spectra.bin"
	glucosePath = "data/glucose_conc.bin"
)

func main() {
	log.SetupLogger("info")
	logger := log.NewZerologProvider(log.LevelInfo).GetLoggerWithName("generate-data")

	cfg := spectra.DefaultConfig()
	syn, err := spectra.Generate(cfg)
	if err != nil {
		slog.Error("Failed to generate spectra", log.ErrAttr(err))
		os.Exit(1)
	}

	if err := dataset.Save(spectraPath, glucosePath, syn.Spectra, syn.Concentrations); err != nil {
		slog.Error("Failed to save data set", log.ErrAttr(err))
		os.Exit(1)
	}

	logger.Info("Data set written",
		log.OperationKey, log.OperationGenerate,
		log.SamplesKey, cfg.NSamples,
		log.FeaturesKey, cfg.NBins,
		log.WavenumberMinKey, cfg.WavenumberMin,
		log.WavenumberMaxKey, cfg.WavenumberMax,
		log.RandomSeedKey, cfg.Seed)

	fmt.Printf("Saved %d spectra to %s and concentrations to %s\n", cfg.NSamples, spectraPath, glucosePath)
}
