package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"tagstats/internal/charts"
	"tagstats/internal/config"
	"tagstats/internal/infrastructure"
	"tagstats/internal/pupreport"
)

func main() {
	inputPath := flag.String("in", "", "pickup dataset to analyze (defaults to analysis/pup_times.csv)")
	outputDir := flag.String("out", "", "directory for charts and tables (defaults to configured report dir)")
	configFile := flag.String("config", "", "optional config file (defaults to tagstats.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)
	ctx := infrastructure.EnsureRunID(context.Background())
	logger = logger.With(slog.String("run_id", infrastructure.RunID(ctx)))

	paths, err := cfg.ResolvePaths()
	if err != nil {
		logger.Error("failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if *inputPath == "" {
		*inputPath = paths.PupTimesPath()
	}
	if *outputDir == "" {
		if err := paths.EnsureOutputDirs(); err != nil {
			logger.Error("failed to create output directories", "error", err)
			os.Exit(1)
		}
		*outputDir = paths.ReportDir
	}

	if _, err := os.Stat(*inputPath); os.IsNotExist(err) {
		logger.Error("pickup dataset not found",
			"path", *inputPath,
			"hint", "run the collector in pups mode first")
		os.Exit(1)
	}

	report, err := pupreport.Run(ctx, pupreport.Options{
		InputPath: *inputPath,
		OutputDir: *outputDir,
		Theme:     charts.DarkTheme(),
	}, logger)
	if err != nil {
		logger.Error("report generation failed", "error", err)
		os.Exit(1)
	}

	report.WriteText(os.Stdout)
}
