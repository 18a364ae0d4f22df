package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"tagstats/internal/collect"
	"tagstats/internal/config"
	"tagstats/internal/infrastructure"
)

// defaultOutputs maps each collection mode to its canonical file name
// under the analysis directory.
var defaultOutputs = map[string]string{
	"pups":           "pup_times.csv",
	"caps":           "cap_times.csv",
	"matchups":       "matchups.csv",
	"matchups-stats": "matchups_with_stats.csv",
	"records":        "all_time_records.txt",
}

func main() {
	mode := flag.String("mode", "pups", "collection mode: pups, caps, matchups, matchups-stats, or records")
	start := flag.Int("start", 0, "first match file index to read (inclusive)")
	end := flag.Int("end", 0, "last match file index to read (exclusive); 0 means scan until the first gap")
	outPath := flag.String("out", "", "output file (defaults under the analysis dir; - for stdout)")
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

	defaultName, ok := defaultOutputs[*mode]
	if !ok {
		logger.Error("unknown collection mode", "mode", *mode)
		os.Exit(1)
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		logger.Error("failed to resolve paths", "error", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	var f *os.File
	if *outPath != "-" {
		if *outPath == "" {
			if err := paths.EnsureOutputDirs(); err != nil {
				logger.Error("failed to create output directories", "error", err)
				os.Exit(1)
			}
			*outPath = filepath.Join(paths.AnalysisDir, defaultName)
		}
		f, err = os.Create(*outPath)
		if err != nil {
			logger.Error("failed to create output file", "path", *outPath, "error", err)
			os.Exit(1)
		}
		out = f
	}

	collector := collect.New(paths.DataDir, *start, *end, logger)
	if err := run(collector, *mode, out); err != nil {
		if f != nil {
			f.Close()
		}
		logger.Error("collection failed", "mode", *mode, "error", err)
		os.Exit(1)
	}
	// Close before declaring success so a flush failure is not silently
	// dropped on the floor.
	if f != nil {
		if err := f.Close(); err != nil {
			logger.Error("failed to close output file", "path", *outPath, "error", err)
			os.Exit(1)
		}
	}
	logger.InfoContext(ctx, "collection complete", "mode", *mode, "output", *outPath)
}

func run(c *collect.Collector, mode string, out io.Writer) error {
	switch mode {
	case "pups":
		return c.WritePupTimes(out)
	case "caps":
		return c.WriteCapTimes(out)
	case "matchups":
		return c.WriteMatchups(out)
	case "matchups-stats":
		return c.WriteMatchupsWithStats(out)
	case "records":
		return c.WriteRecords(out)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}
