package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the resolved directory layout a tool runs against.
type Paths struct {
	DataDir     string // raw matches{N}.json archive
	AnalysisDir string // collector outputs (pup_times.csv, cap_times.csv, ...)
	ReportDir   string // report artifacts (charts, tables, workbook)
}

// ResolvePaths resolves the configured directories to absolute paths.
func (c *Config) ResolvePaths() (*Paths, error) {
	p := &Paths{}
	var err error
	if p.DataDir, err = filepath.Abs(c.Paths.DataDir); err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	if p.AnalysisDir, err = filepath.Abs(c.Paths.AnalysisDir); err != nil {
		return nil, fmt.Errorf("resolve analysis dir: %w", err)
	}
	if p.ReportDir, err = filepath.Abs(c.Paths.ReportDir); err != nil {
		return nil, fmt.Errorf("resolve report dir: %w", err)
	}
	return p, nil
}

// EnsureOutputDirs creates the writable directories. The data dir is an
// input and is left alone: pointing a tool at a missing archive should
// fail loudly at read time, not silently create an empty directory.
func (p *Paths) EnsureOutputDirs() error {
	for _, dir := range []string{p.AnalysisDir, p.ReportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// PupTimesPath is the canonical location of the pickup dataset.
func (p *Paths) PupTimesPath() string {
	return filepath.Join(p.AnalysisDir, "pup_times.csv")
}
