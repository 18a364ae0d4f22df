// Package matchlog loads TagPro match logs from the numbered JSON dumps
// produced by the log scraper. Each dump file holds a JSON object mapping
// match id to match log.
package matchlog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Match pairs a match id with its decoded log.
type Match struct {
	ID  string
	Log Log
}

// ReadFile decodes a single dump file, returning its matches sorted by
// match id for deterministic iteration order.
func ReadFile(path string) ([]Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read match file: %w", err)
	}

	logs := make(map[string]Log)
	if err := json.Unmarshal(data, &logs); err != nil {
		return nil, fmt.Errorf("parse match file %s: %w", path, err)
	}

	matches := make([]Match, 0, len(logs))
	for id, l := range logs {
		matches = append(matches, Match{ID: id, Log: l})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

// FilePath returns the path of the dump file with the given index.
func FilePath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("matches%d.json", index))
}

// Walk invokes fn for every match in the dump files with indices in
// [start, end), in file then match-id order. Missing files are skipped
// with a warning; a malformed file or an fn error stops the walk. An end
// of zero or less walks from start until the first missing file.
func Walk(dir string, start, end int, fn func(id string, l Log) error) error {
	for index := start; end <= 0 || index < end; index++ {
		path := FilePath(dir, index)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if end <= 0 {
				return nil
			}
			slog.Warn("Match file missing, skipping", slog.String("path", path))
			continue
		}

		matches, err := ReadFile(path)
		if err != nil {
			return err
		}
		slog.Info("Loaded match file",
			slog.String("path", path),
			slog.Int("matches", len(matches)))

		for _, m := range matches {
			if err := fn(m.ID, m.Log); err != nil {
				return fmt.Errorf("process match %s: %w", m.ID, err)
			}
		}
	}
	return nil
}
