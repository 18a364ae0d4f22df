package collect

import (
	"log/slog"

	"tagstats/internal/matchlog"
)

// Collector runs collections over a range of match-log dump files.
type Collector struct {
	dataDir    string
	start, end int
	logger     *slog.Logger
}

// New creates a collector over dump file indices [start, end) in dataDir.
func New(dataDir string, start, end int, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{dataDir: dataDir, start: start, end: end, logger: logger}
}

// walkRanked invokes fn for every match that passes the ranked gate,
// validating each log on the way in.
func (c *Collector) walkRanked(fn func(id string, l *matchlog.Log) error) error {
	seen := 0
	kept := 0
	err := matchlog.Walk(c.dataDir, c.start, c.end, func(id string, l matchlog.Log) error {
		seen++
		if !IsRanked(&l) {
			return nil
		}
		if err := l.Validate(); err != nil {
			return err
		}
		kept++
		return fn(id, &l)
	})
	if err != nil {
		return err
	}

	c.logger.Info("Collection pass complete",
		slog.Int("matches_seen", seen),
		slog.Int("matches_ranked", kept))
	return nil
}
