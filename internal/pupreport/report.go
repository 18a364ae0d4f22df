package pupreport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"tagstats/internal/charts"
	"tagstats/internal/exporter"
)

// Output artifact names under the report directory.
const (
	DelayChartName   = "pup_delay_faceted.png"
	DensityChartName = "freq_by_pup.png"
	PlayerTableName  = "pups_by_player.csv"
	WorkbookName     = "pup_report.xlsx"
)

// Options configures a report run.
type Options struct {
	InputPath string // pup_times.csv
	OutputDir string // charts, player table, and workbook land here
	Theme     charts.Theme
}

// Report holds the summaries a run prints to stdout.
type Report struct {
	TypeSummaries   []TypeSummary
	TopPairs        []MatchPlayerCount
	DistinctMatches int
}

// Run loads the pickup dataset and produces every report artifact: both
// charts, the persisted player table, the workbook, and the printable
// summaries. The derived dataset is immutable after load, so the steps
// run concurrently.
func Run(ctx context.Context, opts Options, logger *slog.Logger) (*Report, error) {
	dataset, err := Load(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("load pickups: %w", err)
	}
	logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", opts.InputPath),
		slog.Int("pickups", len(dataset.Pickups)))

	report := &Report{}
	var players []PlayerCounts

	var g errgroup.Group

	g.Go(func() error {
		return renderDelayChart(dataset, filepath.Join(opts.OutputDir, DelayChartName), opts.Theme)
	})
	g.Go(func() error {
		return renderDensityChart(dataset, filepath.Join(opts.OutputDir, DensityChartName), opts.Theme)
	})
	g.Go(func() error {
		players = dataset.PupsByPlayer()
		return WritePupsByPlayer(players, filepath.Join(opts.OutputDir, PlayerTableName))
	})
	g.Go(func() error {
		report.TypeSummaries = dataset.SummarizeByType()
		report.TopPairs = dataset.CountByMatchPlayer()
		report.DistinctMatches = dataset.DistinctMatches()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	workbookPath := filepath.Join(opts.OutputDir, WorkbookName)
	if err := exportWorkbook(workbookPath, report, players); err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}

	logger.InfoContext(ctx, "report complete",
		slog.String("output_dir", opts.OutputDir),
		slog.Int("players_kept", len(players)),
		slog.Int("distinct_matches", report.DistinctMatches))
	return report, nil
}

func renderDelayChart(d *Dataset, path string, theme charts.Theme) error {
	rounds, delays := d.DelaysByRound(MaxChartDelay)
	facets := make([]charts.HistogramFacet, 0, len(rounds))
	for _, r := range rounds {
		facets = append(facets, charts.HistogramFacet{
			Title:  r.Label(),
			Values: delays[r],
		})
	}
	img, err := charts.FacetedHistogram(facets, HistogramBinWidth, MaxChartDelay, theme, charts.FacetDefaults())
	if err != nil {
		return fmt.Errorf("delay chart: %w", err)
	}
	return charts.WritePNG(img, path)
}

func renderDensityChart(d *Dataset, path string, theme charts.Theme) error {
	byType := d.EarlyDelaysByType(MaxDensityDelay)
	series := make([]charts.DensitySeries, 0, len(byType))
	for _, t := range AllPupTypes() {
		values, ok := byType[t]
		if !ok {
			continue
		}
		series = append(series, charts.DensitySeries{Name: t.String(), Values: values})
	}
	img, err := charts.DensityOverlay("Early pickup delay by powerup", series, 0, MaxDensityDelay, theme)
	if err != nil {
		return fmt.Errorf("density chart: %w", err)
	}
	return charts.WritePNG(img, path)
}

func exportWorkbook(path string, report *Report, players []PlayerCounts) error {
	typeRecords := make([][]interface{}, 0, len(report.TypeSummaries))
	for _, s := range report.TypeSummaries {
		typeRecords = append(typeRecords, []interface{}{s.Type.String(), s.AvgDelay, s.Count})
	}

	playerHeaders := []string{"player"}
	for _, t := range AllPupTypes() {
		playerHeaders = append(playerHeaders, t.String())
	}
	playerHeaders = append(playerHeaders, "total")
	playerRecords := make([][]interface{}, 0, len(players))
	for _, p := range players {
		record := []interface{}{p.Player}
		for _, t := range AllPupTypes() {
			record = append(record, p.Counts[t])
		}
		record = append(record, p.Total)
		playerRecords = append(playerRecords, record)
	}

	pairRecords := make([][]interface{}, 0, len(report.TopPairs))
	for _, p := range report.TopPairs {
		pairRecords = append(pairRecords, []interface{}{p.MatchID, p.Player, p.Count})
	}

	return exporter.WriteWorkbook(path, []exporter.Sheet{
		{
			Name:    "Delay by Type",
			Headers: []string{"pup_type", "avg_delay", "count"},
			Records: typeRecords,
		},
		{
			Name:    "Pups by Player",
			Headers: playerHeaders,
			Records: playerRecords,
		},
		{
			Name:    "Pups by Match",
			Headers: []string{"match_id", "player", "count"},
			Records: pairRecords,
		},
	})
}

// WriteText prints the stdout summaries: mean delay per powerup type,
// the busiest (match, player) pairs, and the distinct match count.
func (r *Report) WriteText(w io.Writer) {
	fmt.Fprintf(w, "=== Mean Pickup Delay by Powerup (first two spawns) ===\n")
	fmt.Fprintf(w, "%-14s %10s %8s\n", "Powerup", "Avg Delay", "Count")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 34))
	for _, s := range r.TypeSummaries {
		fmt.Fprintf(w, "%-14s %9.2fs %8d\n", s.Type.String(), s.AvgDelay, s.Count)
	}

	fmt.Fprintf(w, "\n=== Pickups by Match and Player (rounds 0-7) ===\n")
	fmt.Fprintf(w, "%-26s %-22s %6s\n", "Match", "Player", "Count")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 56))
	for _, p := range r.TopPairs {
		fmt.Fprintf(w, "%-26s %-22s %6d\n", p.MatchID, p.Player, p.Count)
	}

	fmt.Fprintf(w, "\nDistinct matches: %d\n", r.DistinctMatches)
}
