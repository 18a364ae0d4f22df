package pupreport

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagstats/internal/charts"
)

func testDataset(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("match_id,timestamp,map,player,pup_type,time\n")

	// Spread pickups over several rounds for every type so both charts
	// have something to draw.
	codes := []string{"jj", "rb", "tp"}
	for round := 0; round < 4; round++ {
		for i, code := range codes {
			tick := round*RoundTicks + 30 + i*45
			fmt.Fprintf(&b, "m1,1600000000000,74,alice,%s,%d\n", code, tick)
			fmt.Fprintf(&b, "m2,1600000000001,74,bob,%s,%d\n", code, tick+15)
		}
	}
	// One overtime pickup for the overflow facet.
	b.WriteString("m1,1600000000000,74,alice,jj,32430\n")

	path := filepath.Join(t.TempDir(), "pup_times.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func assertPNGSize(t *testing.T, path string, width, height int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, width, cfg.Width)
	assert.Equal(t, height, cfg.Height)
}

func TestRun(t *testing.T) {
	outDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	report, err := Run(context.Background(), Options{
		InputPath: testDataset(t),
		OutputDir: outDir,
		Theme:     charts.DarkTheme(),
	}, logger)
	require.NoError(t, err)

	assertPNGSize(t, filepath.Join(outDir, DelayChartName), charts.CanvasWidth, charts.CanvasHeight)
	assertPNGSize(t, filepath.Join(outDir, DensityChartName), charts.CanvasWidth, charts.CanvasHeight)

	playerTable, err := os.ReadFile(filepath.Join(outDir, PlayerTableName))
	require.NoError(t, err)
	assert.Equal(t, ",player,Juke Juice,Rolling Bomb,TagPro,total\n", string(playerTable),
		"nobody reaches the per-player threshold in this dataset")

	_, err = os.Stat(filepath.Join(outDir, WorkbookName))
	assert.NoError(t, err)

	require.Len(t, report.TypeSummaries, 3)
	assert.Equal(t, 2, report.DistinctMatches)
	assert.NotEmpty(t, report.TopPairs)
	assert.Equal(t, "m1", report.TopPairs[0].MatchID, "tie on count breaks by match id")
}

func TestRunMissingInput(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := Run(context.Background(), Options{
		InputPath: filepath.Join(t.TempDir(), "missing.csv"),
		OutputDir: t.TempDir(),
		Theme:     charts.DarkTheme(),
	}, logger)
	assert.Error(t, err)
}

func TestReportWriteText(t *testing.T) {
	r := &Report{
		TypeSummaries: []TypeSummary{
			{Type: JukeJuice, AvgDelay: 1.25, Count: 10},
			{Type: TagPro, AvgDelay: 3.5, Count: 4},
		},
		TopPairs: []MatchPlayerCount{
			{MatchID: "m1", Player: "alice", Count: 7},
		},
		DistinctMatches: 2,
	}

	var b strings.Builder
	r.WriteText(&b)
	out := b.String()

	assert.Contains(t, out, "Juke Juice")
	assert.Contains(t, out, "1.25")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "Distinct matches: 2")
}
