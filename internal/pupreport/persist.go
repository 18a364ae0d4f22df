package pupreport

import (
	"fmt"
	"strconv"

	"tagstats/internal/exporter"
)

// WritePupsByPlayer persists the per-player pickup table as CSV. The first
// column is a bare integer row index under an empty header cell; consumers
// of the previous exporter depend on that exact shape, so it stays.
func WritePupsByPlayer(rows []PlayerCounts, outputPath string) error {
	header := []string{"", "player"}
	for _, t := range AllPupTypes() {
		header = append(header, t.String())
	}
	header = append(header, "total")

	records := make([][]string, 0, len(rows))
	for i, row := range rows {
		record := []string{strconv.Itoa(i), row.Player}
		for _, t := range AllPupTypes() {
			record = append(record, strconv.Itoa(row.Counts[t]))
		}
		record = append(record, strconv.Itoa(row.Total))
		records = append(records, record)
	}

	if err := exporter.WriteCSV(outputPath, exporter.WriteOptions{
		Headers: header,
		Records: records,
	}); err != nil {
		return fmt.Errorf("write player table: %w", err)
	}
	return nil
}
