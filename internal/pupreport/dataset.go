package pupreport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Dataset is the loaded pup_times dataset with derived fields. It is
// immutable after Load; every report step reads from it independently.
type Dataset struct {
	Pickups []Pickup
}

// Load reads a pup_times CSV (header row required) and derives the timing
// fields for every row. Required columns: match_id, player, pup_type,
// time; extra columns such as timestamp and map are ignored. Any missing
// column, unparsable time, or unknown pup_type code is fatal.
func Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pup times file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	matchIdx, playerIdx, typeIdx, timeIdx := -1, -1, -1, -1
	for i, col := range header {
		switch col {
		case "match_id":
			matchIdx = i
		case "player":
			playerIdx = i
		case "pup_type":
			typeIdx = i
		case "time":
			timeIdx = i
		}
	}
	for name, idx := range map[string]int{
		"match_id": matchIdx,
		"player":   playerIdx,
		"pup_type": typeIdx,
		"time":     timeIdx,
	} {
		if idx < 0 {
			return nil, fmt.Errorf("missing column %q in %s", name, path)
		}
	}

	var pickups []Pickup
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		tick, err := strconv.Atoi(record[timeIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse time: %w", row, err)
		}
		pupType, err := ParsePupCode(record[typeIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		pickups = append(pickups, Pickup{
			MatchID: record[matchIdx],
			Player:  record[playerIdx],
			Type:    pupType,
			Time:    tick,
			Delay:   DelayOf(tick),
			Round:   RoundOf(tick),
		})
	}

	return &Dataset{Pickups: pickups}, nil
}
