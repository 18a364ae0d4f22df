package pupreport

import (
	"sort"
)

const (
	// EarlySpawnCutoff bounds the "first pup rounds" window used by the
	// density chart: pickups strictly before tick 7200, i.e. the first
	// two spawn cycles.
	EarlySpawnCutoff = 2 * RoundTicks

	// EarlyWindowMax is the inclusive bound the type summary uses for the
	// same window. Kept as its own constant: the two cuts disagree on the
	// boundary tick and the data source's owner has not said which is
	// intended, so neither is rewritten in terms of the other.
	EarlyWindowMax = 2 * RoundTicks

	// MaxChartDelay caps the delay range of the faceted histogram.
	MaxChartDelay = 20.0

	// MaxDensityDelay caps the delay range of the density chart.
	MaxDensityDelay = 5.0

	// HistogramBinWidth is the delay bin width, in seconds.
	HistogramBinWidth = 0.5

	// MinPlayerTotal is the pickup count below which a player is left out
	// of the per-player table.
	MinPlayerTotal = 50
)

// TypeSummary is one row of the mean-delay-by-type table.
type TypeSummary struct {
	Type     PupType
	AvgDelay float64
	Count    int
}

// SummarizeByType restricts to the early window (time <= EarlyWindowMax)
// and reports mean delay and pickup count per powerup type, in display
// label order.
func (d *Dataset) SummarizeByType() []TypeSummary {
	var sums [numPupTypes]float64
	var counts [numPupTypes]int
	for _, p := range d.Pickups {
		if p.Time > EarlyWindowMax {
			continue
		}
		sums[p.Type] += p.Delay
		counts[p.Type]++
	}

	var out []TypeSummary
	for _, t := range AllPupTypes() {
		if counts[t] == 0 {
			continue
		}
		out = append(out, TypeSummary{
			Type:     t,
			AvgDelay: sums[t] / float64(counts[t]),
			Count:    counts[t],
		})
	}
	return out
}

// PlayerCounts is one row of the per-player pickup table: pickup counts
// per powerup type plus their total.
type PlayerCounts struct {
	Player string
	Counts [numPupTypes]int
	Total  int
}

// PupsByPlayer counts pickups per (player, type), pivots the types into
// columns, and keeps players with at least MinPlayerTotal pickups, sorted
// by player name.
func (d *Dataset) PupsByPlayer() []PlayerCounts {
	byPlayer := make(map[string]*PlayerCounts)
	for _, p := range d.Pickups {
		pc, ok := byPlayer[p.Player]
		if !ok {
			pc = &PlayerCounts{Player: p.Player}
			byPlayer[p.Player] = pc
		}
		pc.Counts[p.Type]++
		pc.Total++
	}

	var out []PlayerCounts
	for _, pc := range byPlayer {
		if pc.Total >= MinPlayerTotal {
			out = append(out, *pc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Player < out[j].Player })
	return out
}

// MatchPlayerCount is one row of the pickups-per-match-and-player table.
type MatchPlayerCount struct {
	MatchID string
	Player  string
	Count   int
}

// CountByMatchPlayer restricts to numbered rounds up to MaxNumberedRound
// (the overflow round compares greater and drops out) and counts pickups
// per (match, player), most first. Ties order by match id then player so
// the output is stable.
func (d *Dataset) CountByMatchPlayer() []MatchPlayerCount {
	type key struct{ match, player string }
	counts := make(map[key]int)
	for _, p := range d.Pickups {
		if p.Round > MaxNumberedRound {
			continue
		}
		counts[key{p.MatchID, p.Player}]++
	}

	out := make([]MatchPlayerCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, MatchPlayerCount{MatchID: k.match, Player: k.player, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		return out[i].Player < out[j].Player
	})
	return out
}

// DistinctMatches counts the unique match ids across the whole dataset,
// independent of the filters the tables apply.
func (d *Dataset) DistinctMatches() int {
	seen := make(map[string]struct{})
	for _, p := range d.Pickups {
		seen[p.MatchID] = struct{}{}
	}
	return len(seen)
}

// DelaysByRound groups delays at or below maxDelay by round, returning
// the rounds in ascending order alongside the per-round delay slices.
func (d *Dataset) DelaysByRound(maxDelay float64) ([]Round, map[Round][]float64) {
	grouped := make(map[Round][]float64)
	for _, p := range d.Pickups {
		if p.Delay > maxDelay {
			continue
		}
		grouped[p.Round] = append(grouped[p.Round], p.Delay)
	}

	rounds := make([]Round, 0, len(grouped))
	for r := range grouped {
		rounds = append(rounds, r)
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i] < rounds[j] })
	return rounds, grouped
}

// EarlyDelaysByType returns, per powerup type, the delays of pickups in
// the early spawn window (time < EarlySpawnCutoff) at or below maxDelay.
func (d *Dataset) EarlyDelaysByType(maxDelay float64) map[PupType][]float64 {
	grouped := make(map[PupType][]float64)
	for _, p := range d.Pickups {
		if p.Time >= EarlySpawnCutoff || p.Delay > maxDelay {
			continue
		}
		grouped[p.Type] = append(grouped[p.Type], p.Delay)
	}
	return grouped
}
