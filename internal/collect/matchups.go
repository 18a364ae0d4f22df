package collect

import (
	"fmt"
	"io"
	"strings"

	"tagstats/internal/matchlog"
)

// statFields are the per-player columns of the matchups-with-stats output,
// in write order.
var statFields = []string{
	"caps", "garbage_time_caps", "hold", "ndps", "returns",
	"quick_returns", "nrts", "pups", "hwoh",
}

var playerSlots = []string{"r1", "r2", "r3", "r4", "b1", "b2", "b3", "b4"}

// MatchupsHeader is the header row of the plain ranked matchups dataset.
const MatchupsHeader = "timestamp,map,duration,red,blue,r1,r2,r3,r4,b1,b2,b3,b4"

// MatchupsWithStatsHeader builds the header row of the stats dataset:
// match columns, player-name slots, then one column per slot and stat.
func MatchupsWithStatsHeader() string {
	parts := []string{
		"match_id", "map_id", "timestamp", "duration",
		"cap_diff", "garbage_time_cap_diff",
	}
	parts = append(parts, playerSlots...)
	for _, slot := range playerSlots {
		for _, field := range statFields {
			parts = append(parts, slot+"_"+field)
		}
	}
	return strings.Join(parts, ",")
}

// WriteMatchups walks ranked matches and writes one matchup row per valid
// 4v4: timestamp, map, duration, both final scores, and the eight names.
func (c *Collector) WriteMatchups(w io.Writer) error {
	if _, err := io.WriteString(w, MatchupsHeader); err != nil {
		return fmt.Errorf("write matchups header: %w", err)
	}

	return c.walkRanked(func(id string, l *matchlog.Log) error {
		var red, blue []string
		for _, player := range l.Players {
			switch player.Team {
			case 1:
				red = append(red, player.Name)
			case 2:
				blue = append(blue, player.Name)
			}
		}
		if len(red) != TeamSize || len(blue) != TeamSize {
			return nil
		}

		cells := []string{
			fmt.Sprintf("%d", l.Date),
			fmt.Sprintf("%d", l.MapID),
			fmt.Sprintf("%d", l.Duration),
			fmt.Sprintf("%d", l.Teams[0].Score),
			fmt.Sprintf("%d", l.Teams[1].Score),
		}
		cells = append(cells, red...)
		cells = append(cells, blue...)

		if _, err := fmt.Fprintf(w, "\n%s", strings.Join(cells, ",")); err != nil {
			return fmt.Errorf("write matchup row: %w", err)
		}
		return nil
	})
}

// WriteMatchupsWithStats walks ranked matches through the stat processor
// and writes one row per valid 4v4 with each player's full stat line.
func (c *Collector) WriteMatchupsWithStats(w io.Writer) error {
	if _, err := io.WriteString(w, MatchupsWithStatsHeader()); err != nil {
		return fmt.Errorf("write matchups header: %w", err)
	}

	return c.walkRanked(func(id string, l *matchlog.Log) error {
		result, err := ProcessRankedMatch(id, l)
		if err != nil {
			return err
		}
		if result == nil {
			return nil
		}

		cells := []string{
			result.MatchID,
			fmt.Sprintf("%d", result.MapID),
			fmt.Sprintf("%d", result.Timestamp),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%d", result.CapDiff),
			fmt.Sprintf("%d", result.GarbageCapDiff),
		}

		lineup := append(append([]int{}, result.RedTeam...), result.BlueTeam...)
		for _, idx := range lineup {
			cells = append(cells, "\""+result.Stats[idx].Name+"\"")
		}
		for _, idx := range lineup {
			s := result.Stats[idx]
			cells = append(cells,
				fmt.Sprintf("%d", s.Caps),
				fmt.Sprintf("%d", s.GarbageTimeCaps),
				fmt.Sprintf("%d", s.Hold),
				fmt.Sprintf("%d", s.NonDropPops),
				fmt.Sprintf("%d", s.Returns),
				fmt.Sprintf("%d", s.QuickReturns),
				fmt.Sprintf("%d", s.NonReturnTags),
				fmt.Sprintf("%d", s.Pups),
				fmt.Sprintf("%d", s.HeadToHeadHold),
			)
		}

		if _, err := fmt.Fprintf(w, "\n%s", strings.Join(cells, ",")); err != nil {
			return fmt.Errorf("write matchup row: %w", err)
		}
		return nil
	})
}
