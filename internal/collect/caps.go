package collect

import (
	"fmt"
	"io"

	"tagstats/internal/events"
	"tagstats/internal/matchlog"
)

// CapTimesHeader is the header row of the cap times dataset.
const CapTimesHeader = "match_id,timestamp,map,player,time\n"

// WriteCapTimes walks ranked matches and writes one row per flag capture.
func (c *Collector) WriteCapTimes(w io.Writer) error {
	if _, err := io.WriteString(w, CapTimesHeader); err != nil {
		return fmt.Errorf("write cap times header: %w", err)
	}

	return c.walkRanked(func(id string, l *matchlog.Log) error {
		for _, player := range l.Players {
			reader, err := events.NewReader(player.Events)
			if err != nil {
				return fmt.Errorf("player %q: %w", player.Name, err)
			}
			for _, ev := range reader.PlayerEvents(events.Team(player.Team), l.Duration) {
				if ev.Kind != events.KindCapture {
					continue
				}
				// Raw double quotes around the name, same as the pup rows.
				_, err := fmt.Fprintf(w, "%s,%d,%d,\"%s\",%d\n", id, l.Date, l.MapID, player.Name, ev.Time)
				if err != nil {
					return fmt.Errorf("write cap row: %w", err)
				}
			}
		}
		return nil
	})
}
