package collect

import (
	"fmt"
	"io"

	"tagstats/internal/events"
	"tagstats/internal/matchlog"
)

// Code is the short powerup code written to pup_times.csv.
type Code string

const (
	CodeJukeJuice   Code = "jj"
	CodeRollingBomb Code = "rb"
	CodeTagPro      Code = "tp"
)

// PupTimesHeader is the header row of the pup times dataset.
const PupTimesHeader = "match_id,timestamp,map,player,pup_type,time\n"

// WritePupTimes walks ranked matches and writes one row per powerup pickup:
// match id, match timestamp, map id, player name, powerup code, and the
// pickup tick.
func (c *Collector) WritePupTimes(w io.Writer) error {
	if _, err := io.WriteString(w, PupTimesHeader); err != nil {
		return fmt.Errorf("write pup times header: %w", err)
	}

	return c.walkRanked(func(id string, l *matchlog.Log) error {
		for _, player := range l.Players {
			reader, err := events.NewReader(player.Events)
			if err != nil {
				return fmt.Errorf("player %q: %w", player.Name, err)
			}
			playerEvents := reader.PlayerEvents(events.Team(player.Team), l.Duration)

			currentPups := 0
			for _, ev := range playerEvents {
				switch ev.Kind {
				case events.KindPowerup:
					// The fresh pickup is whatever bit appeared since the
					// last known mask.
					newPup := events.Powerup(ev.Powerups - currentPups)
					currentPups = ev.Powerups

					var code Code
					switch newPup {
					case events.PowerupJukeJuice:
						code = CodeJukeJuice
					case events.PowerupRollingBomb:
						code = CodeRollingBomb
					case events.PowerupTagPro:
						code = CodeTagPro
					default:
						continue
					}
					if err := writePupRow(w, id, l, player.Name, code, ev.Time); err != nil {
						return err
					}

				case events.KindDuplicatePowerup:
					currentPups = ev.Powerups
					// A duplicate pickup doesn't change the mask, so the
					// best guess is whatever the player already holds. With
					// a single held pup that's exact; a rolling bomb can
					// also defuse within the tick and show as no pups.
					var code Code
					switch events.Powerup(ev.Powerups) {
					case events.PowerupJukeJuice:
						code = CodeJukeJuice
					case events.PowerupRollingBomb, events.PowerupNone:
						code = CodeRollingBomb
					default:
						// TagPro, TopSpeed, or an ambiguous multi-pup mask.
						code = CodeTagPro
					}
					if err := writePupRow(w, id, l, player.Name, code, ev.Time); err != nil {
						return err
					}

				default:
					currentPups = ev.Powerups
				}
			}
		}
		return nil
	})
}

func writePupRow(w io.Writer, id string, l *matchlog.Log, player string, code Code, tick int) error {
	// Names are wrapped in raw double quotes, not escaped. A quote or
	// backslash inside a name passes through to the row untouched.
	_, err := fmt.Fprintf(w, "%s,%d,%d,\"%s\",%s,%d\n", id, l.Date, l.MapID, player, code, tick)
	if err != nil {
		return fmt.Errorf("write pup row: %w", err)
	}
	return nil
}
