// Package pupreport builds the powerup pickup-timing report from the
// pup_times dataset: how long after each spawn cycle powerups get picked
// up, broken down by spawn round, powerup type, player, and match.
package pupreport

import (
	"fmt"
	"strconv"
)

const (
	// TicksPerSecond is the server tick rate.
	TicksPerSecond = 60

	// RoundTicks is the powerup respawn cycle: powerups spawn every 60
	// seconds of match time.
	RoundTicks = 3600
)

// PupType is a validated powerup category from the dataset.
type PupType int

const (
	JukeJuice PupType = iota
	RollingBomb
	TagPro

	numPupTypes = 3
)

// String returns the display label used in charts and reports.
func (p PupType) String() string {
	switch p {
	case JukeJuice:
		return "Juke Juice"
	case RollingBomb:
		return "Rolling Bomb"
	case TagPro:
		return "TagPro"
	default:
		return "unknown"
	}
}

// pupCodes maps the raw storage codes to their powerup types. The mapping
// is explicit so an unexpected code fails the load instead of silently
// relabeling by position.
var pupCodes = map[string]PupType{
	"jj": JukeJuice,
	"rb": RollingBomb,
	"tp": TagPro,
}

// ParsePupCode resolves a raw dataset code to its powerup type.
func ParsePupCode(code string) (PupType, error) {
	p, ok := pupCodes[code]
	if !ok {
		return 0, fmt.Errorf("unknown pup_type code %q (want jj, rb, or tp)", code)
	}
	return p, nil
}

// AllPupTypes returns the powerup types in display-label order.
func AllPupTypes() []PupType {
	return []PupType{JukeJuice, RollingBomb, TagPro}
}

// Round is a powerup spawn round index. Rounds 0 through MaxNumberedRound
// keep their number; everything later collapses into RoundOverflow, which
// compares greater than every numbered round. Filters compare Round
// values directly; the string form exists only for display.
type Round int

const (
	// MaxNumberedRound is the last round that keeps its own number.
	MaxNumberedRound = 7

	// RoundOverflow bundles every round past MaxNumberedRound.
	RoundOverflow Round = MaxNumberedRound + 1
)

// RoundOf returns the spawn round a tick falls in.
func RoundOf(tick int) Round {
	r := tick / RoundTicks
	if r > MaxNumberedRound {
		return RoundOverflow
	}
	return Round(r)
}

// Label returns the display label for the round.
func (r Round) Label() string {
	if r == RoundOverflow {
		return "8+"
	}
	return "Round " + strconv.Itoa(int(r))
}

// DelayOf returns how many seconds into its spawn round a tick falls.
func DelayOf(tick int) float64 {
	return float64(tick%RoundTicks) / TicksPerSecond
}

// Pickup is one powerup pickup event with its derived timing fields.
type Pickup struct {
	MatchID string
	Player  string
	Type    PupType
	Time    int // ticks since match start

	Delay float64 // seconds into the spawn round
	Round Round
}
