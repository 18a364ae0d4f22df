// Package collect walks match-log dumps and extracts per-match datasets:
// powerup pickup times, capture times, and ranked matchup rows with
// per-player stats. Outputs are the delimited files under analysis/ that
// the report tools consume.
package collect

import (
	"tagstats/internal/matchlog"
)

const (
	// MinRankedDuration is the shortest match, in ticks, that counts as a
	// completed ranked game (3 minutes of play at 60 ticks per second
	// would be 180*60; ranked games run at least that long).
	MinRankedDuration = 180 * 60

	// RankedTimeLimit is the time limit, in minutes, of every ranked match.
	RankedTimeLimit = 8.0

	// MinRankedPlayers is the minimum player count for a ranked 4v4.
	MinRankedPlayers = 8

	// TeamSize is the per-side player count of a valid ranked matchup.
	TeamSize = 4
)

// IsRanked reports whether a match log is a completed ranked-queue match.
func IsRanked(l *matchlog.Log) bool {
	return l.Official &&
		len(l.Players) >= MinRankedPlayers &&
		l.InRankedQueue() &&
		l.TimeLimit == RankedTimeLimit &&
		l.Duration >= MinRankedDuration
}
