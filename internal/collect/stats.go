package collect

import (
	"fmt"
	"sort"

	"tagstats/internal/events"
	"tagstats/internal/matchlog"
)

// Garbage-time thresholds: late captures that only pad an already decided
// score. A capture is garbage time when it lands past the threshold tick
// with the score difference at or beyond the paired margin.
var garbageTimeThresholds = []struct {
	afterTick int
	margin    int
}{
	{330 * 60, 4},
	{360 * 60, 3},
	{390 * 60, 2},
}

// RankedPlayerStats accumulates one player's stat line over a ranked match.
type RankedPlayerStats struct {
	Name            string
	Auth            bool
	Caps            int
	GarbageTimeCaps int
	Hold            int
	NonDropPops     int
	Returns         int
	QuickReturns    int
	NonReturnTags   int
	Pups            int
	HeadToHeadHold  int

	holdStart *int
}

// relevantEvent is one event on the merged match timeline.
type relevantEvent struct {
	time        int
	kind        events.Kind
	playerIndex int
	team        events.Team
}

// statEventKinds are the event kinds the ranked stat line is built from.
var statEventKinds = map[events.Kind]bool{
	events.KindCapture:          true,
	events.KindGrab:             true,
	events.KindDrop:             true,
	events.KindReturn:           true,
	events.KindTag:              true,
	events.KindPop:              true,
	events.KindPowerup:          true,
	events.KindDuplicatePowerup: true,
	events.KindQuit:             true,
}

// MatchResult is the per-match output of the ranked stat processor.
type MatchResult struct {
	MatchID        string
	Timestamp      int
	MapID          int
	Duration       int
	CapDiff        int
	GarbageCapDiff int
	RedTeam        []int
	BlueTeam       []int
	Stats          []RankedPlayerStats
}

// matchState tracks cross-player state while replaying the merged timeline.
type matchState struct {
	capDiff        int
	garbageCapDiff int
	redCarrier     *int
	blueCarrier    *int
	redGrabTime    *int
	blueGrabTime   *int
}

// ProcessRankedMatch replays a ranked match's merged event timeline and
// produces its matchup result. Returns (nil, nil) when the match does not
// pass the ranked gate or does not resolve to a stable 4v4.
func ProcessRankedMatch(id string, l *matchlog.Log) (*MatchResult, error) {
	if !IsRanked(l) {
		return nil, nil
	}

	stats := make([]RankedPlayerStats, len(l.Players))
	var redTeam, blueTeam []int
	var timeline []relevantEvent

	for idx, player := range l.Players {
		stats[idx] = RankedPlayerStats{Name: player.Name, Auth: player.Auth}

		team := events.Team(player.Team)
		switch team {
		case events.TeamRed:
			redTeam = append(redTeam, idx)
		case events.TeamBlue:
			blueTeam = append(blueTeam, idx)
		}

		reader, err := events.NewReader(player.Events)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", player.Name, err)
		}
		for _, ev := range reader.PlayerEvents(team, l.Duration) {
			if statEventKinds[ev.Kind] {
				timeline = append(timeline, relevantEvent{
					time:        ev.Time,
					kind:        ev.Kind,
					playerIndex: idx,
					team:        ev.Team,
				})
			}
		}
	}

	sort.SliceStable(timeline, func(i, j int) bool { return timeline[i].time < timeline[j].time })

	state := &matchState{}
	for _, ev := range timeline {
		if ev.kind == events.KindQuit {
			// Early leavers invalidate their team slot.
			if ev.time < l.Duration-MinRankedDuration {
				switch ev.team {
				case events.TeamRed:
					redTeam = removeIndex(redTeam, ev.playerIndex)
				case events.TeamBlue:
					blueTeam = removeIndex(blueTeam, ev.playerIndex)
				}
			}
		}
		processStatEvent(ev, state, stats)
	}

	if len(redTeam) != TeamSize || len(blueTeam) != TeamSize {
		return nil, nil
	}

	return &MatchResult{
		MatchID:        id,
		Timestamp:      l.Date,
		MapID:          l.MapID,
		Duration:       l.Duration,
		CapDiff:        state.capDiff,
		GarbageCapDiff: state.garbageCapDiff,
		RedTeam:        redTeam,
		BlueTeam:       blueTeam,
		Stats:          stats,
	}, nil
}

// processStatEvent applies a single timeline event to the running stats.
func processStatEvent(ev relevantEvent, state *matchState, stats []RankedPlayerStats) {
	s := &stats[ev.playerIndex]

	switch ev.kind {
	case events.KindCapture:
		garbage := isGarbageTime(ev.time, state.capDiff)
		switch ev.team {
		case events.TeamRed:
			state.capDiff++
			if garbage && state.capDiff > 0 {
				state.garbageCapDiff++
				s.GarbageTimeCaps++
			}
		case events.TeamBlue:
			state.capDiff--
			if garbage && state.capDiff < 0 {
				state.garbageCapDiff--
				s.GarbageTimeCaps++
			}
		}
		s.Caps++
		s.holdStart = nil
		state.settleCarrier(ev.team, ev.time, stats)

	case events.KindGrab:
		t := ev.time
		s.holdStart = &t
		idx := ev.playerIndex
		switch ev.team {
		case events.TeamRed:
			state.redCarrier = &idx
			state.redGrabTime = &t
		case events.TeamBlue:
			state.blueCarrier = &idx
			state.blueGrabTime = &t
		}

	case events.KindDrop:
		if s.holdStart != nil {
			s.Hold += ev.time - *s.holdStart
			s.holdStart = nil
		}
		state.settleCarrier(ev.team, ev.time, stats)

	case events.KindReturn:
		s.Returns++
		// TODO: quick returns need per-team hold-start windows

	case events.KindTag:
		s.NonReturnTags++

	case events.KindPop:
		s.NonDropPops++

	case events.KindPowerup, events.KindDuplicatePowerup:
		s.Pups++

	case events.KindQuit:
		if s.holdStart != nil {
			s.Hold += ev.time - *s.holdStart
			s.holdStart = nil
		}
		// A quit pops the player as far as the stat line is concerned.
		s.NonDropPops++
	}
}

// settleCarrier closes out a flag-carry on the given team: if both flags
// were out, the overlapping span counts as head-to-head hold for both
// carriers.
func (st *matchState) settleCarrier(team events.Team, tick int, stats []RankedPlayerStats) {
	if team != events.TeamRed && team != events.TeamBlue {
		return
	}
	if st.redGrabTime != nil && st.blueGrabTime != nil &&
		st.redCarrier != nil && st.blueCarrier != nil {
		start := *st.redGrabTime
		if *st.blueGrabTime > start {
			start = *st.blueGrabTime
		}
		overlap := tick - start
		stats[*st.redCarrier].HeadToHeadHold += overlap
		stats[*st.blueCarrier].HeadToHeadHold += overlap
	}

	switch team {
	case events.TeamRed:
		st.redCarrier = nil
		st.redGrabTime = nil
	case events.TeamBlue:
		st.blueCarrier = nil
		st.blueGrabTime = nil
	}
}

// isGarbageTime reports whether a capture at the given tick, against the
// pre-capture score difference, only pads a decided game.
func isGarbageTime(tick, capDiff int) bool {
	for _, th := range garbageTimeThresholds {
		if tick > th.afterTick && (capDiff >= th.margin || capDiff <= -th.margin) {
			return true
		}
	}
	return false
}

func removeIndex(team []int, playerIndex int) []int {
	out := team[:0]
	for _, idx := range team {
		if idx != playerIndex {
			out = append(out, idx)
		}
	}
	return out
}
