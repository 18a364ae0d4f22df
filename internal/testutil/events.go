// Package testutil provides test fixtures shared across packages, most
// importantly a builder that assembles packed player event streams in the
// match-log bit encoding.
package testutil

import (
	"encoding/base64"

	"tagstats/internal/events"
)

// GroupSpec describes one event group: everything that happens to a player
// on a single tick. Fields appear in stream order.
type GroupSpec struct {
	ChangeTeam bool // emit the team-change marker
	SwitchBit  bool // second team-change bit

	Pop     bool
	Returns int
	Tags    int

	Grab        bool // honored only while the player holds no flag
	Captures    int
	Keep        bool        // keep-flag bit, when the stream carries one
	GrabbedFlag events.Flag // flag type picked up on a kept grab

	NewPowerups       []events.Powerup // powerups gained this tick
	DuplicatePowerups int              // pickups of already-held powerups
	LostPowerups      int              // mask of powerups lost this tick

	TogglePrevent bool
	ToggleButton  bool
	ToggleBlock   bool

	TimeDelta int // footer value; the decoder advances 1 + TimeDelta ticks
}

// EventStream builds a packed event stream group by group. It tracks the
// same team/flag/powerup state machine as the decoder so that conditional
// bits land exactly where the decoder expects them.
type EventStream struct {
	data []byte
	pos  int

	team     events.Team
	flag     events.Flag
	powerups int
}

// NewEventStream starts a stream for a player whose match log records the
// given team.
func NewEventStream(team events.Team) *EventStream {
	return &EventStream{team: team, flag: events.FlagNone}
}

// Encode returns the stream as the base64 blob a match log would carry.
func (s *EventStream) Encode() string {
	return base64.StdEncoding.EncodeToString(s.data)
}

// AddGroup appends one event group.
func (s *EventStream) AddGroup(g GroupSpec) *EventStream {
	newTeam := s.team
	s.writeBool(g.ChangeTeam)
	if g.ChangeTeam {
		s.writeBool(g.SwitchBit)
		switch {
		case s.team == events.TeamNone && !g.SwitchBit:
			newTeam = events.TeamRed
		case s.team == events.TeamNone && g.SwitchBit:
			newTeam = events.TeamBlue
		case s.team == events.TeamRed && !g.SwitchBit:
			newTeam = events.TeamBlue
		case s.team == events.TeamBlue && !g.SwitchBit:
			newTeam = events.TeamRed
		default:
			newTeam = events.TeamNone
		}
	}

	s.writeBool(g.Pop)
	s.writeTally(g.Returns)
	s.writeTally(g.Tags)

	grab := false
	if s.flag == events.FlagNone {
		s.writeBool(g.Grab)
		grab = g.Grab
	}
	s.writeTally(g.Captures)

	kept := false
	if !g.Pop && newTeam != events.TeamNone {
		if g.Captures == 0 || (s.flag == events.FlagNone && !grab) {
			kept = true
		} else {
			s.writeBool(g.Keep)
			kept = g.Keep
		}
	}
	newFlag := s.flag
	if grab {
		if kept {
			s.writeFixed(2, int(g.GrabbedFlag)-1)
			newFlag = g.GrabbedFlag
		} else {
			newFlag = events.FlagTemporary
		}
	}

	gainMask := 0
	for _, p := range g.NewPowerups {
		gainMask |= int(p)
	}
	remaining := len(g.NewPowerups) + g.DuplicatePowerups
	s.writeTally(remaining)
	for i := 1; i < 16; i <<= 1 {
		if s.powerups&i != 0 {
			s.writeBool(g.LostPowerups&i != 0)
		} else if remaining != 0 {
			gainBit := gainMask&i != 0
			s.writeBool(gainBit)
			if gainBit {
				remaining--
			}
		}
	}

	s.writeBool(g.TogglePrevent)
	s.writeBool(g.ToggleButton)
	s.writeBool(g.ToggleBlock)
	s.writeFooter(g.TimeDelta)

	// State transitions mirror the decoder.
	if grab {
		s.flag = newFlag
	}
	if g.Captures > 0 && !kept && s.flag != events.FlagNone {
		s.flag = events.FlagNone
	}
	s.powerups ^= g.LostPowerups & s.powerups
	s.powerups |= gainMask
	if g.Pop && s.flag != events.FlagNone {
		s.flag = events.FlagNone
	}
	switch {
	case s.team == events.TeamNone && newTeam != events.TeamNone:
		s.team = newTeam
	case newTeam == s.team:
	case newTeam == events.TeamNone:
		s.flag = events.FlagNone
		s.powerups = 0
	default:
		s.flag = events.FlagNone
	}
	return s
}

func (s *EventStream) writeBool(b bool) {
	if s.pos>>3 >= len(s.data) {
		s.data = append(s.data, 0)
	}
	if b {
		s.data[s.pos>>3] |= 1 << (7 - (s.pos & 7))
	}
	s.pos++
}

func (s *EventStream) writeFixed(n, value int) {
	for i := n - 1; i >= 0; i-- {
		s.writeBool(value>>i&1 == 1)
	}
}

func (s *EventStream) writeTally(n int) {
	for i := 0; i < n; i++ {
		s.writeBool(true)
	}
	s.writeBool(false)
}

// writeFooter emits the variable-width time delta: a 2-bit count of extra
// whole bytes, then the value (minus the width's minimum) in the bits left
// in the current byte plus those extra bytes.
func (s *EventStream) writeFooter(value int) {
	free := (8 - ((s.pos + 2) & 7)) & 7
	for extra := 0; extra <= 3; extra++ {
		size := extra<<3 | free
		minimum := 0
		for f := free; f < size; f += 8 {
			minimum += 1 << f
		}
		limit := 1 << size
		if value >= minimum && value-minimum < limit {
			s.writeFixed(2, extra)
			s.writeFixed(size, value-minimum)
			return
		}
	}
	panic("time delta too large for footer encoding")
}
