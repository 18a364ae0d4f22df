// Package events decodes the packed per-player event streams embedded in
// TagPro match logs. Each player's events are a base64 blob holding a
// bit-level encoding of everything that happened to that player during a
// match: team changes, grabs, captures, tags, returns, powerup pickups
// and losses, and prevent/button/block toggles.
package events

import (
	"encoding/base64"
	"fmt"
)

// Reader decodes a single player's packed event stream.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a reader for a base64-encoded event stream.
func NewReader(encoded string) (*Reader, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode event stream: %w", err)
	}
	return &Reader{data: data}, nil
}

// remaining reports whether any unread bits are left in the stream.
func (r *Reader) remaining() bool {
	return r.pos>>3 < len(r.data)
}

// readBool reads a single bit. Reads past the end of the stream yield
// false without advancing, mirroring the encoder's implicit zero padding.
func (r *Reader) readBool() bool {
	if !r.remaining() {
		return false
	}
	bit := (r.data[r.pos>>3] >> (7 - (r.pos & 7))) & 1
	r.pos++
	return bit == 1
}

// readFixed reads n bits as an unsigned integer, most significant bit first.
func (r *Reader) readFixed(n int) int {
	result := 0
	for i := 0; i < n; i++ {
		result <<= 1
		if r.readBool() {
			result |= 1
		}
	}
	return result
}

// readTally counts consecutive set bits up to the first zero bit.
func (r *Reader) readTally() int {
	result := 0
	for r.readBool() {
		result++
	}
	return result
}

// readFooter reads a variable-width integer. A 2-bit size code selects how
// many whole extra bytes follow the bits left in the current byte, and the
// decoded value is offset by the minimum value that would have required
// that width. This is the time-delta encoding between event groups.
func (r *Reader) readFooter() int {
	size := r.readFixed(2) << 3
	free := (8 - (r.pos & 7)) & 7
	size |= free
	minimum := 0
	for free < size {
		minimum += 1 << free
		free += 8
	}
	return r.readFixed(size) + minimum
}

// PlayerEvents reconstructs the player's full event timeline. team is the
// team recorded in the match log for this player and duration is the match
// length in ticks; a final End event at the match duration is always
// appended.
func (r *Reader) PlayerEvents(team Team, duration int) []PlayerEvent {
	var (
		time       int
		flag       = FlagNone
		powerups   int
		preventing bool
		buttoning  bool
		blocking   bool
	)

	r.pos = 0
	var evts []PlayerEvent

	for r.remaining() {
		newTeam := team
		if r.readBool() {
			switched := r.readBool()
			switch {
			case team == TeamNone && !switched:
				newTeam = TeamRed
			case team == TeamNone && switched:
				newTeam = TeamBlue
			case team == TeamRed && !switched:
				newTeam = TeamBlue
			case team == TeamBlue && !switched:
				newTeam = TeamRed
			default:
				newTeam = TeamNone
			}
		}

		popOccurred := r.readBool()
		numReturns := r.readTally()
		numTags := r.readTally()
		grabOccurred := flag == FlagNone && r.readBool()
		numCaptures := r.readTally()

		// Order matters: the keep bit is only present when a capture
		// happened while holding (or just grabbing) a flag.
		flagKept := !popOccurred && newTeam != TeamNone &&
			(numCaptures == 0 || (flag == FlagNone && !grabOccurred) || r.readBool())
		newFlag := flag
		if grabOccurred {
			if flagKept {
				newFlag = Flag(1 + r.readFixed(2))
			} else {
				newFlag = FlagTemporary
			}
		}

		numNewPowerups := r.readTally()
		powerupsGained := 0
		powerupsLost := 0
		for i := 1; i < 16; i <<= 1 {
			if powerups&i != 0 {
				if r.readBool() {
					powerupsLost |= i
				}
			} else if numNewPowerups != 0 && r.readBool() {
				powerupsGained |= i
				numNewPowerups--
			}
		}

		togglePreventing := r.readBool()
		toggleButtoning := r.readBool()
		toggleBlocking := r.readBool()
		time += 1 + r.readFooter()

		if team == TeamNone && newTeam != TeamNone {
			team = newTeam
			evts = append(evts, PlayerEvent{KindJoin, time, flag, powerups, team})
		}
		for i := 0; i < numReturns; i++ {
			evts = append(evts, PlayerEvent{KindReturn, time, flag, powerups, team})
		}
		for i := 0; i < numTags; i++ {
			evts = append(evts, PlayerEvent{KindTag, time, flag, powerups, team})
		}
		if grabOccurred {
			flag = newFlag
			evts = append(evts, PlayerEvent{KindGrab, time, flag, powerups, team})
		}
		for numCaptures > 0 {
			numCaptures--
			if flagKept || flag == FlagNone {
				evts = append(evts, PlayerEvent{KindFlaglessCapture, time, flag, powerups, team})
			} else {
				evts = append(evts, PlayerEvent{KindCapture, time, flag, powerups, team})
				flag = FlagNone
				flagKept = true
			}
		}

		for i := 1; i < 16; i <<= 1 {
			if powerupsLost&i != 0 {
				powerups ^= i
				evts = append(evts, PlayerEvent{KindPowerdown, time, flag, powerups, team})
			} else if powerupsGained&i != 0 {
				powerups |= i
				evts = append(evts, PlayerEvent{KindPowerup, time, flag, powerups, team})
			}
		}
		for i := 0; i < numNewPowerups; i++ {
			evts = append(evts, PlayerEvent{KindDuplicatePowerup, time, flag, powerups, team})
		}

		if togglePreventing {
			if preventing {
				evts = append(evts, PlayerEvent{KindStopPrevent, time, flag, powerups, team})
			} else {
				evts = append(evts, PlayerEvent{KindStartPrevent, time, flag, powerups, team})
			}
			preventing = !preventing
		}
		if toggleButtoning {
			if buttoning {
				evts = append(evts, PlayerEvent{KindStopButton, time, flag, powerups, team})
			} else {
				evts = append(evts, PlayerEvent{KindStartButton, time, flag, powerups, team})
			}
			buttoning = !buttoning
		}
		if toggleBlocking {
			if blocking {
				evts = append(evts, PlayerEvent{KindStopBlock, time, flag, powerups, team})
			} else {
				evts = append(evts, PlayerEvent{KindStartBlock, time, flag, powerups, team})
			}
			blocking = !blocking
		}

		if popOccurred {
			if flag != FlagNone {
				evts = append(evts, PlayerEvent{KindDrop, time, flag, powerups, team})
				flag = FlagNone
			} else {
				evts = append(evts, PlayerEvent{KindPop, time, flag, powerups, team})
			}
		}

		switch {
		case newTeam == team:
			// no change
		case newTeam == TeamNone:
			evts = append(evts, PlayerEvent{KindQuit, time, flag, powerups, team})
			flag = FlagNone
			powerups = 0
		default:
			evts = append(evts, PlayerEvent{KindSwitch, time, flag, powerups, team})
			flag = FlagNone
		}
	}

	evts = append(evts, PlayerEvent{KindEnd, duration, flag, powerups, team})
	return evts
}
