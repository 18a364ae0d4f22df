package events

// Team identifies which side a player is on. The zero value means the
// player is a spectator or has not joined yet.
type Team int

const (
	TeamNone Team = 0
	TeamRed  Team = 1
	TeamBlue Team = 2
)

// String returns the string representation of the team
func (t Team) String() string {
	switch t {
	case TeamRed:
		return "red"
	case TeamBlue:
		return "blue"
	default:
		return "none"
	}
}

// Flag represents the flag a player is carrying, if any.
type Flag int

const (
	FlagNone           Flag = 0
	FlagOpponent       Flag = 1
	FlagOpponentPotato Flag = 2
	FlagNeutral        Flag = 3
	FlagNeutralPotato  Flag = 4
	FlagTemporary      Flag = 5
)

// Powerup is a single powerup bit. A player's active powerups are stored
// as a bitmask of these values.
type Powerup int

const (
	PowerupNone        Powerup = 0
	PowerupJukeJuice   Powerup = 1
	PowerupRollingBomb Powerup = 2
	PowerupTagPro      Powerup = 4
	PowerupTopSpeed    Powerup = 8
)

// String returns the string representation of the powerup
func (p Powerup) String() string {
	switch p {
	case PowerupJukeJuice:
		return "juke_juice"
	case PowerupRollingBomb:
		return "rolling_bomb"
	case PowerupTagPro:
		return "tagpro"
	case PowerupTopSpeed:
		return "top_speed"
	default:
		return "none"
	}
}

// Kind enumerates the event types that can be reconstructed from a
// player's packed event stream.
type Kind int

const (
	KindJoin Kind = iota
	KindQuit
	KindSwitch
	KindEnd
	KindGrab
	KindCapture
	KindFlaglessCapture
	KindPowerup
	KindDuplicatePowerup
	KindPowerdown
	KindReturn
	KindTag
	KindDrop
	KindPop
	KindStartPrevent
	KindStopPrevent
	KindStartButton
	KindStopButton
	KindStartBlock
	KindStopBlock
)

// String returns the string representation of the event kind
func (k Kind) String() string {
	names := [...]string{
		"join", "quit", "switch", "end", "grab", "capture",
		"flagless_capture", "powerup", "duplicate_powerup", "powerdown",
		"return", "tag", "drop", "pop", "start_prevent", "stop_prevent",
		"start_button", "stop_button", "start_block", "stop_block",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "unknown"
	}
	return names[k]
}

// PlayerEvent is a single reconstructed event on a player's timeline.
// Time is measured in server ticks (60 per second) since match start.
// Powerups is the bitmask of powerups held after the event applied.
type PlayerEvent struct {
	Kind     Kind
	Time     int
	Flag     Flag
	Powerups int
	Team     Team
}
