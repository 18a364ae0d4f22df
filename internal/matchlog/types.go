package matchlog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Log is one match as recorded by the TagPro event logger. Durations and
// event times are in server ticks (60 per second); Date is a unix
// timestamp in milliseconds.
type Log struct {
	Server    string   `json:"server"`
	Port      int      `json:"port"`
	Official  bool     `json:"official"`
	Group     *string  `json:"group"`
	Date      int      `json:"date" validate:"gte=0"`
	TimeLimit float64  `json:"timeLimit" validate:"gt=0"`
	Duration  int      `json:"duration" validate:"gt=0"`
	Finished  bool     `json:"finished"`
	MapID     int      `json:"mapId" validate:"gte=0"`
	Players   []Player `json:"players" validate:"dive"`
	Teams     [2]Side  `json:"teams"`
}

// Player is one participant in a match. Events holds the player's packed
// event stream as base64 (see the events package).
type Player struct {
	Auth   bool   `json:"auth"`
	Name   string `json:"name" validate:"required"`
	Flair  int    `json:"flair"`
	Degree int    `json:"degree"`
	Score  int    `json:"score"`
	Points int    `json:"points"`
	Team   int    `json:"team" validate:"gte=0,lte=2"`
	Events string `json:"events" validate:"omitempty,base64"`
}

// Side is one of the two teams' summary entries in a match log.
type Side struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Splats string `json:"splats"`
}

// InRankedQueue reports whether the match came through the ranked queue.
// Ranked matches carry an empty group string; private groups a non-empty
// one; pure pubs carry none at all.
func (l *Log) InRankedQueue() bool {
	return l.Group != nil && *l.Group == ""
}

var validate = validator.New()

// Validate checks structural invariants of a decoded match log.
func (l *Log) Validate() error {
	if err := validate.Struct(l); err != nil {
		return fmt.Errorf("validate match log: %w", err)
	}
	return nil
}
