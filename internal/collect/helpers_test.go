package collect_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"tagstats/internal/events"
	"tagstats/internal/matchlog"
	"tagstats/internal/testutil"
)

const (
	testDate     = 1600000000000
	testMapID    = 74
	testDuration = 28800
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rankedLog(players []matchlog.Player) matchlog.Log {
	group := ""
	return matchlog.Log{
		Server:    "pie",
		Port:      8000,
		Official:  true,
		Group:     &group,
		Date:      testDate,
		TimeLimit: 8.0,
		Duration:  testDuration,
		Finished:  true,
		MapID:     testMapID,
		Players:   players,
		Teams: [2]matchlog.Side{
			{Name: "Red", Score: 2},
			{Name: "Blue", Score: 1},
		},
	}
}

// fillerPlayer pads a lineup out to a 4v4 with a single tag event.
func fillerPlayer(name string, team int) matchlog.Player {
	stream := testutil.NewEventStream(events.Team(team)).
		AddGroup(testutil.GroupSpec{Tags: 1, TimeDelta: 0})
	return matchlog.Player{Name: name, Auth: true, Team: team, Events: stream.Encode()}
}

func fillLineup(players []matchlog.Player) []matchlog.Player {
	red, blue := 0, 0
	for _, p := range players {
		switch p.Team {
		case 1:
			red++
		case 2:
			blue++
		}
	}
	for i := red; i < 4; i++ {
		players = append(players, fillerPlayer("RedFill"+string(rune('A'+i)), 1))
	}
	for i := blue; i < 4; i++ {
		players = append(players, fillerPlayer("BlueFill"+string(rune('A'+i)), 2))
	}
	return players
}

func writeMatchFile(t *testing.T, dir string, index int, logs map[string]matchlog.Log) {
	t.Helper()
	data, err := json.Marshal(logs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(matchlog.FilePath(dir, index), data, 0o644))
}
