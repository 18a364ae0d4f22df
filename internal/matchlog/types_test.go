package matchlog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInRankedQueue(t *testing.T) {
	empty := ""
	private := "somegroup"

	tests := []struct {
		name  string
		group *string
		want  bool
	}{
		{"no group field", nil, false},
		{"empty group is the ranked queue", &empty, true},
		{"named group is a private game", &private, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Log{Group: tt.group}
			assert.Equal(t, tt.want, l.InRankedQueue())
		})
	}
}

func TestLogValidate(t *testing.T) {
	valid := testLog(28800)
	valid.Players = []Player{
		{Name: "SomeBall", Team: 1, Events: "AAAA"},
		{Name: "OtherBall", Team: 2, Events: ""},
	}

	t.Run("valid log", func(t *testing.T) {
		l := valid
		assert.NoError(t, l.Validate())
	})

	t.Run("missing player name", func(t *testing.T) {
		l := valid
		l.Players = []Player{{Name: "", Team: 1, Events: "AAAA"}}
		assert.Error(t, l.Validate())
	})

	t.Run("team out of range", func(t *testing.T) {
		l := valid
		l.Players = []Player{{Name: "SomeBall", Team: 3, Events: "AAAA"}}
		assert.Error(t, l.Validate())
	})

	t.Run("events not base64", func(t *testing.T) {
		l := valid
		l.Players = []Player{{Name: "SomeBall", Team: 1, Events: "%%%"}}
		assert.Error(t, l.Validate())
	})

	t.Run("zero duration", func(t *testing.T) {
		l := valid
		l.Duration = 0
		assert.Error(t, l.Validate())
	})
}

func TestLogJSONRoundTrip(t *testing.T) {
	raw := `{
		"server": "pie",
		"port": 8000,
		"official": true,
		"group": "",
		"date": 1600000000000,
		"timeLimit": 8,
		"duration": 28800,
		"finished": true,
		"mapId": 74,
		"players": [
			{"auth": true, "name": "SomeBall", "flair": 2, "degree": 100,
			 "score": 10, "points": 20, "team": 1, "events": "AAAA"}
		],
		"teams": [
			{"name": "Red", "score": 3, "splats": ""},
			{"name": "Blue", "score": 1, "splats": ""}
		]
	}`

	var l Log
	require.NoError(t, json.Unmarshal([]byte(raw), &l))
	assert.True(t, l.InRankedQueue())
	assert.Equal(t, 8.0, l.TimeLimit)
	require.Len(t, l.Players, 1)
	assert.Equal(t, "SomeBall", l.Players[0].Name)
	assert.Equal(t, 1, l.Players[0].Team)
	assert.Equal(t, "Red", l.Teams[0].Name)
}
