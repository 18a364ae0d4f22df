package pupreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePupCode(t *testing.T) {
	tests := []struct {
		code    string
		want    PupType
		wantErr bool
	}{
		{"jj", JukeJuice, false},
		{"rb", RollingBomb, false},
		{"tp", TagPro, false},
		{"xx", 0, true},
		{"JJ", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParsePupCode(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown pup_type code")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPupTypeString(t *testing.T) {
	assert.Equal(t, "Juke Juice", JukeJuice.String())
	assert.Equal(t, "Rolling Bomb", RollingBomb.String())
	assert.Equal(t, "TagPro", TagPro.String())
}

func TestRoundOf(t *testing.T) {
	tests := []struct {
		tick int
		want Round
	}{
		{0, 0},
		{3599, 0},
		{3600, 1},
		{7199, 1},
		{7200, 2},
		{7 * RoundTicks, 7},
		{8*RoundTicks - 1, 7},
		{8 * RoundTicks, RoundOverflow},
		{100 * RoundTicks, RoundOverflow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundOf(tt.tick), "tick %d", tt.tick)
	}
}

func TestRoundOrdering(t *testing.T) {
	// The overflow round sorts after every numbered round, so a numeric
	// cutoff at MaxNumberedRound excludes it.
	for r := Round(0); r <= MaxNumberedRound; r++ {
		assert.Less(t, r, RoundOverflow)
	}
	assert.Greater(t, RoundOverflow, Round(MaxNumberedRound))
}

func TestRoundLabel(t *testing.T) {
	assert.Equal(t, "Round 0", Round(0).Label())
	assert.Equal(t, "Round 7", Round(7).Label())
	assert.Equal(t, "8+", RoundOverflow.Label())
}

func TestDelayOf(t *testing.T) {
	tests := []struct {
		tick int
		want float64
	}{
		{0, 0},
		{30, 0.5},
		{60, 1.0},
		{3599, 59.983333},
		{3600, 0},
		{3700, 1.666667},
		{7300, 1.666667},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, DelayOf(tt.tick), 1e-5, "tick %d", tt.tick)
	}
}
