package pupreport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pup_times.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, `match_id,timestamp,map,player,pup_type,time
m1,1600000000000,74,"Some Ball",jj,30
m1,1600000000000,74,"Some Ball",rb,3700
m2,1600000000001,74,"other,ball",tp,28900
`)

	d, err := Load(path)
	require.NoError(t, err)
	require.Len(t, d.Pickups, 3)

	first := d.Pickups[0]
	assert.Equal(t, "m1", first.MatchID)
	assert.Equal(t, "Some Ball", first.Player)
	assert.Equal(t, JukeJuice, first.Type)
	assert.Equal(t, 30, first.Time)
	assert.InDelta(t, 0.5, first.Delay, 1e-9)
	assert.Equal(t, Round(0), first.Round)

	second := d.Pickups[1]
	assert.Equal(t, RollingBomb, second.Type)
	assert.InDelta(t, 100.0/60.0, second.Delay, 1e-9)
	assert.Equal(t, Round(1), second.Round)

	third := d.Pickups[2]
	assert.Equal(t, "other,ball", third.Player, "quoted fields survive")
	assert.Equal(t, RoundOverflow, third.Round)
}

func TestLoadColumnsByName(t *testing.T) {
	// Column positions don't matter, only the header names.
	path := writeCSV(t, `time,pup_type,player,match_id
30,jj,alice,m1
`)

	d, err := Load(path)
	require.NoError(t, err)
	require.Len(t, d.Pickups, 1)
	assert.Equal(t, "alice", d.Pickups[0].Player)
	assert.Equal(t, 30, d.Pickups[0].Time)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("missing column", func(t *testing.T) {
		path := writeCSV(t, "match_id,player,time\nm1,alice,30\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pup_type")
	})

	t.Run("unparsable time", func(t *testing.T) {
		path := writeCSV(t, "match_id,player,pup_type,time\nm1,alice,jj,soon\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("unknown pup code", func(t *testing.T) {
		path := writeCSV(t, "match_id,player,pup_type,time\nm1,alice,zz,30\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown pup_type code")
	})
}

func TestLoadEmptyDataset(t *testing.T) {
	path := writeCSV(t, "match_id,player,pup_type,time\n")
	d, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, d.Pickups)
}
