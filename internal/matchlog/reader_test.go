package matchlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMatchFile(t *testing.T, dir string, index int, logs map[string]Log) {
	t.Helper()
	data, err := json.Marshal(logs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(FilePath(dir, index), data, 0o644))
}

func testLog(duration int) Log {
	group := ""
	return Log{
		Server:    "pie",
		Port:      8000,
		Official:  true,
		Group:     &group,
		Date:      1600000000000,
		TimeLimit: 8.0,
		Duration:  duration,
		Finished:  true,
		MapID:     74,
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	writeMatchFile(t, dir, 0, map[string]Log{
		"bbb": testLog(20000),
		"aaa": testLog(30000),
	})

	matches, err := ReadFile(FilePath(dir, 0))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "aaa", matches[0].ID, "matches sorted by id")
	assert.Equal(t, "bbb", matches[1].ID)
	assert.Equal(t, 30000, matches[0].Log.Duration)
}

func TestReadFileMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(FilePath(dir, 3), []byte("{truncated"), 0o644))

	_, err := ReadFile(FilePath(dir, 3))
	assert.Error(t, err)
}

func TestFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "matches7.json"), FilePath("data", 7))
}

func TestWalk(t *testing.T) {
	t.Run("skips missing files in a bounded range", func(t *testing.T) {
		dir := t.TempDir()
		writeMatchFile(t, dir, 0, map[string]Log{"m0": testLog(20000)})
		writeMatchFile(t, dir, 2, map[string]Log{"m2": testLog(20000)})

		var ids []string
		err := Walk(dir, 0, 3, func(id string, l Log) error {
			ids = append(ids, id)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"m0", "m2"}, ids)
	})

	t.Run("open-ended walk stops at the first gap", func(t *testing.T) {
		dir := t.TempDir()
		writeMatchFile(t, dir, 0, map[string]Log{"m0": testLog(20000)})
		writeMatchFile(t, dir, 1, map[string]Log{"m1": testLog(20000)})
		writeMatchFile(t, dir, 3, map[string]Log{"m3": testLog(20000)})

		var ids []string
		err := Walk(dir, 0, 0, func(id string, l Log) error {
			ids = append(ids, id)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"m0", "m1"}, ids)
	})

	t.Run("fn errors abort with match id context", func(t *testing.T) {
		dir := t.TempDir()
		writeMatchFile(t, dir, 0, map[string]Log{"bad": testLog(20000)})

		err := Walk(dir, 0, 1, func(id string, l Log) error {
			return assert.AnError
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad")
	})
}
