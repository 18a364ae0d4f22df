package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "table.csv")
	err := WriteCSV(path, WriteOptions{
		Headers: []string{"player", "count"},
		Records: [][]string{
			{"alice", "7"},
			{"some,ball", "3"},
		},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "player,count\nalice,7\n\"some,ball\",3\n", string(data))
}

func TestWriteCSVNoBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, WriteCSV(path, WriteOptions{Headers: []string{"a"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, byte('a'), data[0], "output starts with content, no byte-order mark")
}

func TestWriteCSVAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, WriteCSV(path, WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "2"}},
	}))
	require.NoError(t, WriteCSV(path, WriteOptions{
		Append:  true,
		Records: [][]string{{"3", "4"}},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n3,4\n", string(data))
}
