package picks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []GameRow {
	return []GameRow{
		{
			"season": "2024", "Week": "1", "Date": "2024-09-08", "At": "",
			"Winner/tie": "Baltimore Ravens", "Loser/tie": "Houston Texans",
			"Points_Winner": "27", "Points_Loser": "13",
		},
		{
			"season": "2024", "Week": "1", "Date": "2024-09-08", "At": "@",
			"Winner/tie": "Denver Broncos", "Loser/tie": "Las Vegas Raiders",
			"Points_Winner": "20", "Points_Loser": "16",
		},
	}
}

func TestWriteAndRebuildHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "historical_results.csv")
	require.NoError(t, WriteHistory(path, sampleRows()))

	// The written file feeds straight back into the rating builder
	r, err := BuildRatings(path)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Len())
	assert.Greater(t, r.Get("Baltimore Ravens"), r.Get("Houston Texans"))
}

func TestAppendWeekDeduplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "historical_results.csv")
	require.NoError(t, WriteHistory(path, sampleRows()))

	// Appending the same games again adds nothing
	added, err := AppendWeek(path, sampleRows())
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	// A new game goes through, a repeat in the same batch does not
	rows := []GameRow{
		{
			"season": "2024", "Week": "2", "Date": "2024-09-15", "At": "",
			"Winner/tie": "Baltimore Ravens", "Loser/tie": "Cincinnati Bengals",
			"Points_Winner": "31", "Points_Loser": "28",
		},
		sampleRows()[0],
	}
	added, err = AppendWeek(path, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	r, err := BuildRatings(path)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Len())
}

func TestAppendWeekMissingFile(t *testing.T) {
	_, err := AppendWeek(filepath.Join(t.TempDir(), "missing.csv"), sampleRows())
	assert.Error(t, err)
}

func TestFindHistoricalCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.csv")
	require.NoError(t, os.WriteFile(path, []byte("Winner/tie,Loser/tie\n"), 0644))

	orig := Config.HistoricalCSVPath
	Config.HistoricalCSVPath = path
	defer func() { Config.HistoricalCSVPath = orig }()

	found, err := FindHistoricalCSV()
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFindHistoricalCSVNotFound(t *testing.T) {
	orig := Config.HistoricalCSVPath
	Config.HistoricalCSVPath = filepath.Join(t.TempDir(), "nope.csv")
	defer func() { Config.HistoricalCSVPath = orig }()

	_, err := FindHistoricalCSV()
	assert.Error(t, err)
}
