package journal

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()

	var r io.Reader = fh
	if filepath.Ext(path) == ".xz" {
		r, err = xz.NewReader(fh)
		require.NoError(t, err)
	}

	recs, err := csv.NewReader(r).ReadAll()
	require.NoError(t, err)
	return recs
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runsPath := filepath.Join(dir, "runs.csv")
	tradesPath := filepath.Join(dir, "trades.csv")

	j, err := NewCSV(runsPath, tradesPath)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.Equal(t, [][]string{runsHeader}, readCSV(t, runsPath))
	assert.Equal(t, [][]string{tradesHeader}, readCSV(t, tradesPath))
}

func TestCSVJournalRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ext  string
	}{
		{"plain", ".csv"},
		{"xz", ".csv.xz"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			runsPath := filepath.Join(dir, "runs"+tt.ext)
			tradesPath := filepath.Join(dir, "trades"+tt.ext)

			j, err := NewCSV(runsPath, tradesPath)
			require.NoError(t, err)

			run, trades := testRun(t, "01HCSV", 9)
			require.NoError(t, Record(j, run, trades))
			require.NoError(t, j.Close())

			runs := readCSV(t, runsPath)
			require.Len(t, runs, 2)
			assert.Equal(t, "01HCSV", runs[1][0])
			assert.Equal(t, "2024-03-15T10:30:00Z", runs[1][1])
			assert.Equal(t, "9", runs[1][2])
			assert.Equal(t, "1000.000000", runs[1][3])
			assert.Equal(t, "6", runs[1][7])

			rows := readCSV(t, tradesPath)
			require.Len(t, rows, len(trades)+1)
			for i, tr := range trades {
				row := rows[i+1]
				assert.Equal(t, "01HCSV", row[0])
				assert.Equal(t, tr.Outcome.String(), row[2])
			}
			assert.Equal(t, "1", rows[1][1])
		})
	}
}

func TestCSVJournalBadPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewCSV(filepath.Join(dir, "runs.csv"), filepath.Join(dir, "missing", "trades.csv"))
	assert.Error(t, err)
}
