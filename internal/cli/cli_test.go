package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeConfig writes a config that journals to a fresh SQLite file.
func writeConfig(t *testing.T, extra string) (cfgPath, dbPath string) {
	t.Helper()

	dir := t.TempDir()
	dbPath = filepath.Join(dir, "journal.sqlite")
	cfgPath = filepath.Join(dir, "tradesim.yaml")
	body := "journal:\n  type: sqlite\n  db_path: " + dbPath + "\nlogging:\n  level: warn\n" + extra
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	return cfgPath, dbPath
}

var runIDPattern = regexp.MustCompile(`Run ID:\s+([0-9A-Z]{26})`)

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tradesim dev\n", out)
}

func TestRunAllWins(t *testing.T) {
	cfg, _ := writeConfig(t, "")

	out, _, err := execute(t, "--config", cfg, "run", "--journal", "none",
		"--balance", "1000", "--win-rate", "100", "--take-profit", "10", "--stop-loss", "5",
		"--trades", "3", "--market-fee", "0", "--seed", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "1100")
	assert.Contains(t, out, "1210")
	assert.Contains(t, out, "+1331 USD")
	assert.Contains(t, out, "End Balance:   1331.00")
	assert.Contains(t, out, "Seed:          1")
}

func TestRunQuiet(t *testing.T) {
	cfg, _ := writeConfig(t, "")

	out, _, err := execute(t, "--config", cfg, "run", "--journal", "none", "--win-rate", "0",
		"--trades", "5", "--market-fee", "0", "--quiet")
	require.NoError(t, err)

	assert.NotContains(t, out, "New Balance")
	assert.Contains(t, out, "End Balance:   773.00")
	assert.Contains(t, out, "Wins:          0")
}

func TestRunIsReproducible(t *testing.T) {
	cfg, _ := writeConfig(t, "seed: 99\n")

	first, _, err := execute(t, "--config", cfg, "run", "--journal", "none")
	require.NoError(t, err)
	second, _, err := execute(t, "--config", cfg, "run", "--journal", "none")
	require.NoError(t, err)

	strip := func(s string) string { return runIDPattern.ReplaceAllString(s, "") }
	assert.Equal(t, strip(first), strip(second))
	assert.Contains(t, first, "Seed:          99")
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	cfg, _ := writeConfig(t, "")

	_, _, err := execute(t, "--config", cfg, "run", "--journal", "none", "--win-rate", "150")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "win_rate must be <= 100")
}

func TestRunJournalRoundTrip(t *testing.T) {
	cfg, _ := writeConfig(t, "")

	out, _, err := execute(t, "--config", cfg, "run", "--trades", "4", "--seed", "7")
	require.NoError(t, err)

	m := runIDPattern.FindStringSubmatch(out)
	require.Len(t, m, 2)
	runID := m[1]

	list, _, err := execute(t, "--config", cfg, "journal", "runs")
	require.NoError(t, err)
	assert.Contains(t, list, "RUN ID")
	assert.Contains(t, list, runID)

	show, _, err := execute(t, "--config", cfg, "journal", "show", runID)
	require.NoError(t, err)
	assert.Contains(t, show, "Run ID:        "+runID)
	assert.Contains(t, show, "Seed:          7")
	assert.Contains(t, show, "Trades:        4")

	org, _, err := execute(t, "--config", cfg, "journal", "org", runID)
	require.NoError(t, err)
	assert.Contains(t, org, ":RUN_ID:      "+runID)
	assert.Contains(t, org, ":SEED:        7")

	_, _, err = execute(t, "--config", cfg, "journal", "show", "missing")
	assert.ErrorContains(t, err, "not found")
}

func TestDBFlagOverridesConfig(t *testing.T) {
	cfg, _ := writeConfig(t, "")
	other := filepath.Join(t.TempDir(), "other.sqlite")

	_, _, err := execute(t, "--config", cfg, "--db", other, "run", "--trades", "2")
	require.NoError(t, err)

	list, _, err := execute(t, "--config", cfg, "journal", "runs")
	require.NoError(t, err)
	assert.Contains(t, list, "No runs recorded.")

	list, _, err = execute(t, "--config", cfg, "--db", other, "journal", "runs")
	require.NoError(t, err)
	assert.Contains(t, list, "RUN ID")
}

func TestRunCSVJournal(t *testing.T) {
	dir := t.TempDir()
	cfg, _ := writeConfig(t, "")
	t.Setenv("TRADESIM_JOURNAL_RUNS_FILE", filepath.Join(dir, "runs.csv"))
	t.Setenv("TRADESIM_JOURNAL_TRADES_FILE", filepath.Join(dir, "trades.csv"))

	_, _, err := execute(t, "--config", cfg, "run", "--journal", "csv", "--trades", "3")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "trades.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 4)
}

func TestLogLevelFlag(t *testing.T) {
	cfg, _ := writeConfig(t, "")

	_, stderr, err := execute(t, "--config", cfg, "--log-level", "debug", "run", "--journal", "none", "--trades", "2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "simulation finished")
	assert.Contains(t, stderr, "trade")

	_, stderr, err = execute(t, "--config", cfg, "run", "--journal", "none", "--trades", "2")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestBatch(t *testing.T) {
	cfg, _ := writeConfig(t, "")

	out, _, err := execute(t, "--config", cfg, "batch", "--runs", "20", "--workers", "3",
		"--seed", "5", "--trades", "10", "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Runs:          20")
	assert.Contains(t, out, "Base Seed:     5")

	again, _, err := execute(t, "--config", cfg, "batch", "--runs", "20", "--workers", "1",
		"--seed", "5", "--trades", "10", "--no-progress")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestBatchRejectsZeroRuns(t *testing.T) {
	cfg, _ := writeConfig(t, "")

	_, _, err := execute(t, "--config", cfg, "batch", "--runs", "0", "--no-progress")
	assert.Error(t, err)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")

	out, _, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")
	assert.FileExists(t, path)

	out, _, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Journal: sqlite")
}

func TestConfigValidateFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  win_rate: 200\n"), 0o644))

	_, _, err := execute(t, "config", "validate", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestConfigSchema(t *testing.T) {
	out, _, err := execute(t, "config", "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "tradesim-config", schema["title"])
	assert.Contains(t, out, "win_rate")
}

func TestBadConfigPath(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	assert.ErrorContains(t, err, "load config")
}
