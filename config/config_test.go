package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, 1000.0, cfg.Simulation.StartBalance)
	assert.Equal(t, 50.0, cfg.Simulation.WinRate)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "win rate above 100",
			mutate:  func(c *Config) { c.Simulation.WinRate = 101 },
			wantErr: true,
			errMsg:  "simulation.win_rate must be <= 100",
		},
		{
			name:    "negative balance",
			mutate:  func(c *Config) { c.Simulation.StartBalance = -1 },
			wantErr: true,
			errMsg:  "simulation.start_balance must be >= 0",
		},
		{
			name:    "negative trade count",
			mutate:  func(c *Config) { c.Simulation.TradeCount = -5 },
			wantErr: true,
			errMsg:  "simulation.trade_count must be >= 0",
		},
		{
			name:    "zero trade count is fine",
			mutate:  func(c *Config) { c.Simulation.TradeCount = 0 },
			wantErr: false,
		},
		{
			name:    "negative fee",
			mutate:  func(c *Config) { c.Simulation.MarketOrderFeeRate = -0.1 },
			wantErr: true,
			errMsg:  "simulation.market_order_fee_rate must be >= 0",
		},
		{
			name:    "unknown journal type",
			mutate:  func(c *Config) { c.Journal.Type = "postgres" },
			wantErr: true,
			errMsg:  "journal.type must be one of [none csv sqlite]",
		},
		{
			name: "csv without files",
			mutate: func(c *Config) {
				c.Journal = JournalConfig{Type: "csv", RunsFile: "runs.csv"}
			},
			wantErr: true,
			errMsg:  "journal runs_file and trades_file required for CSV type",
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.Journal.DBPath = "" },
			wantErr: true,
			errMsg:  "journal db_path required for SQLite type",
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Batch.Workers = 0 },
			wantErr: true,
			errMsg:  "batch.workers must be >= 1",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: true,
			errMsg:  "logging.level must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Simulation.WinRate = 120
	cfg.Simulation.StopLoss = -1
	cfg.Journal.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation.win_rate")
	assert.Contains(t, err.Error(), "simulation.stop_loss")
	assert.Contains(t, err.Error(), "journal db_path")
}

func TestValidateParams(t *testing.T) {
	p := Default().Simulation
	assert.NoError(t, ValidateParams(p))

	p.WinRate = 101
	p.TradeCount = -1
	err := ValidateParams(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "win_rate must be <= 100")
	assert.Contains(t, err.Error(), "trade_count must be >= 0")
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Simulation.WinRate = 65
			cfg.Simulation.TradeCount = 42
			cfg.Seed = 1234
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TRADESIM_SIMULATION_WIN_RATE", "75")
	t.Setenv("TRADESIM_SEED", "99")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 75.0, cfg.Simulation.WinRate)
	assert.Equal(t, int64(99), cfg.Seed)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  trade_count: 7\njournal:\n  type: none\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Simulation.TradeCount)
	assert.Equal(t, 1000.0, cfg.Simulation.StartBalance)
	assert.Equal(t, "none", cfg.Journal.Type)
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  win_rate: 250\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "tradesim-config", doc["title"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "simulation")
	assert.Contains(t, props, "journal")
}
