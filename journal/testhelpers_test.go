package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradesim/sim"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	return j, path
}

func testRun(t *testing.T, runID string, seed int64) (RunRecord, []sim.Trade) {
	t.Helper()

	p := sim.Params{
		StartBalance:       1000,
		WinRate:            50,
		TakeProfit:         10,
		StopLoss:           5,
		TradeCount:         6,
		LimitOrderFeeRate:  0.1,
		MarketOrderFeeRate: 0.2,
	}
	trades := sim.Run(p, seed)
	return RunRecord{
		RunID:   runID,
		Created: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		Seed:    seed,
		Params:  p,
		Summary: sim.Summarize(p, trades),
	}, trades
}
