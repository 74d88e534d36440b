package journal

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradesim/sim"
)

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','trades')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["trades"])
}

func TestSQLiteRecordAndGetRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	run, trades := testRun(t, "01HTESTRUN0000000000000001", 3)
	require.NoError(t, Record(j, run, trades))

	got, err := j.GetRun(context.Background(), run.RunID)
	require.NoError(t, err)

	assert.Equal(t, run.RunID, got.RunID)
	assert.True(t, got.Created.Equal(run.Created))
	assert.Equal(t, run.Seed, got.Seed)
	assert.Equal(t, run.Params, got.Params)
	assert.Equal(t, run.Summary.Trades, got.Summary.Trades)
	assert.Equal(t, run.Summary.Wins, got.Summary.Wins)
	assert.Equal(t, run.Summary.Losses, got.Summary.Losses)
	assert.InDelta(t, run.Summary.TotalFees, got.Summary.TotalFees, 1e-9)
	assert.Equal(t, run.Summary.EndBalance, got.Summary.EndBalance)
	assert.Equal(t, run.Summary.StartBalance, got.Summary.StartBalance)
	assert.Equal(t, run.Summary.Profitable, got.Summary.Profitable)

	recs, err := j.ListTrades(context.Background(), run.RunID)
	require.NoError(t, err)
	require.Len(t, recs, len(trades))
	for i, rec := range recs {
		assert.Equal(t, i+1, rec.Seq)
		assert.Equal(t, trades[i].Outcome, rec.Outcome)
		assert.Equal(t, trades[i].Balance, rec.Balance)
		assert.InDelta(t, trades[i].FeesPaid, rec.FeesPaid, 1e-9)
	}
	assert.Equal(t, trades, Trades(recs))
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteListRunsNewestFirst(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	for i, id := range []string{"01HA", "01HC", "01HB"} {
		run, trades := testRun(t, id, int64(i))
		require.NoError(t, Record(j, run, trades))
	}

	runs, err := j.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "01HC", runs[0].RunID)
	assert.Equal(t, "01HB", runs[1].RunID)
	assert.Equal(t, "01HA", runs[2].RunID)

	runs, err = j.ListRuns(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLiteDuplicateRunRollsBack(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	run, trades := testRun(t, "01HDUP", 1)
	require.NoError(t, Record(j, run, trades))
	assert.Error(t, Record(j, run, trades))

	recs, err := j.ListTrades(context.Background(), run.RunID)
	require.NoError(t, err)
	assert.Len(t, recs, len(trades))
}

func TestSQLiteTradeRequiresRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	err := j.RecordTrade(TradeRecord{RunID: "nope", Seq: 1, Outcome: sim.Win, Balance: 1})
	assert.Error(t, err)
}
