package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

const (
	insertRun = `
		INSERT INTO runs
		(run_id, created, seed, start_balance, win_rate, take_profit, stop_loss, trade_count,
		 limit_order_fee_rate, market_order_fee_rate, trades, wins, losses, total_fees,
		 end_balance, net_pl, return_pct, realized_win_rate, max_dd_pct, profitable)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertTrade = `
		INSERT INTO trades (run_id, seq, outcome, balance, fees_paid)
		VALUES (?, ?, ?, ?, ?)`
)

// NewSQLite opens (creating if needed) the journal database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func execRun(x execer, r RunRecord) error {
	p, s := r.Params, r.Summary
	_, err := x.Exec(insertRun,
		r.RunID, r.Created, r.Seed,
		p.StartBalance, p.WinRate, p.TakeProfit, p.StopLoss, p.TradeCount,
		p.LimitOrderFeeRate, p.MarketOrderFeeRate,
		s.Trades, s.Wins, s.Losses, s.TotalFees,
		s.EndBalance, s.NetPL, s.ReturnPct, s.RealizedWinRate, s.MaxDrawdownPct, s.Profitable,
	)
	return err
}

func execTrade(x execer, t TradeRecord) error {
	_, err := x.Exec(insertTrade, t.RunID, t.Seq, t.Outcome.String(), t.Balance, t.FeesPaid)
	return err
}

func (j *SQLite) RecordRun(r RunRecord) error {
	return execRun(j.db, r)
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	return execTrade(j.db, t)
}

// RecordRunWithTrades stores a run and its trades in one transaction.
func (j *SQLite) RecordRunWithTrades(r RunRecord, trades []TradeRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	if err := execRun(tx, r); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert run %s: %w", r.RunID, err)
	}
	for _, t := range trades {
		if err := execTrade(tx, t); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert trade %s/%d: %w", t.RunID, t.Seq, err)
		}
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
