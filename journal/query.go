package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rustyeddy/tradesim/sim"
)

const selectRun = `
	SELECT run_id, created, seed, start_balance, win_rate, take_profit, stop_loss, trade_count,
	       limit_order_fee_rate, market_order_fee_rate, trades, wins, losses, total_fees,
	       end_balance, net_pl, return_pct, realized_win_rate, max_dd_pct, profitable
	FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var r RunRecord
	p, sum := &r.Params, &r.Summary
	err := s.Scan(
		&r.RunID, &r.Created, &r.Seed,
		&p.StartBalance, &p.WinRate, &p.TakeProfit, &p.StopLoss, &p.TradeCount,
		&p.LimitOrderFeeRate, &p.MarketOrderFeeRate,
		&sum.Trades, &sum.Wins, &sum.Losses, &sum.TotalFees,
		&sum.EndBalance, &sum.NetPL, &sum.ReturnPct, &sum.RealizedWinRate, &sum.MaxDrawdownPct, &sum.Profitable,
	)
	sum.StartBalance = p.StartBalance
	return r, err
}

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(ctx context.Context, runID string) (RunRecord, error) {
	row := j.db.QueryRowContext(ctx, selectRun+` WHERE run_id = ?`, runID)

	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, fmt.Errorf("run %q: %w", runID, ErrNotFound)
		}
		return RunRecord{}, err
	}
	return r, nil
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (j *SQLite) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	// ULIDs sort by creation time.
	rows, err := j.db.QueryContext(ctx, selectRun+` ORDER BY run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTrades returns the trades of a run in order.
func (j *SQLite) ListTrades(ctx context.Context, runID string) ([]TradeRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, seq, outcome, balance, fees_paid
		FROM trades
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var (
			rec     TradeRecord
			outcome string
		)
		if err := rows.Scan(&rec.RunID, &rec.Seq, &outcome, &rec.Balance, &rec.FeesPaid); err != nil {
			return nil, err
		}
		if rec.Outcome, err = sim.ParseOutcome(outcome); err != nil {
			return nil, fmt.Errorf("trade %s/%d: %w", rec.RunID, rec.Seq, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Trades converts records back into simulator trades.
func Trades(recs []TradeRecord) []sim.Trade {
	out := make([]sim.Trade, len(recs))
	for i, r := range recs {
		out[i] = sim.Trade{Outcome: r.Outcome, Balance: r.Balance, FeesPaid: r.FeesPaid}
	}
	return out
}
