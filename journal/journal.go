// Package journal records simulation runs and their trades.
package journal

import (
	"errors"
	"time"

	"github.com/rustyeddy/tradesim/sim"
)

// ErrNotFound is returned when a run is not in the journal.
var ErrNotFound = errors.New("journal: not found")

// RunRecord is one simulation run: its inputs and derived results.
type RunRecord struct {
	RunID   string
	Created time.Time
	Seed    int64
	Params  sim.Params
	Summary sim.Summary
}

// TradeRecord is one trade of a run. Seq starts at 1.
type TradeRecord struct {
	RunID    string
	Seq      int
	Outcome  sim.Outcome
	Balance  int64
	FeesPaid float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordTrade(TradeRecord) error
	Close() error
}

// runRecorder is implemented by journals that can store a run and its trades
// atomically.
type runRecorder interface {
	RecordRunWithTrades(RunRecord, []TradeRecord) error
}

// TradeRecords numbers trades for runID.
func TradeRecords(runID string, trades []sim.Trade) []TradeRecord {
	out := make([]TradeRecord, len(trades))
	for i, t := range trades {
		out[i] = TradeRecord{
			RunID:    runID,
			Seq:      i + 1,
			Outcome:  t.Outcome,
			Balance:  t.Balance,
			FeesPaid: t.FeesPaid,
		}
	}
	return out
}

// Record writes a run followed by its trades.
func Record(j Journal, run RunRecord, trades []sim.Trade) error {
	recs := TradeRecords(run.RunID, trades)
	if rr, ok := j.(runRecorder); ok {
		return rr.RecordRunWithTrades(run, recs)
	}

	if err := j.RecordRun(run); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := j.RecordTrade(rec); err != nil {
			return err
		}
	}
	return nil
}

// Discard is a Journal that drops everything.
type Discard struct{}

func (Discard) RecordRun(RunRecord) error     { return nil }
func (Discard) RecordTrade(TradeRecord) error { return nil }
func (Discard) Close() error                  { return nil }
