package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"go.uber.org/multierr"
)

var (
	runsHeader = []string{
		"run_id", "created", "seed",
		"start_balance", "win_rate", "take_profit", "stop_loss", "trade_count",
		"limit_order_fee_rate", "market_order_fee_rate",
		"trades", "wins", "losses", "total_fees",
		"end_balance", "net_pl", "return_pct", "realized_win_rate", "max_dd_pct", "profitable",
	}
	tradesHeader = []string{"run_id", "seq", "outcome", "balance", "fees_paid"}
)

// CSVJournal writes runs and trades to two CSV files. A path ending in ".xz"
// is written xz-compressed.
type CSVJournal struct {
	runs   *csv.Writer
	trades *csv.Writer

	// closed in order: compressors before their files
	closers []io.Closer
}

func NewCSV(runsPath, tradesPath string) (*CSVJournal, error) {
	j := &CSVJournal{}

	rw, err := j.open(runsPath)
	if err != nil {
		_ = j.Close()
		return nil, err
	}
	tw, err := j.open(tradesPath)
	if err != nil {
		_ = j.Close()
		return nil, err
	}
	j.runs = csv.NewWriter(rw)
	j.trades = csv.NewWriter(tw)

	if err := writeFlush(j.runs, runsHeader); err != nil {
		_ = j.Close()
		return nil, err
	}
	if err := writeFlush(j.trades, tradesHeader); err != nil {
		_ = j.Close()
		return nil, err
	}
	return j, nil
}

func (j *CSVJournal) open(path string) (io.Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".xz") {
		j.closers = append(j.closers, f)
		return f, nil
	}

	zw, err := xz.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xz writer for %s: %w", path, err)
	}
	j.closers = append(j.closers, zw, f)
	return zw, nil
}

func writeFlush(w *csv.Writer, rec []string) error {
	if err := w.Write(rec); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	p, s := r.Params, r.Summary
	return writeFlush(j.runs, []string{
		r.RunID,
		r.Created.UTC().Format(time.RFC3339),
		strconv.FormatInt(r.Seed, 10),
		f(p.StartBalance),
		f(p.WinRate),
		f(p.TakeProfit),
		f(p.StopLoss),
		strconv.Itoa(p.TradeCount),
		f(p.LimitOrderFeeRate),
		f(p.MarketOrderFeeRate),
		strconv.Itoa(s.Trades),
		strconv.Itoa(s.Wins),
		strconv.Itoa(s.Losses),
		f(s.TotalFees),
		f(s.EndBalance),
		f(s.NetPL),
		f(s.ReturnPct),
		f(s.RealizedWinRate),
		f(s.MaxDrawdownPct),
		strconv.FormatBool(s.Profitable),
	})
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	return writeFlush(j.trades, []string{
		t.RunID,
		strconv.Itoa(t.Seq),
		t.Outcome.String(),
		strconv.FormatInt(t.Balance, 10),
		f(t.FeesPaid),
	})
}

func (j *CSVJournal) Close() error {
	var err error
	for _, w := range []*csv.Writer{j.runs, j.trades} {
		if w == nil {
			continue
		}
		w.Flush()
		err = multierr.Append(err, w.Error())
	}
	for _, c := range j.closers {
		err = multierr.Append(err, c.Close())
	}
	j.closers = nil
	return err
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
