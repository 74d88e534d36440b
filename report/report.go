// Package report renders simulation results for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/tradesim/batch"
	"github.com/rustyeddy/tradesim/sim"
)

const rule = "--------------------------------------------------"

// Headline returns the signed final balance, e.g. "+1210 USD" or "-857 USD".
// It is empty when there are no trades.
func Headline(trades []sim.Trade, startBalance float64) string {
	if len(trades) == 0 {
		return ""
	}
	sign := "-"
	if sim.Profitable(trades, startBalance) {
		sign = "+"
	}
	return fmt.Sprintf("%s%d USD", sign, trades[len(trades)-1].Balance)
}

// PrintTrades writes one row per trade: number, outcome, fee and new balance.
func PrintTrades(w io.Writer, trades []sim.Trade, opts Options) {
	if len(trades) == 0 {
		fmt.Fprintln(w, "No trades.")
		return
	}

	fmt.Fprintln(w, opts.render(TitleStyle, fmt.Sprintf("%5s  %-7s  %12s  %14s", "#", "Outcome", "Fee", "New Balance")))
	fmt.Fprintln(w, rule)
	for i, t := range trades {
		// pad before styling so escape codes don't skew the columns
		outcome := fmt.Sprintf("%-7s", capitalize(t.Outcome.String()))
		if t.Outcome == sim.Win {
			outcome = opts.render(WinStyle, outcome)
		} else {
			outcome = opts.render(LossStyle, outcome)
		}
		fmt.Fprintf(w, "%5d  %s  %12s  %14d\n", i+1, outcome, Money(t.FeesPaid), t.Balance)
	}
}

// PrintSummary writes the parameters and results of one run.
func PrintSummary(w io.Writer, runID string, p sim.Params, s sim.Summary, opts Options) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, opts.render(TitleStyle, " Simulation Result"))
	fmt.Fprintln(w, "==================================================")

	if runID != "" {
		fmt.Fprintf(w, "Run ID:        %s\n", runID)
	}

	fmt.Fprintln(w)
	printParams(w, p)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Trades:        %d\n", s.Trades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:      %s\n", Pct(s.RealizedWinRate))
	fmt.Fprintf(w, "Fees Paid:     %s\n", Money(s.TotalFees))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Start Balance: %s\n", Money(s.StartBalance))
	fmt.Fprintf(w, "End Balance:   %s\n", opts.signed(s.Profitable, Money(s.EndBalance)))
	fmt.Fprintf(w, "Net P/L:       %s\n", opts.signed(s.Profitable, Money(s.NetPL)))
	fmt.Fprintf(w, "Return:        %s\n", Pct(s.ReturnPct))
	if s.MaxDrawdownPct > 0 {
		fmt.Fprintf(w, "Max Drawdown:  %s\n", Pct(s.MaxDrawdownPct))
	}
	fmt.Fprintln(w)
}

// PrintDistribution writes the aggregate of a batch.
func PrintDistribution(w io.Writer, p sim.Params, d batch.Distribution, opts Options) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, opts.render(TitleStyle, " Batch Result"))
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w)
	printParams(w, p)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Runs")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Runs:          %d\n", d.Runs)
	fmt.Fprintf(w, "Profitable:    %d (%s)\n", d.ProfitableRuns,
		opts.signed(d.ProfitableRatio >= 0.5, Pct(d.ProfitableRatio*100)))
	fmt.Fprintf(w, "Mean Win Rate: %s\n", Pct(d.MeanWinRate))
	fmt.Fprintf(w, "Mean Fees:     %s\n", Money(d.MeanFees))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Final Balance")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Mean:          %s\n", Money(d.MeanFinal))
	fmt.Fprintf(w, "Std Dev:       %s\n", Money(d.StdDevFinal))
	fmt.Fprintf(w, "Min:           %s\n", Money(d.MinFinal))
	fmt.Fprintf(w, "P5:            %s\n", Money(d.P5Final))
	fmt.Fprintf(w, "Median:        %s\n", Money(d.P50Final))
	fmt.Fprintf(w, "P95:           %s\n", Money(d.P95Final))
	fmt.Fprintf(w, "Max:           %s\n", Money(d.MaxFinal))
	fmt.Fprintln(w)
}

func printParams(w io.Writer, p sim.Params) {
	fmt.Fprintln(w, "Parameters")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Start Balance: %s USD\n", Money(p.StartBalance))
	fmt.Fprintf(w, "Win Rate:      %s\n", Pct(p.WinRate))
	fmt.Fprintf(w, "Take Profit:   %s\n", Pct(p.TakeProfit))
	fmt.Fprintf(w, "Stop Loss:     %s\n", Pct(p.StopLoss))
	fmt.Fprintf(w, "Trades:        %d\n", p.TradeCount)
	fmt.Fprintf(w, "Limit Fee:     %g%%\n", p.LimitOrderFeeRate)
	fmt.Fprintf(w, "Market Fee:    %g%%\n", p.MarketOrderFeeRate)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
