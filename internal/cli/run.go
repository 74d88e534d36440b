package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradesim/config"
	"github.com/rustyeddy/tradesim/journal"
	"github.com/rustyeddy/tradesim/pkg/id"
	"github.com/rustyeddy/tradesim/report"
	"github.com/rustyeddy/tradesim/sim"
)

// paramFlags binds one flag per simulation parameter. Only flags set on the
// command line override the configured values.
type paramFlags struct {
	p sim.Params
}

func (pf *paramFlags) register(cmd *cobra.Command) {
	d := config.Default().Simulation
	pf.p = d

	cmd.Flags().Float64VarP(&pf.p.StartBalance, "balance", "b", d.StartBalance, "starting balance (USD)")
	cmd.Flags().Float64VarP(&pf.p.WinRate, "win-rate", "w", d.WinRate, "win rate percent (0-100)")
	cmd.Flags().Float64Var(&pf.p.TakeProfit, "take-profit", d.TakeProfit, "take profit percent of balance")
	cmd.Flags().Float64Var(&pf.p.StopLoss, "stop-loss", d.StopLoss, "stop loss percent of balance")
	cmd.Flags().IntVarP(&pf.p.TradeCount, "trades", "n", d.TradeCount, "number of trades")
	cmd.Flags().Float64Var(&pf.p.LimitOrderFeeRate, "limit-fee", d.LimitOrderFeeRate, "limit order fee percent")
	cmd.Flags().Float64Var(&pf.p.MarketOrderFeeRate, "market-fee", d.MarketOrderFeeRate, "market order fee percent (0 disables fees)")
}

func (pf *paramFlags) apply(cmd *cobra.Command, base sim.Params) sim.Params {
	p := base
	set := func(name string, dst *float64, v float64) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("balance", &p.StartBalance, pf.p.StartBalance)
	set("win-rate", &p.WinRate, pf.p.WinRate)
	set("take-profit", &p.TakeProfit, pf.p.TakeProfit)
	set("stop-loss", &p.StopLoss, pf.p.StopLoss)
	set("limit-fee", &p.LimitOrderFeeRate, pf.p.LimitOrderFeeRate)
	set("market-fee", &p.MarketOrderFeeRate, pf.p.MarketOrderFeeRate)
	if cmd.Flags().Changed("trades") {
		p.TradeCount = pf.p.TradeCount
	}
	return p
}

// seedFor returns the --seed flag, else the configured seed, else a fresh one.
func (rc *RootConfig) seedFor(cmd *cobra.Command, flag int64) int64 {
	seed := rc.Config.Seed
	if cmd.Flags().Changed("seed") {
		seed = flag
	}
	if seed == 0 {
		seed = id.Seed()
	}
	return seed
}

func newRunCmd(rc *RootConfig) *cobra.Command {
	var (
		pf          paramFlags
		seed        int64
		journalType string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate one sequence of trades",
		Long: `Run simulates a sequence of trades that hits the configured win rate,
applying take profit, stop loss and order fees to a compounding balance.

Example:
  tradesim run --balance 1000 --win-rate 60 --take-profit 10 --stop-loss 5 --trades 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pf.apply(cmd, rc.Config.Simulation)
			if err := config.ValidateParams(p); err != nil {
				return fmt.Errorf("invalid parameters: %w", err)
			}

			jcfg := rc.Config.Journal
			if cmd.Flags().Changed("journal") {
				jcfg.Type = journalType
			}
			s := rc.seedFor(cmd, seed)
			trades := sim.Run(p, s)
			sum := sim.Summarize(p, trades)

			run := journal.RunRecord{
				RunID:   id.New(),
				Created: time.Now().UTC(),
				Seed:    s,
				Params:  p,
				Summary: sum,
			}

			for i, t := range trades {
				rc.Logger.Debug("trade",
					zap.Int("seq", i+1),
					zap.Stringer("outcome", t.Outcome),
					zap.Int64("balance", t.Balance),
					zap.Float64("fees_paid", t.FeesPaid),
				)
			}

			// an empty run is a no-op and is not journaled
			if len(trades) > 0 {
				err := withJournal(jcfg, func(j journal.Journal) error {
					if err := journal.Record(j, run, trades); err != nil {
						return fmt.Errorf("record run: %w", err)
					}
					return nil
				})
				if err != nil {
					return err
				}
			}

			rc.Logger.Info("simulation finished",
				zap.String("run_id", run.RunID),
				zap.Int64("seed", s),
				zap.Int("trades", len(trades)),
				zap.Float64("end_balance", sum.EndBalance),
				zap.String("journal", jcfg.Type),
			)

			out := cmd.OutOrStdout()
			opts := rc.reportOptions(cmd)
			if !quiet {
				report.PrintTrades(out, trades, opts)
				if h := report.Headline(trades, p.StartBalance); h != "" {
					fmt.Fprintf(out, "\n%s\n\n", h)
				}
			}
			report.PrintSummary(out, run.RunID, p, sum, opts)
			fmt.Fprintf(out, "Seed:          %d\n", s)
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = fresh seed)")
	cmd.Flags().StringVar(&journalType, "journal", "", "journal type: none|csv|sqlite (overrides journal.type)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print the summary only")

	return cmd
}
