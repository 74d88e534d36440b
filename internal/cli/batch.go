package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradesim/batch"
	"github.com/rustyeddy/tradesim/config"
	"github.com/rustyeddy/tradesim/report"
)

func newBatchCmd(rc *RootConfig) *cobra.Command {
	var (
		pf         paramFlags
		runs       int
		workers    int
		seed       int64
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run many simulations and report the spread of final balances",
		Long: `Batch repeats the same simulation with consecutive seeds and
summarizes how often the strategy ends profitable.

Example:
  tradesim batch --runs 10000 --workers 8 --win-rate 40 --take-profit 15 --stop-loss 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pf.apply(cmd, rc.Config.Simulation)
			if err := config.ValidateParams(p); err != nil {
				return fmt.Errorf("invalid parameters: %w", err)
			}

			r := batch.Runner{
				Runs:     rc.Config.Batch.Runs,
				Workers:  rc.Config.Batch.Workers,
				BaseSeed: rc.seedFor(cmd, seed),
			}
			if cmd.Flags().Changed("runs") {
				r.Runs = runs
			}
			if cmd.Flags().Changed("workers") {
				r.Workers = workers
			}
			if r.Runs < 1 || r.Workers < 1 {
				return fmt.Errorf("runs and workers must be >= 1 (got %d/%d)", r.Runs, r.Workers)
			}

			if !noProgress {
				bar := progressbar.NewOptions(r.Runs,
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("Simulating"),
					progressbar.OptionShowCount(),
					progressbar.OptionThrottle(65*time.Millisecond),
					progressbar.OptionClearOnFinish(),
				)
				defer bar.Close()
				r.OnProgress = func() { _ = bar.Add(1) }
			}

			start := time.Now()
			dist, err := r.Run(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("batch: %w", err)
			}

			rc.Logger.Info("batch finished",
				zap.Int("runs", dist.Runs),
				zap.Int("workers", r.Workers),
				zap.Int64("base_seed", r.BaseSeed),
				zap.Float64("profitable_ratio", dist.ProfitableRatio),
				zap.Duration("elapsed", time.Since(start)),
			)

			out := cmd.OutOrStdout()
			report.PrintDistribution(out, p, dist, rc.reportOptions(cmd))
			fmt.Fprintf(out, "Base Seed:     %d\n", r.BaseSeed)
			return nil
		},
	}

	pf.register(cmd)
	d := config.Default().Batch
	cmd.Flags().IntVarP(&runs, "runs", "r", d.Runs, "number of simulations")
	cmd.Flags().IntVar(&workers, "workers", d.Workers, "concurrent workers")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed of the first run; run i uses seed+i (0 = fresh seed)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide the progress bar")

	return cmd
}
