package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradesim/internal/tui"
	"github.com/rustyeddy/tradesim/journal"
	"github.com/rustyeddy/tradesim/pkg/id"
	"github.com/rustyeddy/tradesim/sim"
)

func newTUICmd(rc *RootConfig) *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive simulation form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := rc.Config.Seed
			if cmd.Flags().Changed("seed") {
				s = seed
			}

			return withJournal(rc.Config.Journal, func(j journal.Journal) error {
				return runForm(cmd, rc, j, s)
			})
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "seed of the first run (0 = fresh seed per run)")
	return cmd
}

func runForm(cmd *cobra.Command, rc *RootConfig, j journal.Journal, s int64) error {
	m := tui.NewModel(tui.Options{
		Params: rc.Config.Simulation,
		Seed:   s,
		Record: func(p sim.Params, seed int64, trades []sim.Trade) error {
			run := journal.RunRecord{
				RunID:   id.New(),
				Created: time.Now().UTC(),
				Seed:    seed,
				Params:  p,
				Summary: sim.Summarize(p, trades),
			}
			rc.Logger.Debug("form run",
				zap.String("run_id", run.RunID),
				zap.Int64("seed", seed),
				zap.Int("trades", len(trades)),
			)
			return journal.Record(j, run, trades)
		},
	})

	p := tea.NewProgram(m,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
