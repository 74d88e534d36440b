package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradesim/journal"
	"github.com/rustyeddy/tradesim/report"
)

func newJournalCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Query recorded simulation runs",
		Long: `Query and display runs recorded in the SQLite journal.

Subcommands:
  runs  - List recent runs
  show  - Show the trades and summary of a run
  org   - Print a run as an Org-mode block

Examples:
  tradesim journal runs --limit 5
  tradesim journal show <run-id>
  tradesim journal org <run-id> >> runs.org`,
	}

	cmd.AddCommand(
		newJournalRunsCmd(rc),
		newJournalShowCmd(rc),
		newJournalOrgCmd(rc),
	)
	return cmd
}

func (rc *RootConfig) openSQLite() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(rc.Config.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func newJournalRunsCmd(rc *RootConfig) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := rc.openSQLite()
			if err != nil {
				return err
			}
			defer j.Close()

			runs, err := j.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN ID\tCREATED\tSEED\tTRADES\tWIN %\tEND BALANCE\tRETURN")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
					r.RunID,
					r.Created.Local().Format(time.DateTime),
					r.Seed,
					r.Summary.Trades,
					report.Money(r.Params.WinRate),
					report.Money(r.Summary.EndBalance),
					report.Pct(r.Summary.ReturnPct),
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "maximum runs to list (0 = all)")
	return cmd
}

func newJournalShowCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the trades and summary of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := rc.openSQLite()
			if err != nil {
				return err
			}
			defer j.Close()

			run, err := j.GetRun(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			recs, err := j.ListTrades(cmd.Context(), run.RunID)
			if err != nil {
				return fmt.Errorf("list trades: %w", err)
			}

			out := cmd.OutOrStdout()
			opts := rc.reportOptions(cmd)
			report.PrintTrades(out, journal.Trades(recs), opts)
			fmt.Fprintln(out)
			report.PrintSummary(out, run.RunID, run.Params, run.Summary, opts)
			fmt.Fprintf(out, "Seed:          %d\n", run.Seed)
			fmt.Fprintf(out, "Created:       %s\n", run.Created.Format(time.RFC3339))
			return nil
		},
	}
}

func newJournalOrgCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "org <run-id>",
		Short: "Print a run as an Org-mode block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := rc.openSQLite()
			if err != nil {
				return err
			}
			defer j.Close()

			run, err := j.GetRun(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			recs, err := j.ListTrades(cmd.Context(), run.RunID)
			if err != nil {
				return fmt.Errorf("list trades: %w", err)
			}

			org, err := journal.FormatRunOrg(run, recs)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), org)
			return nil
		},
	}
}
