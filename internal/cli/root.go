// Package cli is the tradesim command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradesim/config"
	"github.com/rustyeddy/tradesim/internal/log"
	"github.com/rustyeddy/tradesim/internal/tty"
	"github.com/rustyeddy/tradesim/report"
)

// RootConfig holds the global flags and what PersistentPreRunE builds from
// them.
type RootConfig struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
	NoColor    bool

	Config *config.Config
	Logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{Logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "tradesim",
		Short:         "tradesim: win-rate trade outcome simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite journal database (overrides journal.db_path)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error (overrides logging.level)")
	cmd.PersistentFlags().BoolVar(&rc.NoColor, "no-color", false, "Disable colored output")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.setup(cmd)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = rc.Logger.Sync()
	}

	cmd.AddCommand(
		newRunCmd(rc),
		newBatchCmd(rc),
		newJournalCmd(rc),
		newConfigCmd(),
		newTUICmd(rc),
		newVersionCmd(),
	)

	return cmd
}

func (rc *RootConfig) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(rc.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("db") {
		cfg.Journal.DBPath = rc.DBPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = rc.LogLevel
	}

	logger, err := log.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	rc.Config = cfg
	rc.Logger = logger
	rc.Logger.Debug("config loaded",
		zap.String("path", rc.ConfigPath),
		zap.String("journal", cfg.Journal.Type),
	)
	return nil
}

// reportOptions enables color only for terminals.
func (rc *RootConfig) reportOptions(cmd *cobra.Command) report.Options {
	return report.Options{Color: !rc.NoColor && tty.IsTerminal(cmd.OutOrStdout())}
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
