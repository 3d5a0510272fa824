package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simaogato/yieldcompare-backend/internal/config"
	"github.com/simaogato/yieldcompare-backend/internal/logging"
)

// app holds what every subcommand shares once the root pre-run has loaded it
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "yieldcompare",
		Short: "Compare after-tax CD and Treasury yields",
		Long: `yieldcompare decides whether a CD or a Treasury security pays more after tax.

Treasury interest is taxed federally only. CD interest is taxed federally and
by the state. The comparison runs once per request against the active tax
tables (built in, or a YAML file set by tax_table_file).

Configuration comes from an optional YAML file (--config) and YIELDCOMPARE_*
environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.LogLevel = a.logLevel
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		newServeCmd(a),
		newTUICmd(a),
		newCompareCmd(a),
		newTablesCmd(a),
	)

	return rootCmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
