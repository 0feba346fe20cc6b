package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/hamsim/internal/logging"
	"github.com/san-kum/hamsim/internal/systems"
)

var (
	logLevel string
	logger   = logging.Discard()
	catalog  = systems.Default()
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hamsim",
		Short:         "hamiltonian phase-space simulation and symbolic mechanics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(logLevel, cmd.ErrOrStderr())
			slog.SetDefault(logger)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(
		newSystemsCmd(),
		newPresetsCmd(),
		newRunCmd(),
		newDeriveCmd(),
		newSweepCmd(),
		newWatchCmd(),
		newAnalyzeCmd(),
		newCoupleCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
