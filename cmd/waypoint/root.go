package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/spf13/cobra"
)

// globals carries the persistent flags shared by every command.
type globals struct {
	logLevel string
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{logger: logging.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "waypoint",
		Short: "Waypoint routes URLs to pages and runs multi-path state machines",
		Long: `Waypoint parses URL templates, matches URLs against a site of pages,
renders URLs back from values and drives non-deterministic state machines
described in YAML files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(g.logLevel)
			if err != nil {
				return err
			}
			g.logger = logging.NewWriter(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newParseCmd(),
		newMatchCmd(g),
		newRenderCmd(g),
		newTreeCmd(g),
		newRoutesCmd(g),
		newGraphCmd(),
		newValidateCmd(),
		newRunCmd(g),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute builds the command tree and runs it against os.Args.
func Execute() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
