package main

import (
	"fmt"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/internal/presentation/graph"
	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/aretw0/waypoint/internal/validator"
	"github.com/spf13/cobra"
)

func addMachineFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVar(path, "machine", ".", "Automaton file, or a directory containing machine.yaml")
}

func newGraphCmd() *cobra.Command {
	var machinePath string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the state graph visualization",
		Long:  `Loads the automaton and outputs a Mermaid diagram (graph TD) of its states and transitions.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cli.LoadGraph(machinePath)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateStateMermaid(g, nil))
			return nil
		},
	}

	addMachineFlag(cmd, &machinePath)
	return cmd
}

func newValidateCmd() *cobra.Command {
	var machinePath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the state graph for consistency",
		Long:  `Crawls the graph from its initial states and reports unreachable states and states that can never reach a return.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cli.LoadGraph(machinePath)
			if err != nil {
				return err
			}
			if err := validator.ValidateGraph(g); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Graph is valid! ✅")
			return nil
		},
	}

	addMachineFlag(cmd, &machinePath)
	return cmd
}

func newRunCmd(g *globals) *cobra.Command {
	opts := cli.RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Feed input lines to a state machine",
		Long: `Starts the automaton and feeds it one message per input line (stdin by
default). Every path that reaches a return state is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Logger = g.logger
			streams := cli.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}

			if opts.InputPath == "" && !opts.JSON && cli.IsTerminal(streams.In) {
				tui.PrintBanner(streams.Out)
			}

			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			_, err := cli.Execute(ctx, opts, streams)
			return err
		},
	}

	addMachineFlag(cmd, &opts.MachinePath)
	cmd.Flags().StringVarP(&opts.InputPath, "input", "i", "", "Read messages from a file instead of stdin")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print returned paths as JSON lines")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "Print run statistics and metrics at the end")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Log every entered state and round (needs --log-level debug)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Abort on invalid input lines instead of skipping them")
	cmd.Flags().BoolVar(&opts.StopWhenDone, "stop-when-done", false, "Stop reading once no state is active")
	cmd.Flags().BoolVar(&opts.Validate, "validate", false, "Validate the graph before running")
	return cmd
}
