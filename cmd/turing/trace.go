package main

import (
	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace [program]",
	Short: "Print every configuration of a run",
	Long: `Steps a machine one rule at a time and prints each configuration: step count,
state, head position and the tape with the head cell highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := cliOptions(cmd)
		if err != nil {
			return err
		}
		exec, closeFn, err := cli.NewExecutor(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer closeFn()

		program := ""
		if len(args) > 0 {
			program = args[0]
		}
		path, _ := cmd.Flags().GetString("file")
		def, err := cli.Resolve(exec, program, path)
		if err != nil {
			return err
		}

		var traceOpts cli.TraceOptions
		traceOpts.Tape, _ = cmd.Flags().GetString("tape")
		traceOpts.Every, _ = cmd.Flags().GetInt("every")
		traceOpts.Window, _ = cmd.Flags().GetInt("window")
		traceOpts.MaxSteps = opts.MaxSteps

		_, err = cli.Trace(cmd.Context(), cmd.OutOrStdout(), def, traceOpts,
			turing.WithLogger(opts.Logger),
			turing.WithLifecycleHooks(observability.LoggingHooks(opts.Logger)),
		)
		return err
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().StringP("file", "f", "", "Machine definition file (YAML or JSON)")
	traceCmd.Flags().StringP("tape", "t", "", "Initial tape, one symbol per character")
	traceCmd.Flags().Int("every", 1, "Print one configuration every N steps")
	traceCmd.Flags().Int("window", 0, "Show at most N cells on each side of the head (0 = whole tape)")
}
