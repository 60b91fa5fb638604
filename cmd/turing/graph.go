package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [program]",
	Short: "Export the state diagram of a machine",
	Long: `Outputs a Mermaid diagram (stateDiagram-v2) with one edge per transition rule.

With --tape (or --run for the default tape) the machine is run first: the states it passed through are styled as visited
and the state it stopped in as current. A run that faults still prints the diagram.`,
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

		tape, _ := cmd.Flags().GetString("tape")
		run, _ := cmd.Flags().GetBool("run")
		if tape == "" && !run {
			return cli.Graph(cmd.OutOrStdout(), def, nil)
		}

		overlay, runErr := cli.Overlay(cmd.Context(), exec, def, tape)
		if overlay == nil {
			return runErr
		}
		if err := cli.Graph(cmd.OutOrStdout(), def, overlay); err != nil {
			return err
		}
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("file", "f", "", "Machine definition file (YAML or JSON)")
	graphCmd.Flags().StringP("tape", "t", "", "Run on this tape and highlight the visited states")
	graphCmd.Flags().Bool("run", false, "Run on the default tape and highlight the visited states")
}
