package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [program]",
	Short: "Show the rule table of a machine",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := resolveArg(cmd, args)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetBool("raw")
		return cli.Describe(cmd.OutOrStdout(), def, raw || !tui.IsTerminal(cmd.OutOrStdout()))
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringP("file", "f", "", "Machine definition file (YAML or JSON)")
	describeCmd.Flags().Bool("raw", false, "Print markdown without rendering")
}

// resolveArg loads the definition named by the first argument or --file,
// using only the local sources.
func resolveArg(cmd *cobra.Command, args []string) (*definition.Definition, error) {
	opts, err := cliOptions(cmd)
	if err != nil {
		return nil, err
	}
	exec, closeFn, err := cli.NewExecutor(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	program := ""
	if len(args) > 0 {
		program = args[0]
	}
	path, _ := cmd.Flags().GetString("file")
	return cli.Resolve(exec, program, path)
}
