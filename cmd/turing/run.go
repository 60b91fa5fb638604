package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/executor"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [program]",
	Short: "Run a machine to completion and print the result",
	Long: `Runs a built-in program (see 'turing programs') or a definition file given with
--file on the initial tape, then prints the result string, the final state, the head
position and the number of steps.`,
	Example: `  turing run increment --tape 101
  turing run --file examples/palindrome.yaml --tape abba`,
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
		tape, _ := cmd.Flags().GetString("tape")
		asJSON, _ := cmd.Flags().GetBool("json")

		def, err := cli.Resolve(exec, program, path)
		if err != nil {
			return err
		}

		res, err := exec.Execute(cmd.Context(), executor.Request{Definition: def, Tape: tape})
		if err != nil {
			return err
		}
		return cli.PrintResult(cmd.OutOrStdout(), res, asJSON)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("file", "f", "", "Machine definition file (YAML or JSON)")
	runCmd.Flags().StringP("tape", "t", "", "Initial tape, one symbol per character (default: the definition's tape)")
	runCmd.Flags().Bool("json", false, "Print the result as JSON")
	runCmd.Flags().String("cache-dir", "", "Memoize results in this directory")
}
