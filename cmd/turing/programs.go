package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/spf13/cobra"
)

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List the available programs",
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
		return cli.Programs(cmd.OutOrStdout(), exec)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <program>",
	Short: "Print a program as a definition document",
	Long: `Prints a program as a YAML (default) or JSON definition, ready to be edited and
run again with 'turing run --file'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := resolveArg(cmd, args)
		if err != nil {
			return err
		}
		format := definition.FormatYAML
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			format = definition.FormatJSON
		}
		return cli.Export(cmd.OutOrStdout(), def, format)
	},
}

func init() {
	rootCmd.AddCommand(programsCmd)
	programsCmd.AddCommand(exportCmd)
	exportCmd.Flags().Bool("json", false, "Export as JSON instead of YAML")
}
