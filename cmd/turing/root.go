package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing is a deterministic single-tape Turing machine engine",
	Long: `Turing runs deterministic single-tape Turing machines: built-in demonstration
programs or your own YAML/JSON definitions, from the command line, over HTTP or as
MCP tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("dir", "", "Directory with extra machine definitions (*.yaml, *.json)")
	rootCmd.PersistentFlags().Int("max-steps", 0, "Abort runs after this many steps (0 = unbounded; serve and mcp default to 1000000)")
}

// newLogger builds the logger selected by --log-level.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// cliOptions reads the flags shared by every executor-backed command.
func cliOptions(cmd *cobra.Command) (cli.Options, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return cli.Options{}, err
	}
	dir, _ := cmd.Flags().GetString("dir")
	maxSteps, _ := cmd.Flags().GetInt("max-steps")

	opts := cli.Options{Dir: dir, MaxSteps: maxSteps, Logger: logger}
	if f := cmd.Flags().Lookup("redis"); f != nil {
		opts.RedisAddr = f.Value.String()
	}
	if f := cmd.Flags().Lookup("cache-dir"); f != nil {
		opts.CacheDir = f.Value.String()
	}
	return opts, nil
}

// serviceOptions is cliOptions for the long-running servers: unless --max-steps was
// given, runs are capped at cli.DefaultServiceMaxSteps. An explicit 0 lifts the cap.
func serviceOptions(cmd *cobra.Command) (cli.Options, error) {
	opts, err := cliOptions(cmd)
	if err != nil {
		return opts, err
	}
	if !cmd.Flags().Changed("max-steps") {
		opts.MaxSteps = cli.DefaultServiceMaxSteps
	}
	return opts, nil
}
