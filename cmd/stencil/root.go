package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/stencil/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "stencil",
	Short:         "Stencil is an interactive operator engine for sketch tools",
	Long:          `Stencil drives drawing and constraint tools through their states from input events, scripts or HTTP requests.`,
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
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML or TOML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().String("store", "", "Document store (memory, file, redis)")
}

// setup builds the environment from the global flags. Logs go to stderr
// unless logs is given.
func setup(cmd *cobra.Command, logs io.Writer) (*cli.Env, error) {
	flags := cmd.Flags()
	opts := cli.Options{Stderr: logs}
	opts.ConfigPath, _ = flags.GetString("config")
	opts.LogLevel, _ = flags.GetString("log-level")
	opts.LogJSON, _ = flags.GetBool("log-json")
	opts.Store, _ = flags.GetString("store")
	return cli.Setup(opts)
}
