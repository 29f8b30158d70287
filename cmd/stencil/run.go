package main

import (
	"fmt"
	"os"

	"github.com/aretw0/stencil/internal/cli"
	"github.com/aretw0/stencil/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a command script against a session",
	Long: `Reads commands from the script file, or from stdin when no file is given,
and prints one report per event. The session document is saved when the script ends.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer env.Close()

		opts := cli.RunOptions{Input: os.Stdin, Output: os.Stdout}
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.StopOnError, _ = cmd.Flags().GetBool("stop-on-error")
		opts.Echo, _ = cmd.Flags().GetBool("echo")
		quiet, _ := cmd.Flags().GetBool("quiet")

		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			opts.Input = f
		}
		if !opts.JSON && !quiet && tui.IsTerminal(os.Stdin) && len(args) == 0 {
			tui.PrintBanner(os.Stdout)
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		sum, err := cli.RunScript(ctx, env, opts)
		if err != nil {
			return err
		}
		if !opts.JSON && !quiet {
			if sig := ctx.Signal(); sig != nil {
				fmt.Printf("interrupted by %v\n", sig)
			}
			fmt.Println(cli.FormatSummary(sum))
		}
		if sum.Errors > 0 && opts.StopOnError {
			return fmt.Errorf("%d commands failed", sum.Errors)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Read NDJSON commands and write NDJSON reports")
	runCmd.Flags().StringP("session", "s", "", "Session (document) id")
	runCmd.Flags().Bool("stop-on-error", false, "Abort at the first failing command")
	runCmd.Flags().Bool("echo", false, "Print each script line before its report")
	runCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner and summary")
}
