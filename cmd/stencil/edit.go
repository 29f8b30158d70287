package main

import (
	"io"
	"os"

	"github.com/aretw0/stencil/internal/cli"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <document>",
	Short: "Edit a document in the terminal",
	Long: `Opens the document in a full-screen editor. Tool shortcuts come from the
configured keymap; press q to quit and save.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var logs io.Writer = io.Discard
		if path, _ := cmd.Flags().GetString("log-file"); path != "" {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return err
			}
			defer f.Close()
			logs = f
		}
		env, err := setup(cmd, logs)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.Edit(ctx, env, args[0])
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().String("log-file", "", "Write logs to this file instead of discarding them")
}
