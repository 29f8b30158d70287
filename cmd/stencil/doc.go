package main

import (
	"os"

	"github.com/aretw0/stencil/internal/cli"
	"github.com/spf13/cobra"
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage stored documents",
	Long:  `List, inspect and remove documents kept in the configured store.`,
}

var docLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer env.Close()
		return cli.ListDocuments(cmd.Context(), os.Stdout, env)
	},
}

var docInspectCmd = &cobra.Command{
	Use:   "inspect <document>",
	Short: "Print a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer env.Close()
		format, _ := cmd.Flags().GetString("format")
		return cli.InspectDocument(cmd.Context(), os.Stdout, env, args[0], format)
	},
}

var docRmCmd = &cobra.Command{
	Use:   "rm <document>...",
	Short: "Remove one or more documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer env.Close()
		return cli.RemoveDocuments(cmd.Context(), os.Stdout, env, args)
	},
}

func init() {
	rootCmd.AddCommand(docCmd)
	docCmd.AddCommand(docLsCmd, docInspectCmd, docRmCmd)
	docInspectCmd.Flags().StringP("format", "f", "json", "Output format (json, yaml)")
}
