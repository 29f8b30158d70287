package main

import (
	"os"

	"github.com/aretw0/stencil/internal/cli"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect the available tools",
}

var toolsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List tools with their shortcuts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer env.Close()
		return cli.ListTools(os.Stdout, env)
	},
}

var toolsDescribeCmd = &cobra.Command{
	Use:   "describe <tool>",
	Short: "Show the documentation and states of a tool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer env.Close()
		raw, _ := cmd.Flags().GetBool("raw")
		return cli.DescribeTool(os.Stdout, env, args[0], raw)
	},
}

var toolsGraphCmd = &cobra.Command{
	Use:   "graph <tool>",
	Short: "Export the state flow of a tool as a Mermaid diagram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer env.Close()
		return cli.GraphTool(os.Stdout, env, args[0])
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsLsCmd, toolsDescribeCmd, toolsGraphCmd)
	toolsDescribeCmd.Flags().Bool("raw", false, "Print markdown without rendering")
}
