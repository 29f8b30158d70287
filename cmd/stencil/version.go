package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/stencil"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of stencil",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stencil version %s\n", strings.TrimSpace(stencil.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
