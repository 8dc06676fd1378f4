package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartdocs/internal/syntax"
	"smartdocs/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.Full())
		if !syntax.IsAvailable() {
			fmt.Fprintln(out, "tree-sitter: unavailable (built without cgo)")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
