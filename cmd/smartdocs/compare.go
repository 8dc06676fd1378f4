package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartdocs/internal/output"
)

var compareCmd = &cobra.Command{
	Use:   "compare <old.json> <new.json>",
	Short: "Check whether two saved JSON reports match",
	Long: `Compare two reports written with --format json, ignoring per-run fields
(run id and duration). Compressed reports (.gz, .zst) are read transparently.

Exits non-zero when the reports differ.`,
	Example: `  smartdocs analyze . -f json -o before.json.zst
  smartdocs analyze . -f json -o after.json.zst
  smartdocs compare before.json.zst after.json.zst`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	a, err := output.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	b, err := output.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	equal, reason := output.CompareSnapshots(a, b)
	if !equal {
		return fmt.Errorf("%s and %s: %s", args[0], args[1], reason)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Reports match")
	return nil
}
