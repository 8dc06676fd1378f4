package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"smartdocs/internal/config"
)

var (
	initForce    bool
	initProfile  bool
	initMaxFiles int
	initExcludes []string
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write default configuration",
	Long: `Write .smartdocs/config.json with default settings into the target directory.

With --profile, also write a .smartdocs.toml project profile that analysis
runs rooted at that directory pick up automatically.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	initCmd.Flags().BoolVar(&initProfile, "profile", false, "Also write a .smartdocs.toml project profile")
	initCmd.Flags().IntVar(&initMaxFiles, "max-files", 0, "max_files for the project profile")
	initCmd.Flags().StringSliceVar(&initExcludes, "exclude", nil, "Exclude patterns for the project profile")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	configFile := filepath.Join(root, config.Dir, "config.json")
	if err := checkWritable(configFile); err != nil {
		return err
	}
	written, err := config.DefaultConfig().Save(root)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", written)

	if !initProfile {
		return nil
	}

	profile := &config.Profile{Exclude: initExcludes, MaxFiles: initMaxFiles}
	if err := profile.Validate(); err != nil {
		return err
	}
	profileFile := filepath.Join(root, config.ProfileFile)
	if err := checkWritable(profileFile); err != nil {
		return err
	}
	if err := profile.Save(root); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", profileFile)
	return nil
}

func checkWritable(path string) error {
	if initForce {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return nil
}
