package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"smartdocs/internal/config"
	"smartdocs/internal/slogutil"
	"smartdocs/internal/version"
)

var (
	verbosity  int
	quiet      bool
	configPath string
	logFile    string

	// Set by the persistent pre-run.
	appConfig *config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "smartdocs",
	Short: "smartdocs - documentation coverage for TypeScript, JavaScript and Python",
	Long: `smartdocs parses TypeScript, JavaScript and Python sources with tree-sitter,
finds functions, classes and methods, checks whether each one is documented and
ranks the undocumented ones by how much they matter.

Reports are available on the command line and as MCP tools (smartdocs mcp).`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

func init() {
	rootCmd.SetVersionTemplate("smartdocs version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Disable logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .smartdocs/config.json in the working or home directory)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file, with rotation")
}

// setup loads configuration and builds the logger. Logs always go to stderr
// so stdout stays free for reports and the MCP protocol.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	appConfig = cfg

	level := slogutil.LevelFromString(cfg.Logging.Level)
	if quiet || verbosity > 0 {
		level = slogutil.LevelFromVerbosity(verbosity, quiet)
	}

	file := cfg.Logging.File
	if logFile != "" {
		file = logFile
	}

	l, closer, err := slogutil.Setup(slogutil.Options{
		Level:      level,
		Format:     cfg.Logging.Format,
		Console:    cmd.ErrOrStderr(),
		File:       file,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return err
	}
	logger = l
	logCloser = closer
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadConfigFile(configPath)
	}

	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return config.LoadConfig(dirs...)
}
