package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// Dir is the directory holding config.json, in the working directory or home.
	Dir = ".smartdocs"
	// CurrentVersion is the config schema version.
	CurrentVersion = 1
	// MaxFilesLimit is the largest accepted file cap for one run.
	MaxFilesLimit = 5000
	// EnvPrefix prefixes environment overrides, e.g. SMARTDOCS_ANALYSIS_WORKERS.
	EnvPrefix = "SMARTDOCS"
)

// Config represents the complete smartdocs configuration
type Config struct {
	Version  int            `json:"version" mapstructure:"version"`
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
	MCP      MCPConfig      `json:"mcp" mapstructure:"mcp"`
}

// AnalysisConfig tunes analysis runs
type AnalysisConfig struct {
	// Workers bounds concurrent per-file analysis; 0 uses the CPU count.
	Workers int `json:"workers" mapstructure:"workers"`
	// MaxFileSizeBytes turns larger files into parse failures; 0 disables the guard.
	MaxFileSizeBytes int64 `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	// DefaultMaxFiles applies when a request sets no cap; 0 means unlimited.
	DefaultMaxFiles int `json:"defaultMaxFiles" mapstructure:"defaultMaxFiles"`
	// ExcludePatterns are always applied in addition to request patterns.
	ExcludePatterns []string `json:"excludePatterns" mapstructure:"excludePatterns"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format     string `json:"format" mapstructure:"format"`
	Level      string `json:"level" mapstructure:"level"`
	File       string `json:"file" mapstructure:"file"`
	MaxSize    string `json:"maxSize" mapstructure:"maxSize"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxBackups"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	ServerName string `json:"serverName" mapstructure:"serverName"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Analysis: AnalysisConfig{
			Workers:          0,
			MaxFileSizeBytes: 1 << 20,
			DefaultMaxFiles:  0,
			ExcludePatterns:  []string{},
		},
		Logging: LoggingConfig{
			Format:     "text",
			Level:      "warn",
			MaxSize:    "10MB",
			MaxBackups: 3,
		},
		MCP: MCPConfig{
			ServerName: "smart-docs-mcp",
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("analysis.workers", def.Analysis.Workers)
	v.SetDefault("analysis.maxFileSizeBytes", def.Analysis.MaxFileSizeBytes)
	v.SetDefault("analysis.defaultMaxFiles", def.Analysis.DefaultMaxFiles)
	v.SetDefault("analysis.excludePatterns", def.Analysis.ExcludePatterns)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.maxSize", def.Logging.MaxSize)
	v.SetDefault("logging.maxBackups", def.Logging.MaxBackups)
	v.SetDefault("mcp.serverName", def.MCP.ServerName)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("json")
	return v
}

// LoadConfig loads config.json from the first of searchDirs that has a
// .smartdocs directory containing one, falling back to defaults.
// Environment variables override file values.
func LoadConfig(searchDirs ...string) (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	for _, dir := range searchDirs {
		if dir != "" {
			v.AddConfigPath(filepath.Join(dir, Dir))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadConfigFile loads an explicit config file. It is an error if it is missing.
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to <dir>/.smartdocs/config.json
func (c *Config) Save(dir string) (string, error) {
	configDir := filepath.Join(dir, Dir)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(configDir, "config.json")
	return path, os.WriteFile(path, append(data, '\n'), 0o644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: fmt.Sprintf("unsupported config version %d", c.Version)}
	}
	if c.Analysis.Workers < 0 {
		return &ConfigError{Field: "analysis.workers", Message: "must not be negative"}
	}
	if c.Analysis.MaxFileSizeBytes < 0 {
		return &ConfigError{Field: "analysis.maxFileSizeBytes", Message: "must not be negative"}
	}
	if c.Analysis.DefaultMaxFiles < 0 || c.Analysis.DefaultMaxFiles > MaxFilesLimit {
		return &ConfigError{Field: "analysis.defaultMaxFiles", Message: fmt.Sprintf("must be between 0 and %d", MaxFilesLimit)}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be text or json"}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "off", "silent":
	default:
		return &ConfigError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}
	if c.MCP.ServerName == "" {
		return &ConfigError{Field: "mcp.serverName", Message: "must not be empty"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
