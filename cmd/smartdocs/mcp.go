package main

import (
	"github.com/spf13/cobra"

	"smartdocs/internal/analyzer"
	"smartdocs/internal/mcp"
	"smartdocs/internal/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Start a Model Context Protocol server that speaks JSON-RPC over stdin/stdout.

Tools: analyze_codebase, generate_documentation, detect_missing_docs, suggest_improvements.
Logs are written to stderr (and --log-file), never to stdout.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	a := analyzer.NewDefault(appConfig, logger)
	server := mcp.NewMCPServer(version.Version, a, appConfig, logger)

	logger.Info("Starting MCP server", "name", server.Name(), "version", version.Version)
	return server.Start(cmd.Context())
}
