// Package mcp serves the documentation analysis tools over the Model Context
// Protocol, as newline-delimited JSON-RPC 2.0 on stdio.
package mcp

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"

	"smartdocs/internal/analyzer"
	"smartdocs/internal/config"
	"smartdocs/internal/slogutil"
)

// MCPServer represents the MCP server
type MCPServer struct {
	stdin    io.Reader
	stdout   io.Writer
	scanner  *bufio.Scanner
	logger   *slog.Logger
	name     string
	version  string
	analyzer *analyzer.Analyzer
	tools    map[string]ToolHandler
}

// NewMCPServer creates a server that answers tool calls with the given analyzer.
func NewMCPServer(version string, a *analyzer.Analyzer, cfg *config.Config, logger *slog.Logger) *MCPServer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	server := &MCPServer{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		logger:   logger,
		name:     cfg.MCP.ServerName,
		version:  version,
		analyzer: a,
		tools:    make(map[string]ToolHandler),
	}

	server.RegisterTools()
	return server
}

// Start processes messages until the input stream ends or ctx is done.
func (s *MCPServer) Start(ctx context.Context) error {
	s.logger.Info("MCP server starting",
		"name", s.name,
		"version", s.version,
		"tools", len(s.tools),
	)

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("MCP server shutting down (context done)")
			return nil
		}

		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("MCP server shutting down (EOF)")
				return nil
			}

			var perr *errParse
			if stderrors.As(err, &perr) {
				s.logger.Warn("Dropping malformed message", "error", err.Error())
				if werr := s.writeError(nil, ParseError, err.Error()); werr != nil {
					return werr
				}
				continue
			}

			s.logger.Error("Error reading message", "error", err.Error())
			return err
		}

		// Notifications and stray responses don't generate a reply
		response := s.handleMessage(ctx, msg)
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Error("Error writing response", "error", err.Error())
				return err
			}
		}
	}
}

// SetStdin sets the input stream (for testing)
func (s *MCPServer) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil // Reset scanner so it will be recreated with new reader
}

// SetStdout sets the output stream (for testing)
func (s *MCPServer) SetStdout(w io.Writer) {
	s.stdout = w
}

// Name returns the advertised server name.
func (s *MCPServer) Name() string {
	return s.name
}
