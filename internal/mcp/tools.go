package mcp

import (
	"context"
	"time"

	"smartdocs/internal/analyzer"
	"smartdocs/internal/config"
	"smartdocs/internal/model"
	"smartdocs/internal/report"
)

// Tool represents a tool exposed via MCP
type Tool struct {
	Name        string                 `json:"name"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler handles a tool call.
type ToolHandler func(ctx context.Context, params map[string]interface{}) (*ToolResult, error)

// analysisSchema is the input schema shared by every tool.
func analysisSchema(rootDescription string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"rootPath": map[string]interface{}{
				"type":        "string",
				"minLength":   1,
				"description": rootDescription,
			},
			"maxFiles": map[string]interface{}{
				"type":        "integer",
				"minimum":     1,
				"maximum":     config.MaxFilesLimit,
				"description": "Maximum number of files to analyze (default: unlimited)",
			},
			"excludePatterns": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Glob-like path patterns to exclude; ** spans directories, * stays within one",
			},
		},
		"required": []string{"rootPath"},
	}
}

// GetToolDefinitions returns all tool definitions
func (s *MCPServer) GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "analyze_codebase",
			Title:       "Analyze codebase",
			Description: "Analyze the code structure and documentation status under a path",
			InputSchema: analysisSchema("Root path to start the analysis from"),
		},
		{
			Name:        "generate_documentation",
			Title:       "Generate documentation",
			Description: "Generate a markdown documentation report from the analysis results",
			InputSchema: analysisSchema("Root path of the codebase to document"),
		},
		{
			Name:        "detect_missing_docs",
			Title:       "Detect missing docs",
			Description: "Find components without documentation and report them with a severity",
			InputSchema: analysisSchema("Root path to analyze"),
		},
		{
			Name:        "suggest_improvements",
			Title:       "Suggest improvements",
			Description: "Suggest documentation improvements for the codebase",
			InputSchema: analysisSchema("Root path to analyze"),
		},
	}
}

// RegisterTools registers all tool handlers
func (s *MCPServer) RegisterTools() {
	s.tools["analyze_codebase"] = s.toolAnalyzeCodebase
	s.tools["generate_documentation"] = s.renderTool(report.Documentation)
	s.tools["detect_missing_docs"] = s.renderTool(report.MissingDocs)
	s.tools["suggest_improvements"] = s.renderTool(report.Suggestions)
}

// analyze parses the shared arguments and runs an analysis.
func (s *MCPServer) analyze(ctx context.Context, params map[string]interface{}) (*model.AnalysisResult, *analyzer.RunInfo, error) {
	req, err := parseAnalysisRequest(params)
	if err != nil {
		return nil, nil, err
	}
	return s.analyzer.Analyze(ctx, req)
}

func (s *MCPServer) toolAnalyzeCodebase(ctx context.Context, params map[string]interface{}) (*ToolResult, error) {
	result, info, err := s.analyze(ctx, params)
	if err != nil {
		return nil, err
	}

	res := TextResult(report.Summary(result))
	res.Meta = map[string]interface{}{
		"analysis": result,
		"run": map[string]interface{}{
			"runId":      info.RunID,
			"durationMs": info.Duration.Round(time.Millisecond).Milliseconds(),
			"truncated":  info.Truncated,
		},
	}
	return res, nil
}

// renderTool builds a handler that renders the analysis as markdown.
func (s *MCPServer) renderTool(render func(*model.AnalysisResult) string) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (*ToolResult, error) {
		result, _, err := s.analyze(ctx, params)
		if err != nil {
			return nil, err
		}
		return TextResult(render(result)), nil
	}
}
