package mcp

import (
	"context"
	stderrors "errors"
	"fmt"

	"smartdocs/internal/envelope"
	"smartdocs/internal/errors"
	"smartdocs/internal/output"
)

// handleMessage processes an incoming MCP message and returns a response
func (s *MCPServer) handleMessage(ctx context.Context, msg *MCPMessage) *MCPMessage {
	// This server never issues requests, so responses are unexpected
	if msg.IsResponse() {
		s.logger.Warn("Ignoring unexpected response", "id", msg.Id)
		return nil
	}

	if msg.IsRequest() {
		return s.handleRequest(ctx, msg)
	}

	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}

	return NewErrorMessage(msg.Id, InvalidRequest, "Invalid message: not a request or notification", nil)
}

// handleRequest handles a JSON-RPC request
func (s *MCPServer) handleRequest(ctx context.Context, msg *MCPMessage) *MCPMessage {
	s.logger.Debug("Handling request",
		"method", msg.Method,
		"id", msg.Id,
	)

	switch msg.Method {
	case "initialize":
		return s.handleInitializeRequest(msg)
	case "ping":
		return NewResultMessage(msg.Id, map[string]interface{}{})
	case "tools/list":
		return NewResultMessage(msg.Id, map[string]interface{}{
			"tools": s.GetToolDefinitions(),
		})
	case "tools/call":
		return s.handleCallToolRequest(ctx, msg)
	default:
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("Method not found: %s", msg.Method), nil)
	}
}

// handleNotification handles a JSON-RPC notification
func (s *MCPServer) handleNotification(msg *MCPMessage) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("Client initialized")
	case "notifications/cancelled":
		s.logger.Debug("Client cancelled a request", "params", msg.Params)
	default:
		s.logger.Debug("Unknown notification",
			"method", msg.Method,
		)
	}
}

// handleInitializeRequest handles the initialize request
func (s *MCPServer) handleInitializeRequest(msg *MCPMessage) *MCPMessage {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		params = make(map[string]interface{})
	}

	result, err := s.handleInitialize(params)
	if err != nil {
		return NewErrorMessage(msg.Id, InternalError, err.Error(), nil)
	}

	return NewResultMessage(msg.Id, result)
}

// handleCallToolRequest handles the tools/call request
func (s *MCPServer) handleCallToolRequest(ctx context.Context, msg *MCPMessage) *MCPMessage {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		return NewErrorMessage(msg.Id, InvalidParams, "Invalid params: expected object", nil)
	}

	result, err := s.handleCallTool(ctx, params)
	if err != nil {
		return NewErrorMessage(msg.Id, rpcCode(err), err.Error(), errorData(err))
	}

	return NewResultMessage(msg.Id, result)
}

// rpcCode maps request-shaped failures to InvalidParams.
func rpcCode(err error) int {
	switch errors.CodeOf(err) {
	case errors.InvalidArgument, errors.ResourceNotFound:
		return InvalidParams
	default:
		return InternalError
	}
}

func errorData(err error) interface{} {
	var sde *errors.SmartDocsError
	if stderrors.As(err, &sde) {
		return map[string]interface{}{
			"code":    sde.Code,
			"details": sde.Details,
		}
	}
	return nil
}

// handleCallTool executes a tool. Invalid arguments and unknown tools are
// protocol errors; failures while running a valid call become an isError
// result carrying an error envelope.
func (s *MCPServer) handleCallTool(ctx context.Context, params map[string]interface{}) (*ToolResult, error) {
	toolName, ok := params["name"].(string)
	if !ok || toolName == "" {
		return nil, errors.NewInvalidArgumentError("name", "tool name is required")
	}

	toolParams, ok := params["arguments"].(map[string]interface{})
	if !ok {
		toolParams = make(map[string]interface{})
	}

	handler, exists := s.tools[toolName]
	if !exists {
		return nil, errors.NewResourceNotFoundError("tool", toolName)
	}

	s.logger.Info("Calling tool",
		"tool", toolName,
		"params", toolParams,
	)

	result, err := handler(ctx, toolParams)
	if err != nil {
		if errors.Is(err, errors.InvalidArgument) {
			return nil, err
		}

		s.logger.Warn("Tool failed",
			"tool", toolName,
			"error", err.Error(),
		)
		return errorResult(err)
	}

	return result, nil
}

// errorResult wraps err in an envelope rendered as the result text.
func errorResult(err error) (*ToolResult, error) {
	resp := envelope.New().Error(err).Build()
	data, encErr := output.DeterministicEncode(resp)
	if encErr != nil {
		return nil, errors.NewOperationError("marshal error response", encErr)
	}

	result := TextResult(string(data))
	result.IsError = true
	return result, nil
}
