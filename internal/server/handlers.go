package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fundestpuente/agromind-mcp/internal/tools"
)

// ToolCallParams represents the params for a tools/call request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsList returns all tool descriptors.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return s.successResponse(req.ID, mcp.ListToolsResult{
		Tools: GetToolDefinitions(),
	})
}

// handleToolsCall dispatches a tool call. Every outcome, including unknown
// tools and panics, becomes a tool result rather than a protocol error.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	logger := s.logger.With("call_id", uuid.NewString(), "tool", params.Name)
	start := time.Now()

	result, outcome := s.callTool(ctx, params.Name, params.Arguments)

	logger.Info("tool call",
		"outcome", outcome,
		"is_error", result.IsError,
		"duration", time.Since(start),
	)
	return s.successResponse(req.ID, result)
}

// callTool runs the named tool and recovers from panics in tool code.
func (s *Server) callTool(ctx context.Context, name string, args json.RawMessage) (result *mcp.CallToolResult, outcome string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tool panicked", "tool", name, "panic", r, "stack", string(debug.Stack()))
			result = mcp.NewToolResultError(fmt.Sprintf("Error: %v", r))
			outcome = "panic"
		}
	}()

	res, err := s.toolbox.Call(ctx, name, args)
	if err != nil {
		if errors.Is(err, tools.ErrUnknownTool) {
			return mcp.NewToolResultError(fmt.Sprintf("Unknown tool: %s", name)), "unknown_tool"
		}
		return mcp.NewToolResultError("Error: " + err.Error()), "error"
	}
	return mcp.NewToolResultText(res.Text), res.Outcome.String()
}
