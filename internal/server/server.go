// Package server implements the MCP protocol server for agromind-mcp.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fundestpuente/agromind-mcp/internal/catalog"
	"github.com/fundestpuente/agromind-mcp/internal/tools"
)

// Name is reported to clients in serverInfo.
const Name = "agromind-mcp"

// protocolVersion is the MCP revision this server speaks.
const protocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	codeParseError       = -32700
	codeMethodNotFound   = -32601
	codeInvalidParams    = -32602
	codeInternalError    = -32603
	codeResourceNotFound = -32002
)

// Server handles MCP protocol communication over stdio.
type Server struct {
	version string
	toolbox *tools.Toolbox
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// MCPRequest represents an incoming JSON-RPC 2.0 request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC 2.0 response.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC 2.0 error object.
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server that runs tools from toolbox and serves the
// reference stores of cat as resources. A nil logger discards log output.
func New(version string, toolbox *tools.Toolbox, cat *catalog.Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		version: version,
		toolbox: toolbox,
		catalog: cat,
		logger:  logger,
	}
}

// Run serves requests from stdin until EOF or until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve processes line-delimited JSON-RPC requests from r and writes one
// response line per request to w. It returns nil on EOF or when ctx is
// canceled.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down", "reason", context.Cause(ctx))
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("scanner error: %w", err)
				}
				return nil
			}
			if resp := s.handleLine(ctx, line); resp != nil {
				if err := encoder.Encode(resp); err != nil {
					s.logger.Error("failed to encode response", "error", err)
				}
			}
		}
	}
}

func (s *Server) handleLine(ctx context.Context, line []byte) *MCPResponse {
	if len(strings.TrimSpace(string(line))) == 0 {
		return nil
	}

	var req MCPRequest
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger.Warn("failed to parse request", "error", err)
		return s.errorResponse(nil, codeParseError, "Parse error", err.Error())
	}

	return s.handleRequest(ctx, &req)
}

// handleRequest routes JSON-RPC requests to the appropriate handler method.
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	s.logger.Debug("request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "ping":
		return s.successResponse(req.ID, map[string]interface{}{})
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "resources/list":
		return s.handleResourcesList(req)
	case "resources/read":
		return s.handleResourcesRead(req)
	default:
		// Notifications never get a response.
		if strings.HasPrefix(req.Method, "notifications/") {
			return nil
		}
		return s.errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), nil)
	}
}

// handleInitialize responds to the MCP initialize request.
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return s.successResponse(req.ID, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools":     map[string]interface{}{},
			"resources": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    Name,
			"version": s.version,
		},
	})
}

func (s *Server) successResponse(id interface{}, result interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}
