package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"dirgate-hq/dirgate/pkg/directory"
	"dirgate-hq/dirgate/pkg/graph"
)

// Server wraps the MCP server with the directory tool catalog.
type Server struct {
	mcp    *mcp.Server
	dir    *directory.Service
	logger *slog.Logger
}

// NewServer creates an MCP server with every directory tool registered.
func NewServer(dir *directory.Service, logger *slog.Logger, version string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		dir:    dir,
		logger: logger,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "dirgate",
				Version: version,
			},
			nil,
		),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Run serves the tool catalog over the given transport until the context is
// cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcp.Run(ctx, transport)
}

func (s *Server) registerTools() {
	s.registerUserTools()
	s.registerGroupTools()
	s.registerApplicationTools()
	s.registerDeviceTools()
	s.registerReportTools()
}

// operation is the body of one tool: it receives the parsed argument bag and
// returns whatever should be serialized into the text content of the result.
type operation func(ctx context.Context, args map[string]any) (any, error)

// handle adapts an operation to the MCP handler contract. Argument decoding
// failures and operation errors become error results, never protocol errors:
// the client always receives a classified payload it can act on.
func (s *Server) handle(name string, op operation) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("tool panicked", "tool", name, "panic", r)
				result = errResult(graph.Errorf(graph.KindInternal, "tool %s failed: %v", name, r))
				err = nil
			}
		}()

		args, perr := parseArgs(req)
		if perr != nil {
			return errResult(graph.NewError(graph.KindInvalidParameter, perr.Error())), nil
		}

		out, oerr := op(ctx, args)
		if oerr != nil {
			classified := graph.Classify(oerr)
			s.logger.Warn("tool failed",
				"tool", name,
				"kind", string(classified.Kind),
				"error", classified.Message)
			return errResult(classified), nil
		}
		return jsonResult(out), nil
	}
}

// parseArgs unmarshals the raw JSON arguments into a map. A missing argument
// object is treated as empty.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}
