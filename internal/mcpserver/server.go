// Package mcpserver exposes the tool registry over the Model Context
// Protocol so chat clients can call the tools directly.
package mcpserver

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/rpc/toolcall"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/tools"
	"github.com/Zayedtasnim7/se333-mcp-agent/internal/version"
)

// New builds an MCP server with every registry tool registered. All calls go
// through the shared dispatcher, so locking and metrics match the other
// transports.
func New(dispatcher *toolcall.Dispatcher, reg *tools.Registry) *server.MCPServer {
	s := server.NewMCPServer(
		"se333-mcp-agent",
		version.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, schema := range reg.Schemas() {
		name := schema.Name
		s.AddTool(buildTool(schema), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			resp := dispatcher.Invoke(ctx, rpc.ToolRequest{
				RequestID: uuid.NewString(),
				Name:      name,
				Args:      req.GetArguments(),
			})
			if resp.Error != "" {
				return mcp.NewToolResultError(resp.Error), nil
			}
			return mcp.NewToolResultText(resp.Output), nil
		})
	}
	return s
}

// NewHTTPHandler mounts the MCP server as a streamable HTTP endpoint at /mcp.
func NewHTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s, server.WithEndpointPath("/mcp"))
}

func buildTool(schema tools.Schema) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(schema.Description)}
	for _, p := range schema.Parameters {
		var popts []mcp.PropertyOption
		if p.Description != "" {
			popts = append(popts, mcp.Description(p.Description))
		}
		if p.Required {
			popts = append(popts, mcp.Required())
		}
		switch p.Type {
		case "boolean":
			opts = append(opts, mcp.WithBoolean(p.Name, popts...))
		default:
			opts = append(opts, mcp.WithString(p.Name, popts...))
		}
	}
	return mcp.NewTool(schema.Name, opts...)
}
