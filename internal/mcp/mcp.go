// Package mcp serves the Toggl tools over the Model Context Protocol.
//
// Any MCP client (Claude Desktop, Cursor, OpenCode, ...) can start, stop and
// summarize Toggl timers by adding this binary as an MCP server.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/louis030195/toggl-mcp/internal/tools"
)

const serverName = "toggl"

// Registrar is the part of *server.MCPServer used to register tools.
type Registrar interface {
	AddTool(tool mcp.Tool, handler server.ToolHandlerFunc)
}

func NewServer(d *tools.Dispatcher, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	registerTools(srv, d)
	return srv
}

func registerTools(srv Registrar, d *tools.Dispatcher) {
	for _, t := range d.Tools() {
		srv.AddTool(ToMCPTool(t), handleTool(d, t.Name))
	}
}

// ToMCPTool converts a catalog entry into its MCP definition.
func ToMCPTool(t tools.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
	for _, a := range t.Args {
		props := []mcp.PropertyOption{mcp.Description(a.Description)}
		if a.Required {
			props = append(props, mcp.Required())
		}
		switch a.Type {
		case tools.TypeInteger:
			opts = append(opts, mcp.WithNumber(a.Name, append(props, integer())...))
		default:
			opts = append(opts, mcp.WithString(a.Name, props...))
		}
	}
	return mcp.NewTool(t.Name, opts...)
}

// ListTools returns the catalog in MCP form, for discovery outside a session.
func ListTools(d *tools.Dispatcher) []mcp.Tool {
	catalog := d.Tools()
	out := make([]mcp.Tool, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, ToMCPTool(t))
	}
	return out
}

// integer narrows a number property to JSON-Schema integer.
func integer() mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = "integer"
	}
}

// ─── Tool Handlers ───────────────────────────────────────────────────────────

func handleTool(d *tools.Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := d.Dispatch(ctx, name, req.GetArguments())
		if err != nil {
			return errorResult(err), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// errorResult reports a failed call as a tool error whose text leads with
// the coarse kind, e.g. "invalid_params: invalid arguments for start: ...".
func errorResult(err error) *mcp.CallToolResult {
	var te *tools.Error
	if errors.As(err, &te) {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", te.Protocol(), te.Message))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %s", tools.Internal, err))
}
