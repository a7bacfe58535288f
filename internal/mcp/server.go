// Package mcp exposes the active CoinMarketCap tools over the Model Context
// Protocol: mcp-go servers for the stdio and streamable HTTP bindings, and
// a small JSON-RPC layer for the single-shot SSE endpoint.
package mcp

import (
	"context"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cmc-mcp/internal/dispatch"
	"cmc-mcp/internal/registry"
	"cmc-mcp/internal/session"
)

// Server identity reported during initialization.
const (
	ServerName    = "CoinMarketCap-MCP"
	ServerVersion = "1.3.7"
)

// BuildTool converts a definition into an mcp-go tool carrying the
// definition's JSON Schema.
func BuildTool(def *registry.ToolDefinition) mcpgo.Tool {
	tool := mcpgo.NewToolWithRawSchema(def.Name, def.Description, def.InputSchema())
	tool.Annotations = mcpgo.ToolAnnotation{
		Title:           def.Name,
		ReadOnlyHint:    boolPtr(true),
		DestructiveHint: boolPtr(false),
		IdempotentHint:  boolPtr(true),
		OpenWorldHint:   boolPtr(true),
	}
	return tool
}

// NewServer returns an MCP server with exactly the tools active at tier.
// Calls use the credential stored in the request context, falling back to
// defaultCredential.
func NewServer(reg *registry.Registry, tier registry.Tier, d *dispatch.Dispatcher, defaultCredential string) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
	)

	for _, def := range reg.Active(tier) {
		s.AddTool(BuildTool(def), toolHandler(def, d, defaultCredential))
	}
	return s
}

func toolHandler(def *registry.ToolDefinition, d *dispatch.Dispatcher, defaultCredential string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		credential, ok := session.Credential(ctx)
		if !ok {
			credential = defaultCredential
		}

		env := d.Dispatch(ctx, def, req.GetArguments(), credential)
		return &mcpgo.CallToolResult{
			Content: []mcpgo.Content{mcpgo.NewTextContent(env.Text())},
			IsError: !env.OK(),
		}, nil
	}
}

func boolPtr(b bool) *bool { return &b }
