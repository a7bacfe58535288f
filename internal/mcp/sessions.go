package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cmc-mcp/internal/dispatch"
	"cmc-mcp/internal/registry"
	"cmc-mcp/internal/session"
)

// Sessions serves the streamable HTTP binding. One stateless server is built
// per tier at startup; each request is answered by the server of the tier
// resolved for it, so a caller never sees tools above its plan.
type Sessions struct {
	servers  map[registry.Tier]*server.MCPServer
	handlers map[registry.Tier]*server.StreamableHTTPServer
	fallback registry.Tier
	logger   *slog.Logger
}

// NewSessions builds the per-tier servers. defaults supplies the tier used
// when a request carries none and the process-level credential.
func NewSessions(reg *registry.Registry, d *dispatch.Dispatcher, defaults session.Defaults, logger *slog.Logger) *Sessions {
	s := &Sessions{
		servers:  make(map[registry.Tier]*server.MCPServer),
		handlers: make(map[registry.Tier]*server.StreamableHTTPServer),
		fallback: defaults.Tier,
		logger:   logger,
	}

	for _, tier := range registry.Tiers() {
		srv := NewServer(reg, tier, d, defaults.Credential)
		s.servers[tier] = srv
		s.handlers[tier] = server.NewStreamableHTTPServer(srv,
			server.WithStateLess(true),
			server.WithHTTPContextFunc(requestContext),
		)
	}
	return s
}

// Server returns the MCP server for tier.
func (s *Sessions) Server(tier registry.Tier) *server.MCPServer {
	if srv, ok := s.servers[tier]; ok {
		return srv
	}
	return s.servers[registry.Basic]
}

// Handle answers one parsed request with the server of tier and returns the
// single message to send back. Tool calls read the credential from ctx.
func (s *Sessions) Handle(ctx context.Context, tier registry.Tier, req *JSONRPCRequest) (mcpgo.JSONRPCMessage, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return s.Server(tier).HandleMessage(ctx, raw), nil
}

// ServeHTTP routes r to the streamable server of its resolved tier.
func (s *Sessions) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tier, ok := session.Tier(r.Context())
	if !ok {
		tier = s.fallback
	}
	h, ok := s.handlers[tier]
	if !ok {
		h = s.handlers[registry.Basic]
	}

	s.logger.DebugContext(r.Context(), "mcp_session",
		"tier", tier.String(),
		"correlation_id", session.CorrelationID(r.Context()),
	)
	h.ServeHTTP(w, r)
}

// requestContext carries the session values resolved by middleware into
// the context tool handlers run with.
func requestContext(ctx context.Context, r *http.Request) context.Context {
	rctx := r.Context()
	if credential, ok := session.Credential(rctx); ok {
		ctx = session.WithCredential(ctx, credential)
	}
	if tier, ok := session.Tier(rctx); ok {
		ctx = session.WithTier(ctx, tier)
	}
	if id := session.CorrelationID(rctx); id != "" {
		ctx = session.WithCorrelationID(ctx, id)
	}
	return ctx
}
