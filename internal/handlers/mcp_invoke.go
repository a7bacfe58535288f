package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"cmc-mcp/internal/mcp"
	"cmc-mcp/internal/session"
)

// MCPInvokeHandler answers one JSON-RPC request per POST with a single SSE
// event, using the MCP server of the request's tier.
type MCPInvokeHandler struct {
	sessions *mcp.Sessions
	logger   *slog.Logger
}

// NewMCPInvokeHandler creates the single-shot SSE handler.
func NewMCPInvokeHandler(sessions *mcp.Sessions, logger *slog.Logger) *MCPInvokeHandler {
	return &MCPInvokeHandler{
		sessions: sessions,
		logger:   logger.With("handler", "mcp_sse"),
	}
}

// ServeHTTP handles POST /mcp/sse.
func (h *MCPInvokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Only POST requests are supported")
		return
	}

	start := time.Now()
	ctx := r.Context()
	correlationID := session.CorrelationID(ctx)

	req, err := mcp.ParseJSONRPCRequest(r.Body)
	if err != nil {
		rpcErr := mcp.FormatMCPError(err)
		h.logger.Warn("mcp_parse_error", "code", rpcErr.Code, "correlation_id", correlationID)
		if err := mcp.NewSSEWriter(w).SendError(nil, rpcErr); err != nil {
			h.logger.Error("sse_write_failed", "error", err, "correlation_id", correlationID)
		}
		return
	}

	tier, _ := session.Tier(ctx)
	h.logger.Info("mcp_request",
		"method", req.Method,
		"tier", tier.String(),
		"correlation_id", correlationID,
	)

	msg, err := h.sessions.Handle(ctx, tier, req)
	if err != nil {
		rpcErr := mcp.FormatMCPError(err)
		h.logger.Error("mcp_error", "error", err, "correlation_id", correlationID)
		_ = mcp.NewSSEWriter(w).SendError(req.ID, rpcErr)
		return
	}
	if msg == nil {
		// Notifications have no response.
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if err := mcp.NewSSEWriter(w).Send(msg); err != nil {
		h.logger.Error("sse_write_failed", "error", err, "correlation_id", correlationID)
		return
	}

	h.logger.Debug("mcp_response_sent",
		"method", req.Method,
		"latency_ms", time.Since(start).Milliseconds(),
		"correlation_id", correlationID,
	)
}
