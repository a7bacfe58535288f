package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter writes JSON-RPC responses as server-sent events.
type SSEWriter struct {
	w http.ResponseWriter
}

// NewSSEWriter sets the event-stream headers on w.
func NewSSEWriter(w http.ResponseWriter) *SSEWriter {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	return &SSEWriter{w: w}
}

// Send writes msg as one "data:" event and flushes it.
// http.ResponseController reaches the Flusher through middleware wrappers.
func (s *SSEWriter) Send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal SSE data: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("failed to write SSE event: %w", err)
	}

	if err := http.NewResponseController(s.w).Flush(); err != nil {
		return fmt.Errorf("failed to flush SSE event: %w", err)
	}
	return nil
}

// SendError writes a JSON-RPC error event.
func (s *SSEWriter) SendError(id any, rpcErr *RPCError) error {
	return s.Send(NewJSONRPCError(id, rpcErr))
}
