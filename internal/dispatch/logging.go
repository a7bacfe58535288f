package dispatch

import (
	"context"
	"log/slog"
)

func logDispatchRequest(ctx context.Context, logger *slog.Logger, tool, path, correlationID string) {
	logger.DebugContext(ctx, "tool_request",
		"component", "dispatcher",
		"tool_name", tool,
		"path", path,
		"correlation_id", correlationID,
	)
}

func logDispatchSuccess(ctx context.Context, logger *slog.Logger, tool, correlationID string, latencyMS int64) {
	logger.InfoContext(ctx, "tool_success",
		"component", "dispatcher",
		"tool_name", tool,
		"correlation_id", correlationID,
		"latency_ms", latencyMS,
	)
}

func logDispatchError(ctx context.Context, logger *slog.Logger, tool, correlationID string, status int, errorMsg string, latencyMS int64) {
	logger.WarnContext(ctx, "tool_error",
		"component", "dispatcher",
		"tool_name", tool,
		"correlation_id", correlationID,
		"status", status,
		"error_message", errorMsg,
		"latency_ms", latencyMS,
	)
}
