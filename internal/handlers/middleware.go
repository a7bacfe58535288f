package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"cmc-mcp/internal/session"
)

// CorrelationIDHeader is echoed on every response.
const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationIDMiddleware tags each request with an id, reusing the
// caller's when one is supplied.
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(CorrelationIDHeader, id)
		next.ServeHTTP(w, r.WithContext(session.WithCorrelationID(r.Context(), id)))
	})
}

// SessionMiddleware resolves the credential and tier of each request and
// stores them in its context. Unknown tier names are logged and fail closed
// to Basic.
func SessionMiddleware(defaults session.Defaults, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := session.Resolve(r, defaults)
			if res.UnknownTier != "" {
				logger.Warn("unknown_subscription_level",
					"requested", res.UnknownTier,
					"tier", res.Tier.String(),
					"correlation_id", session.CorrelationID(r.Context()),
				)
			}

			ctx := session.WithTier(r.Context(), res.Tier)
			if res.Credential != "" {
				ctx = session.WithCredential(ctx, res.Credential)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggingMiddleware logs all incoming requests. The query string is not
// logged because it may carry the API key.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			logger.Info("http_request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"correlation_id", session.CorrelationID(r.Context()),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the Flusher of the wrapped
// writer, which the SSE and streamable endpoints need.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// HealthCheckHandler returns a simple health check handler.
func HealthCheckHandler(toolCount int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "healthy",
			"tools":  toolCount,
		})
	}
}
