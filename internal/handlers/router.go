package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cmc-mcp/internal/mcp"
	"cmc-mcp/internal/registry"
	"cmc-mcp/internal/session"
)

// RouterDeps are the collaborators of the served binding.
type RouterDeps struct {
	Registry *registry.Registry
	Sessions *mcp.Sessions
	Defaults session.Defaults
	Usage    UsageReporter
	Metrics  http.Handler
	Logger   *slog.Logger
}

// NewRouter wires the served binding routes.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(CorrelationIDMiddleware)
	r.Use(LoggingMiddleware(deps.Logger))

	r.Get("/health", HealthCheckHandler(deps.Registry.Len()))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
	r.Get("/usage", UsageHandler(deps.Usage, deps.Logger))

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(deps.Defaults, deps.Logger))

		r.Get("/tools", ToolsHandler(deps.Registry))
		r.Post("/mcp/sse", NewMCPInvokeHandler(deps.Sessions, deps.Logger).ServeHTTP)
		r.Handle("/mcp", deps.Sessions)
	})

	return r
}
