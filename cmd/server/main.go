package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"cmc-mcp/internal/config"
	"cmc-mcp/internal/dispatch"
	"cmc-mcp/internal/handlers"
	"cmc-mcp/internal/mcp"
	"cmc-mcp/internal/metrics"
	"cmc-mcp/internal/registry"
	"cmc-mcp/internal/session"
	"cmc-mcp/internal/upstream"
	"cmc-mcp/internal/usage"
)

func main() {
	configPath := flag.String("config", "", "optional TOML file overriding environment configuration")
	flag.Parse()

	// A missing .env is normal in production.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// stdout carries the stdio protocol, so logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	tier, ok := cfg.Tier()
	if !ok {
		logger.Warn("unknown_subscription_level",
			"requested", cfg.SubscriptionLevel,
			"tier", tier.String(),
		)
	}

	logger.Info("mcp_service_starting",
		"server", mcp.ServerName,
		"version", mcp.ServerVersion,
		"tier", tier.String(),
		"transport", string(cfg.Transport),
		"port", cfg.Port,
		"api_key_set", cfg.APIKey != "",
		"usage_ledger", cfg.RedisURL != "",
	)

	reg := registry.Default()
	m := metrics.New()
	for _, t := range registry.Tiers() {
		m.RecordRegisteredTools(t.String(), len(reg.Active(t)))
	}

	opts := []dispatch.Option{
		dispatch.WithLogger(logger.With("component", "dispatcher")),
		dispatch.WithMetrics(m),
	}

	var usageReporter handlers.UsageReporter
	if cfg.RedisURL != "" {
		ledger, err := usage.New(cfg.RedisURL, cfg.RedisPassword, cfg.UsageTTL(), logger.With("component", "usage"))
		if err != nil {
			// The ledger is observational; run without it.
			logger.Warn("usage_ledger_unavailable", "error", err)
		} else {
			defer ledger.Close()
			opts = append(opts, dispatch.WithUsage(ledger))
			usageReporter = ledger
			logger.Info("usage_ledger_initialized", "ttl_hours", cfg.UsageTTLHours)
		}
	}

	client := upstream.New(cfg.BaseURL, nil, cfg.UpstreamTimeout())
	dispatcher := dispatch.New(client, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stdioDone := make(chan error, 1)
	if cfg.ServesStdio() {
		srv := mcp.NewServer(reg, tier, dispatcher, cfg.APIKey)
		stdio := server.NewStdioServer(srv)
		stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

		go func() {
			logger.Info("stdio_server_listening", "tools", len(reg.Active(tier)))
			stdioDone <- stdio.Listen(ctx, os.Stdin, os.Stdout)
		}()
	}

	var httpSrv *http.Server
	if cfg.ServesHTTP() {
		defaults := session.Defaults{Credential: cfg.APIKey, Tier: tier}
		router := handlers.NewRouter(handlers.RouterDeps{
			Registry: reg,
			Sessions: mcp.NewSessions(reg, dispatcher, defaults, logger.With("component", "sessions")),
			Defaults: defaults,
			Usage:    usageReporter,
			Metrics:  m.Handler(),
			Logger:   logger,
		})

		httpSrv = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			logger.Info("http_server_listening", "port", cfg.Port, "status", "healthy")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server_error", "error", err)
				stop()
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown_signal_received")
	case err := <-stdioDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("stdio_server_error", "error", err)
		} else {
			logger.Info("stdio_server_closed")
		}
		if httpSrv != nil {
			// The HTTP binding keeps serving after the stdio client disconnects.
			<-ctx.Done()
			logger.Info("shutdown_signal_received")
		}
	}

	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server_shutdown_error", "error", err)
		}
	}

	logger.Info("mcp_service_stopped")
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if path != "" {
		o, err := config.LoadOverrides(path)
		if err != nil {
			return nil, err
		}
		cfg.Apply(o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
