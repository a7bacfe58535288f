// Package dispatch turns one tool invocation into one CoinMarketCap request
// and wraps the outcome in an envelope.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"cmc-mcp/internal/metrics"
	"cmc-mcp/internal/models"
	"cmc-mcp/internal/registry"
	"cmc-mcp/internal/session"
	"cmc-mcp/internal/upstream"
)

// ErrMissingCredential is reported when no API key is configured.
const ErrMissingCredential = "COINMARKETCAP_API_KEY is not set"

const upstreamErrorPrefix = "Error fetching data from CoinMarketCap: "

// Fetcher performs the upstream GET. *upstream.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, path, rawQuery, apiKey string) (json.RawMessage, error)
}

// UsageRecorder observes tools that reached the upstream API.
type UsageRecorder interface {
	Record(ctx context.Context, tool string)
}

// Dispatcher is stateless between calls and safe for concurrent use.
type Dispatcher struct {
	client  Fetcher
	logger  *slog.Logger
	metrics *metrics.Metrics
	usage   UsageRecorder
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithMetrics records invocation counters and upstream latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithUsage records each upstream call in a usage ledger.
func WithUsage(u UsageRecorder) Option {
	return func(d *Dispatcher) { d.usage = u }
}

// New creates a Dispatcher that issues requests through client.
func New(client Fetcher, opts ...Option) *Dispatcher {
	d := &Dispatcher{client: client}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

// Dispatch validates params against def, performs exactly one upstream GET
// and returns its payload unmodified. Every failure, including a missing
// credential or invalid arguments, is returned as a Failure envelope; no
// upstream request is made in those cases.
func (d *Dispatcher) Dispatch(ctx context.Context, def *registry.ToolDefinition, params map[string]any, credential string) models.Envelope {
	start := time.Now()
	correlationID := session.CorrelationID(ctx)

	payload, err := d.call(ctx, def, params, credential, correlationID)
	latency := time.Since(start).Milliseconds()

	var env models.Envelope
	if err != nil {
		env = envelopeFromError(err)
		logDispatchError(ctx, d.logger, def.Name, correlationID, env.Status(), env.Failure.Message, latency)
		if d.metrics != nil {
			d.metrics.RecordError("dispatcher", errorType(err))
		}
	} else {
		env = models.Success(payload)
		logDispatchSuccess(ctx, d.logger, def.Name, correlationID, latency)
	}

	if d.metrics != nil {
		d.metrics.RecordInvocation(def.Name, env.OK(), env.Status())
	}
	return env
}

func (d *Dispatcher) call(ctx context.Context, def *registry.ToolDefinition, params map[string]any, credential, correlationID string) (json.RawMessage, error) {
	if credential == "" {
		return nil, &CallerError{Message: ErrMissingCredential, Status: http.StatusForbidden}
	}

	args, err := def.Validate(params)
	if err != nil {
		return nil, &CallerError{Message: err.Error(), Status: http.StatusBadRequest}
	}

	path, rawQuery, err := BuildRequest(def, args)
	if err != nil {
		return nil, err
	}

	logDispatchRequest(ctx, d.logger, def.Name, path, correlationID)

	start := time.Now()
	body, err := d.client.Get(ctx, path, rawQuery, credential)
	if d.metrics != nil {
		d.metrics.RecordUpstreamLatency(def.Name, time.Since(start))
	}
	if d.usage != nil && reachedUpstream(err) {
		d.usage.Record(ctx, def.Name)
	}
	if err != nil {
		return nil, upstreamError(err)
	}
	return body, nil
}

// reachedUpstream reports whether the API answered, successfully or with a
// status error.
func reachedUpstream(err error) bool {
	var se *upstream.StatusError
	return err == nil || errors.As(err, &se)
}

func upstreamError(err error) error {
	var se *upstream.StatusError
	if errors.As(err, &se) {
		return &UpstreamError{
			Message: upstreamErrorPrefix + se.StatusText(),
			Status:  se.StatusCode,
			Err:     err,
		}
	}
	return &UpstreamError{
		Message: upstreamErrorPrefix + err.Error(),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}
