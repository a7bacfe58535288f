package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmc-mcp/internal/dispatch"
	"cmc-mcp/internal/mcp"
	"cmc-mcp/internal/models"
	"cmc-mcp/internal/registry"
	"cmc-mcp/internal/session"
	"cmc-mcp/internal/upstream"
)

type upstreamStub struct {
	mu   sync.Mutex
	keys []string
}

type fakeReporter struct {
	report *models.UsageReport
	err    error
	day    time.Time
}

func (f *fakeReporter) Report(_ context.Context, day time.Time) (*models.UsageReport, error) {
	f.day = day
	return f.report, f.err
}

func newTestRouter(t *testing.T, usage UsageReporter, logOut io.Writer) (http.Handler, *upstreamStub) {
	t.Helper()
	stub := &upstreamStub{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.keys = append(stub.keys, r.Header.Get(upstream.APIKeyHeader))
		stub.mu.Unlock()
		_, _ = w.Write([]byte(`{"data":{"value":42}}`))
	}))
	t.Cleanup(srv.Close)

	if logOut == nil {
		logOut = io.Discard
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))

	reg := registry.Default()
	d := dispatch.New(upstream.New(srv.URL, nil, 0), dispatch.WithLogger(logger))
	defaults := session.Defaults{Credential: "env-key", Tier: registry.Basic}

	return NewRouter(RouterDeps{
		Registry: reg,
		Sessions: mcp.NewSessions(reg, d, defaults, logger),
		Defaults: defaults,
		Usage:    usage,
		Logger:   logger,
	}), stub
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","tools":51}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(CorrelationIDHeader))
}

func TestCorrelationIDIsEchoed(t *testing.T) {
	router, _ := newTestRouter(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(CorrelationIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(CorrelationIDHeader))
}

func TestTools_PerRequestTier(t *testing.T) {
	router, _ := newTestRouter(t, nil, nil)

	tests := []struct {
		name     string
		target   string
		header   string
		wantTier string
		want     int
	}{
		{"process default", "/tools", "", "Basic", 26},
		{"header", "/tools", "Enterprise", "Enterprise", 51},
		{"query", "/tools?SUBSCRIPTION_LEVEL=startup", "", "Startup", 40},
		{"unknown fails closed", "/tools", "Gold", "Basic", 26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(session.HeaderTier, tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var list models.ToolList
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
			assert.Equal(t, tt.wantTier, list.Tier)
			assert.Equal(t, tt.want, list.Count)
			assert.Len(t, list.Tools, tt.want)
		})
	}
}

func TestMCPSSE_CallTool(t *testing.T) {
	router, stub := newTestRouter(t, nil, nil)

	body := `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"fearAndGreedLatest","arguments":{}}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp/sse", strings.NewReader(body))
	req.Header.Set(session.HeaderAPIKey, "caller-key")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	payload := strings.TrimSuffix(strings.TrimPrefix(rec.Body.String(), "data: "), "\n\n")
	var resp struct {
		ID     int `json:"id"`
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	assert.Equal(t, 7, resp.ID)
	require.Len(t, resp.Result.Content, 1)
	assert.Equal(t, `{"data":{"value":42}}`, resp.Result.Content[0].Text)

	require.Len(t, stub.keys, 1)
	assert.Equal(t, "caller-key", stub.keys[0])
}

func TestMCPSSE_GatedToolIsUnknown(t *testing.T) {
	router, stub := newTestRouter(t, nil, nil)

	body := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"blockchainStatisticsLatest"}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp/sse", strings.NewReader(body)))

	assert.Contains(t, rec.Body.String(), `"error"`)
	assert.NotContains(t, rec.Body.String(), `"result"`)
	assert.Empty(t, stub.keys)
}

func TestMCPSSE_LegacyMethodsAndTier(t *testing.T) {
	router, stub := newTestRouter(t, nil, nil)

	body := `{"jsonrpc":"2.0","id":3,"method":"list_tools"}`
	req := httptest.NewRequest(http.MethodPost, "/mcp/sse", strings.NewReader(body))
	req.Header.Set(session.HeaderTier, "Hobbyist")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	payload := strings.TrimSuffix(strings.TrimPrefix(rec.Body.String(), "data: "), "\n\n")
	var list struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &list))
	assert.Len(t, list.Result.Tools, 33)

	body = `{"jsonrpc":"2.0","id":4,"method":"call_tool","params":{"name":"fearAndGreedLatest"}}`
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp/sse", strings.NewReader(body)))

	assert.Contains(t, rec.Body.String(), `value`)
	require.Len(t, stub.keys, 1)
	assert.Equal(t, "env-key", stub.keys[0])
}

func TestMCPSSE_ParseError(t *testing.T) {
	router, _ := newTestRouter(t, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp/sse", strings.NewReader(`{`)))

	assert.Contains(t, rec.Body.String(), `"code":-32700`)
}

func TestMCPSSE_RejectsGet(t *testing.T) {
	router, _ := newTestRouter(t, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp/sse", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStreamableEndpointIsMounted(t *testing.T) {
	router, _ := newTestRouter(t, nil, nil)

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), mcp.ServerName)
}

func TestUsage(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		router, _ := newTestRouter(t, nil, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/usage", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("report for date", func(t *testing.T) {
		rep := &fakeReporter{report: &models.UsageReport{Date: "2024-05-01", Total: 3, Tools: map[string]int64{"priceConversion": 3}}}
		router, _ := newTestRouter(t, rep, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/usage?date=2024-05-01", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"date":"2024-05-01","total":3,"tools":{"priceConversion":3}}`, rec.Body.String())
		assert.Equal(t, "2024-05-01", rep.day.Format("2006-01-02"))
	})

	t.Run("bad date", func(t *testing.T) {
		router, _ := newTestRouter(t, &fakeReporter{}, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/usage?date=May", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("backend error", func(t *testing.T) {
		router, _ := newTestRouter(t, &fakeReporter{err: errors.New("down")}, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/usage", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestLoggingNeverIncludesCredential(t *testing.T) {
	var logs bytes.Buffer
	router, _ := newTestRouter(t, nil, &logs)

	body := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"fearAndGreedLatest"}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp/sse?COINMARKETCAP_API_KEY=super-secret", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, logs.String())
	assert.NotContains(t, logs.String(), "super-secret")
}
