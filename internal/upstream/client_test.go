package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_SendsHeadersAndQuery(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":1}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", nil, 0)
	body, err := c.Get(context.Background(), "/v1/key/info", "a=1", "secret")
	require.NoError(t, err)

	assert.JSONEq(t, `{"data":{"id":1}}`, string(body))
	assert.Equal(t, "/v1/key/info", got.URL.Path)
	assert.Equal(t, "a=1", got.URL.RawQuery)
	assert.Equal(t, "secret", got.Header.Get(APIKeyHeader))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
}

func TestGet_NoQueryOmitsQuestionMark(t *testing.T) {
	var rawURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawURI = r.RequestURI
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil, 0).Get(context.Background(), "/v3/fear-and-greed/latest", "", "k")
	require.NoError(t, err)
	assert.Equal(t, "/v3/fear-and-greed/latest", rawURI)
}

func TestGet_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":{"error_message":"bad key"}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil, 0).Get(context.Background(), "/v1/key/info", "", "k")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "Unauthorized", se.StatusText())
}

func TestGet_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil, 0).Get(context.Background(), "/v1/key/info", "", "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestStatusText_FallsBackToCode(t *testing.T) {
	e := &StatusError{StatusCode: http.StatusTooManyRequests}
	assert.Equal(t, "Too Many Requests", e.StatusText())
}
