package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/ecohack/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(&config.Config{
		LLMBaseURL: srv.URL + "/",
		LLMAPIKey:  "test-key",
		LLMModel:   "test-model",
		LLMTimeout: 5 * time.Second,
	})
}

const completionBody = `{
  "id":"c1","object":"chat.completion","created":1,"model":"test-model",
  "choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"[{\"a\":1}]"}}]
}`

func TestClient_Complete_Success(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody)
	})

	text, err := c.Complete(context.Background(), CompletionRequest{Prompt: "hi", Temperature: 0.7, MaxTokens: 1024})
	require.NoError(t, err)
	assert.Equal(t, `[{"a":1}]`, text)

	assert.Equal(t, "test-model", got["model"])
	assert.Equal(t, 0.7, got["temperature"])
	assert.Equal(t, float64(1024), got["max_tokens"])
}

func TestClient_Complete_Decommissioned(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"model retired","type":"invalid_request_error","code":"model_decommissioned"}}`)
	})

	_, err := c.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue), "got %v", err)
	assert.Equal(t, http.StatusBadRequest, ue.StatusCode)
	assert.True(t, ue.Decommissioned())
	assert.Equal(t, "model retired", ue.Message)
	assert.Equal(t, "test-model", ue.Model)
	assert.Equal(t, 1, calls, "must not retry")
}

func TestClient_Complete_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"message":"busy"}}`)
	})

	_, err := c.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue), "got %v", err)
	assert.Equal(t, http.StatusServiceUnavailable, ue.StatusCode)
	assert.False(t, ue.Decommissioned())
}

func TestClient_Complete_NotConfigured(t *testing.T) {
	c := NewClient(&config.Config{LLMBaseURL: "http://127.0.0.1:1/", LLMModel: "m", LLMTimeout: time.Second})
	_, err := c.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, ErrUpstreamNotConfigured)
}
