package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-extractor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatCompletionClient(t *testing.T) {
	c, err := NewChatCompletionClient("http://localhost", "key", "model", nil)
	assert.NoError(t, err)
	assert.NotNil(t, c)

	_, err = NewChatCompletionClient("", "key", "model", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API URL cannot be empty")

	_, err = NewChatCompletionClient("http://localhost", "key", "", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "model name cannot be empty")
}

func TestChatCompletionClient_Complete_Success(t *testing.T) {
	var got chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"questions\":[]}"}}]}`))
	}))
	defer server.Close()

	client, err := NewChatCompletionClient(server.URL, "secret", "google/gemma-2-2b-it", server.Client())
	require.NoError(t, err)

	content, err := client.Complete(context.Background(), "PROMPT")
	require.NoError(t, err)
	assert.Equal(t, `{"questions":[]}`, content)

	assert.Equal(t, "google/gemma-2-2b-it", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "PROMPT", got.Messages[0].Content)
}

func TestChatCompletionClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		code        domain.ErrorCode
		errContains string
	}{
		{name: "model loading", status: http.StatusServiceUnavailable, body: `{"error":"loading"}`, code: domain.ErrModelLoading, errContains: "try again"},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, code: domain.ErrRequestFailed, errContains: "API request failed: Internal Server Error"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: ``, code: domain.ErrRequestFailed, errContains: "Unauthorized"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, code: domain.ErrLLMServiceError, errContains: "no choices"},
		{name: "invalid body", status: http.StatusOK, body: `<html>`, code: domain.ErrLLMServiceError, errContains: "decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewChatCompletionClient(server.URL, "secret", "m", server.Client())
			require.NoError(t, err)

			content, err := client.Complete(context.Background(), "p")
			require.Error(t, err)
			assert.Empty(t, content)
			assert.True(t, domain.IsCode(err, tt.code), "got %v", err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestChatCompletionClient_Complete_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"late"}}]}`))
	}))
	defer server.Close()

	client, err := NewChatCompletionClient(server.URL, "", "m", server.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Complete(ctx, "p")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ErrLLMServiceError))
	assert.ErrorIs(t, err, context.Canceled)
}
