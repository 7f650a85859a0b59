// Package llm holds the language-model clients: the chat-completion call used
// for extraction, the text-generation call used for answer verification and a
// langchaingo-backed completer for local or alternative providers.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quiz-extractor/internal/domain"
)

// NewHTTPClient returns the client shared by the model adapters. A zero
// timeout leaves requests unbounded; cancellation still flows through ctx.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// postJSON marshals body, POSTs it to url and returns the response. The
// caller owns resp.Body.
func postJSON(ctx context.Context, client *http.Client, url, apiKey string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, domain.NewInternalError("failed to encode model request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}
	return resp, nil
}

func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewLLMServiceError(fmt.Errorf("read response: %w", err))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domain.NewLLMServiceError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
