package llm

import (
	"context"
	"fmt"
	"net/http"

	"quiz-extractor/internal/domain"
	"quiz-extractor/internal/logger"

	"go.uber.org/zap"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Messages []chatMessage `json:"messages"`
	Model    string        `json:"model"`
	Stream   bool          `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ChatCompletionClient implements domain.Completer against an
// OpenAI-compatible /chat/completions endpoint.
type ChatCompletionClient struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewChatCompletionClient creates a new ChatCompletionClient.
func NewChatCompletionClient(apiURL, apiKey, model string, httpClient *http.Client) (*ChatCompletionClient, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("chat completion API URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("chat completion model name cannot be empty")
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &ChatCompletionClient{
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}, nil
}

// Complete sends prompt as a single user message and returns the content of
// the first choice. A 503 means the model is still loading and is reported
// as MODEL_LOADING; any other non-2xx status is REQUEST_FAILED.
func (c *ChatCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()
	l.Debug("Sending chat completion request", zap.String("url", c.apiURL), zap.String("model", c.model))

	resp, err := postJSON(ctx, c.httpClient, c.apiURL, c.apiKey, chatCompletionRequest{
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Model:    c.model,
		Stream:   false,
	})
	if err != nil {
		l.Error("Chat completion request failed", zap.Error(err))
		return "", err
	}

	l.Debug("Chat completion response status", zap.Int("status", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp)
		if resp.StatusCode == http.StatusServiceUnavailable {
			return "", domain.NewModelLoadingError()
		}
		return "", domain.NewRequestFailedError(http.StatusText(resp.StatusCode))
	}

	var out chatCompletionResponse
	if err := decodeJSON(resp, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", domain.NewLLMServiceError(fmt.Errorf("chat completion response has no choices"))
	}

	content := out.Choices[0].Message.Content
	l.Debug("Chat completion content received", zap.String("content", content))
	return content, nil
}

var _ domain.Completer = (*ChatCompletionClient)(nil)
