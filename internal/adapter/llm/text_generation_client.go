package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"quiz-extractor/internal/domain"
	"quiz-extractor/internal/logger"

	"go.uber.org/zap"
)

type generationParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type textGenerationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
}

type generatedText struct {
	GeneratedText string `json:"generated_text"`
}

// TextGenerationClient implements domain.AnswerLookup against a
// text-generation inference endpoint.
type TextGenerationClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewTextGenerationClient creates a client POSTing to endpoint. The
// Authorization header is only sent when apiKey is set.
func NewTextGenerationClient(endpoint, apiKey string, httpClient *http.Client) (*TextGenerationClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("text generation endpoint cannot be empty")
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &TextGenerationClient{endpoint: endpoint, apiKey: apiKey, httpClient: httpClient}, nil
}

// Lookup returns the generated text for prompt. The endpoint may answer with
// either [{"generated_text": ...}] or {"generated_text": ...}.
func (c *TextGenerationClient) Lookup(ctx context.Context, prompt string) (string, error) {
	resp, err := postJSON(ctx, c.httpClient, c.endpoint, c.apiKey, textGenerationRequest{
		Inputs: prompt,
		Parameters: generationParameters{
			MaxNewTokens:   10,
			Temperature:    0.3,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp)
		return "", domain.NewRequestFailedError(http.StatusText(resp.StatusCode))
	}

	var raw json.RawMessage
	if err := decodeJSON(resp, &raw); err != nil {
		return "", err
	}

	text, err := generatedTextOf(raw)
	if err != nil {
		return "", domain.NewLLMServiceError(err)
	}
	logger.Get().Debug("Text generation reply received", zap.String("generated_text", text))
	return text, nil
}

func generatedTextOf(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []generatedText
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return "", fmt.Errorf("decode generation list: %w", err)
		}
		if len(items) == 0 {
			return "", fmt.Errorf("text generation response is an empty list")
		}
		return items[0].GeneratedText, nil
	}

	var item generatedText
	if err := json.Unmarshal(trimmed, &item); err != nil {
		return "", fmt.Errorf("decode generation object: %w", err)
	}
	return item.GeneratedText, nil
}

var _ domain.AnswerLookup = (*TextGenerationClient)(nil)
