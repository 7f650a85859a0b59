package llm

import (
	"context"
	"errors"
	"fmt"

	"quiz-extractor/internal/domain"
	"quiz-extractor/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// LangchainCompleter implements domain.Completer on top of any langchaingo
// model (ollama, openai, ...).
type LangchainCompleter struct {
	model       llms.Model
	temperature float64
}

// NewLangchainCompleter wraps model.
func NewLangchainCompleter(model llms.Model) (*LangchainCompleter, error) {
	if model == nil {
		return nil, fmt.Errorf("langchain model cannot be nil")
	}
	return &LangchainCompleter{model: model, temperature: 0.1}, nil
}

// Complete implements domain.Completer.
func (c *LangchainCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()

	response, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(c.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err))
		} else {
			l.Error("Failed to get response from LLM", zap.Error(err))
		}
		return "", domain.NewLLMServiceError(err)
	}

	l.Debug("Raw LLM response received", zap.String("raw_response", response))
	return response, nil
}

var _ domain.Completer = (*LangchainCompleter)(nil)
