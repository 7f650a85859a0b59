package llm

import (
	"context"
	"errors"
	"testing"

	"quiz-extractor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type MockModel struct {
	mock.Mock
}

func (m *MockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func (m *MockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

var _ llms.Model = (*MockModel)(nil)

func TestNewLangchainCompleter_NilModel(t *testing.T) {
	_, err := NewLangchainCompleter(nil)
	assert.Error(t, err)
}

func TestLangchainCompleter_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		model := new(MockModel)
		model.On("GenerateContent", ctx, mock.Anything).Return(&llms.ContentResponse{
			Choices: []*llms.ContentChoice{{Content: "1. Q?\nA. a"}},
		}, nil).Once()

		completer, err := NewLangchainCompleter(model)
		require.NoError(t, err)

		reply, err := completer.Complete(ctx, "prompt")
		require.NoError(t, err)
		assert.Equal(t, "1. Q?\nA. a", reply)
		model.AssertExpectations(t)
	})

	t.Run("model error", func(t *testing.T) {
		model := new(MockModel)
		model.On("GenerateContent", ctx, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		completer, err := NewLangchainCompleter(model)
		require.NoError(t, err)

		_, err = completer.Complete(ctx, "prompt")
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.ErrLLMServiceError))
		assert.Contains(t, err.Error(), "connection refused")
		model.AssertExpectations(t)
	})
}
