package service

import (
	"context"
	"time"

	"quiz-extractor/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockTextSource ---
type MockTextSource struct {
	mock.Mock
}

func (m *MockTextSource) ExtractText(ctx context.Context, document []byte) (string, error) {
	args := m.Called(ctx, document)
	return args.String(0), args.Error(1)
}

// --- MockCompleter ---
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// --- MockAnswerLookup ---
type MockAnswerLookup struct {
	mock.Mock
}

func (m *MockAnswerLookup) Lookup(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// memoryStore is an in-memory domain.QuestionStore.
type memoryStore struct {
	questions []domain.Question
	loadErr   error
	updateErr error
}

func (s *memoryStore) Load(ctx context.Context) ([]domain.Question, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]domain.Question, len(s.questions))
	copy(out, s.questions)
	return out, nil
}

func (s *memoryStore) Update(ctx context.Context, fn domain.UpdateFunc) ([]domain.Question, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	current, _ := s.Load(ctx)
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	s.questions = next
	return s.Load(ctx)
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return nil
}

var (
	_ domain.TextSource    = (*MockTextSource)(nil)
	_ domain.Completer     = (*MockCompleter)(nil)
	_ domain.AnswerLookup  = (*MockAnswerLookup)(nil)
	_ domain.Cache         = (*MockCache)(nil)
	_ domain.QuestionStore = (*memoryStore)(nil)
)

func strPtr(s string) *string {
	return &s
}
