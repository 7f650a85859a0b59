package service

import (
	"context"
	"fmt"

	"quiz-extractor/internal/domain"

	"go.uber.org/zap"
)

// questionStoreService implements domain.QuestionStoreService.
type questionStoreService struct {
	store  domain.QuestionStore
	logger *zap.Logger
}

// NewQuestionStoreService creates a new questionStoreService.
func NewQuestionStoreService(store domain.QuestionStore, logger *zap.Logger) (domain.QuestionStoreService, error) {
	if store == nil {
		return nil, fmt.Errorf("question store cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &questionStoreService{store: store, logger: logger}, nil
}

// MergeQuestions renumbers batch to follow the highest id in existing and
// returns existing followed by the renumbered batch. Neither input slice is
// modified.
func MergeQuestions(existing, batch []domain.Question) []domain.Question {
	merged := make([]domain.Question, 0, len(existing)+len(batch))
	merged = append(merged, existing...)

	nextID := domain.MaxID(existing) + 1
	for i, q := range batch {
		q.ID = nextID + i
		merged = append(merged, q)
	}
	return merged
}

// SaveQuestions appends batch to the stored list in one atomic
// read-modify-write and returns the combined list.
func (s *questionStoreService) SaveQuestions(ctx context.Context, batch []domain.Question) ([]domain.Question, error) {
	var existingCount int
	all, err := s.store.Update(ctx, func(existing []domain.Question) ([]domain.Question, error) {
		existingCount = len(existing)
		return MergeQuestions(existing, batch), nil
	})
	if err != nil {
		s.logger.Error("Failed to save questions", zap.Error(err), zap.Int("batch_size", len(batch)))
		return nil, err
	}

	s.logger.Info("Saved questions",
		zap.Int("existing", existingCount),
		zap.Int("added", len(batch)),
		zap.Int("total", len(all)),
	)
	return all, nil
}

// ListQuestions returns the stored list.
func (s *questionStoreService) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	questions, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load questions", zap.Error(err))
		return nil, err
	}
	return questions, nil
}

var _ domain.QuestionStoreService = (*questionStoreService)(nil)
