package service

import (
	"context"
	"fmt"
	"time"

	"quiz-extractor/internal/domain"
	"quiz-extractor/internal/util"

	"go.uber.org/zap"
)

// documentService implements domain.DocumentProcessor by chaining
// extraction, verification and persistence.
type documentService struct {
	extraction   domain.ExtractionService
	verification domain.VerificationService
	storeService domain.QuestionStoreService
	store        domain.QuestionStore
	logger       *zap.Logger
}

// NewDocumentService creates a new documentService. verification may be nil
// when answer verification is disabled.
func NewDocumentService(
	extraction domain.ExtractionService,
	verification domain.VerificationService,
	storeService domain.QuestionStoreService,
	store domain.QuestionStore,
	logger *zap.Logger,
) (domain.DocumentProcessor, error) {
	if extraction == nil {
		return nil, fmt.Errorf("extraction service cannot be nil")
	}
	if storeService == nil || store == nil {
		return nil, fmt.Errorf("question store cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &documentService{
		extraction:   extraction,
		verification: verification,
		storeService: storeService,
		store:        store,
		logger:       logger,
	}, nil
}

// ProcessDocument extracts questions from document, verifies flagged answers
// when verify is set and a verifier is configured, and appends the batch to
// the stored list.
func (s *documentService) ProcessDocument(ctx context.Context, document []byte, verify bool) (*domain.ProcessResult, error) {
	runID := util.NewULID()
	log := s.logger.With(zap.String("run_id", runID))
	start := time.Now()
	log.Info("Processing document", zap.Int("bytes", len(document)), zap.Bool("verify", verify))

	questions, err := s.extraction.ExtractQuestions(ctx, document)
	if err != nil {
		log.Error("Extraction failed", zap.Error(err))
		return nil, err
	}

	verified := false
	if verify && s.verification != nil {
		questions = s.verification.VerifyQuestions(ctx, questions)
		verified = true
	}

	all, err := s.storeService.SaveQuestions(ctx, questions)
	if err != nil {
		return nil, err
	}

	log.Info("Document processed",
		zap.Int("extracted", len(questions)),
		zap.Int("total", len(all)),
		zap.Duration("duration", time.Since(start)),
	)
	return &domain.ProcessResult{
		RunID:     runID,
		Extracted: len(questions),
		Verified:  verified,
		Questions: all,
	}, nil
}

// ListQuestions returns the stored list.
func (s *documentService) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	return s.storeService.ListQuestions(ctx)
}

// Ping checks the storage backend.
func (s *documentService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

var _ domain.DocumentProcessor = (*documentService)(nil)
