package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-extractor/internal/cache"
	"quiz-extractor/internal/domain"
	"quiz-extractor/internal/parser"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// extractionService implements domain.ExtractionService.
type extractionService struct {
	textSource domain.TextSource
	completer  domain.Completer
	cache      domain.Cache
	modelName  string
	replyTTL   time.Duration
	sfGroup    singleflight.Group
	logger     *zap.Logger
}

// NewExtractionService creates a new extraction service. replyCache may be
// nil, in which case every document goes to the model.
func NewExtractionService(
	textSource domain.TextSource,
	completer domain.Completer,
	replyCache domain.Cache,
	modelName string,
	replyTTL time.Duration,
	logger *zap.Logger,
) (domain.ExtractionService, error) {
	if textSource == nil {
		return nil, fmt.Errorf("text source cannot be nil")
	}
	if completer == nil {
		return nil, fmt.Errorf("completer cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &extractionService{
		textSource: textSource,
		completer:  completer,
		cache:      replyCache,
		modelName:  modelName,
		replyTTL:   replyTTL,
		logger:     logger,
	}, nil
}

// ExtractQuestions pulls the document text, asks the model for questions and
// parses its reply. Model and parse errors are returned unchanged so callers
// can tell MODEL_LOADING, REQUEST_FAILED and PARSE_FAILURE apart.
func (s *extractionService) ExtractQuestions(ctx context.Context, document []byte) ([]domain.Question, error) {
	text, err := s.textSource.ExtractText(ctx, document)
	if err != nil {
		s.logger.Error("Failed to extract text from PDF", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Extracted text from PDF", zap.Int("chars", len(text)))

	reply, err := s.reply(ctx, text)
	if err != nil {
		return nil, err
	}

	questions, err := parser.ParseResponse(reply)
	if err != nil {
		s.logger.Error("Failed to parse model response", zap.Error(err), zap.String("reply", reply))
		return nil, err
	}

	for i := range questions {
		q := &questions[i]
		for _, key := range q.DropUnknownOptions() {
			s.logger.Warn("Dropping option with a label outside A-D",
				zap.Int("question_id", q.ID), zap.String("label", key))
		}
		if !q.NeedsVerification && !q.AnswerInOptions() {
			s.logger.Warn("Answer is missing or not among the options, flagging for verification",
				zap.Int("question_id", q.ID), zap.String("correct_answer", q.Answer()))
			q.NeedsVerification = true
		}
	}

	s.logger.Info("Parsed questions from model response", zap.Int("num_questions", len(questions)))
	return questions, nil
}

// reply returns the model's raw reply for text, consulting the reply cache
// first. Concurrent requests for the same text share one model call. Only
// replies that parse are cached.
func (s *extractionService) reply(ctx context.Context, text string) (string, error) {
	cacheKey := cache.ReplyCacheKey(s.modelName, text)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			s.logger.Debug("Model reply cache hit", zap.String("cache_key", cacheKey))
			return cached, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("Failed to read model reply cache", zap.Error(err), zap.String("cache_key", cacheKey))
		}
	}

	res, err, shared := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		reply, err := s.completer.Complete(ctx, BuildExtractionPrompt(text))
		if err != nil {
			s.logger.Error("Model call failed", zap.Error(err))
			return nil, err
		}

		if s.cache != nil {
			if _, parseErr := parser.ParseResponse(reply); parseErr == nil {
				if err := s.cache.Set(ctx, cacheKey, reply, s.replyTTL); err != nil {
					s.logger.Warn("Failed to cache model reply", zap.Error(err), zap.String("cache_key", cacheKey))
				}
			}
		}
		return reply, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		s.logger.Debug("Model reply shared with a concurrent request", zap.String("cache_key", cacheKey))
	}

	reply, ok := res.(string)
	if !ok {
		return "", domain.NewInternalError("unexpected model reply type", fmt.Errorf("%T", res))
	}
	return reply, nil
}

var _ domain.ExtractionService = (*extractionService)(nil)
