package service

import (
	"context"
	"fmt"
	"regexp"

	"quiz-extractor/internal/domain"

	"go.uber.org/zap"
)

var standaloneLabel = regexp.MustCompile(`\b([A-D])\b`)

// verificationService implements domain.VerificationService.
type verificationService struct {
	lookup    domain.AnswerLookup
	sourceTag string
	logger    *zap.Logger
}

// NewVerificationService creates a verification pass that tags resolved
// answers with sourceTag.
func NewVerificationService(lookup domain.AnswerLookup, sourceTag string, logger *zap.Logger) (domain.VerificationService, error) {
	if lookup == nil {
		return nil, fmt.Errorf("answer lookup cannot be nil")
	}
	if sourceTag == "" {
		return nil, fmt.Errorf("source tag cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &verificationService{lookup: lookup, sourceTag: sourceTag, logger: logger}, nil
}

// VerifyQuestions looks up the answer of every flagged question, one at a
// time and in order. A failed or ambiguous lookup leaves the question as it
// was; only CorrectAnswer and Source are ever changed.
func (s *verificationService) VerifyQuestions(ctx context.Context, questions []domain.Question) []domain.Question {
	verified := make([]domain.Question, len(questions))
	copy(verified, questions)

	for i := range verified {
		q := &verified[i]
		if !q.NeedsVerification {
			continue
		}

		reply, err := s.lookup.Lookup(ctx, BuildVerificationPrompt(*q))
		if err != nil {
			s.logger.Warn("Could not verify answer for question", zap.Int("question_id", q.ID), zap.Error(err))
			continue
		}

		label, ok := singleLabel(reply)
		if !ok {
			s.logger.Warn("Verification reply has no unambiguous option key",
				zap.Int("question_id", q.ID), zap.String("reply", reply))
			continue
		}
		if len(q.Options) > 0 {
			if _, present := q.Options[label]; !present {
				s.logger.Warn("Verification reply names an option the question does not have",
					zap.Int("question_id", q.ID), zap.String("label", label))
				continue
			}
		}

		q.SetAnswer(label)
		q.Source = s.sourceTag
		s.logger.Info("Verified answer", zap.Int("question_id", q.ID), zap.String("correct_answer", label))
	}

	return verified
}

// singleLabel returns the option key mentioned in reply when exactly one
// distinct standalone A-D letter appears in it.
func singleLabel(reply string) (string, bool) {
	found := ""
	for _, m := range standaloneLabel.FindAllStringSubmatch(reply, -1) {
		if found != "" && m[1] != found {
			return "", false
		}
		found = m[1]
	}
	return found, found != ""
}

var _ domain.VerificationService = (*verificationService)(nil)
