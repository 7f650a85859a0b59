package store

import (
	"context"
	"errors"
	"fmt"

	"quiz-extractor/internal/domain"
	"quiz-extractor/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const maxTxAttempts = 5

// RedisQuestionStore keeps the question list under one Redis string key.
// Updates run as WATCH/MULTI/EXEC optimistic transactions, so concurrent
// writers retry instead of overwriting each other.
type RedisQuestionStore struct {
	client *redis.Client
	key    string
}

// NewRedisQuestionStore creates a store bound to key.
func NewRedisQuestionStore(client *redis.Client, key string) (*RedisQuestionStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if key == "" {
		return nil, fmt.Errorf("storage key cannot be empty")
	}
	return &RedisQuestionStore{client: client, key: key}, nil
}

// Load implements domain.QuestionStore.
func (s *RedisQuestionStore) Load(ctx context.Context) ([]domain.Question, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Question{}, nil
		}
		return nil, domain.NewStorageError("failed to read stored questions", err)
	}
	questions, err := decodeList(raw)
	if err != nil {
		return nil, domain.NewStorageError("stored questions are corrupt", err)
	}
	return questions, nil
}

// Update implements domain.QuestionStore.
func (s *RedisQuestionStore) Update(ctx context.Context, fn domain.UpdateFunc) ([]domain.Question, error) {
	var written []domain.Question

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, s.key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		next, payload, err := applyUpdate(raw, fn)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, payload, 0)
			return nil
		})
		if err == nil {
			written = next
		}
		return err
	}

	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if err == nil {
			return written, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			logger.Get().Warn("Stored questions changed concurrently, retrying update",
				zap.String("key", s.key), zap.Int("attempt", attempt))
			continue
		}
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewStorageError("failed to update stored questions", err)
	}
	return nil, domain.NewStorageError("failed to update stored questions", fmt.Errorf("gave up after %d conflicting attempts", maxTxAttempts))
}

// Ping implements domain.QuestionStore.
func (s *RedisQuestionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var _ domain.QuestionStore = (*RedisQuestionStore)(nil)
