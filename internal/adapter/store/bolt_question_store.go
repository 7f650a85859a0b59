package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quiz-extractor/internal/domain"

	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("quiz")

// BoltQuestionStore keeps the question list in an embedded bbolt file. Every
// Update is one bbolt read-write transaction, which bbolt serialises.
type BoltQuestionStore struct {
	db  *bolt.DB
	key []byte
}

// OpenBoltQuestionStore opens (creating if needed) the database at path.
func OpenBoltQuestionStore(path, key string) (*BoltQuestionStore, error) {
	if key == "" {
		return nil, fmt.Errorf("storage key cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for BoltDB: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltQuestionStore{db: db, key: []byte(key)}, nil
}

// Load implements domain.QuestionStore.
func (s *BoltQuestionStore) Load(ctx context.Context) ([]domain.Question, error) {
	var questions []domain.Question
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		questions, err = decodeList(tx.Bucket(bucketName).Get(s.key))
		return err
	})
	if err != nil {
		return nil, domain.NewStorageError("failed to read stored questions", err)
	}
	return questions, nil
}

// Update implements domain.QuestionStore.
func (s *BoltQuestionStore) Update(ctx context.Context, fn domain.UpdateFunc) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var written []domain.Question
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		next, payload, err := applyUpdate(b.Get(s.key), fn)
		if err != nil {
			return err
		}
		if err := b.Put(s.key, payload); err != nil {
			return err
		}
		written = next
		return nil
	})
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewStorageError("failed to update stored questions", err)
	}
	return written, nil
}

// Ping implements domain.QuestionStore.
func (s *BoltQuestionStore) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketName) == nil {
			return fmt.Errorf("bucket %q is missing", bucketName)
		}
		return nil
	})
}

// Close closes the BoltDB database
func (s *BoltQuestionStore) Close() error {
	return s.db.Close()
}

var _ domain.QuestionStore = (*BoltQuestionStore)(nil)
