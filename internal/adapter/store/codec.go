// Package store persists the question list as a single JSON-encoded
// {"questions": [...]} entry in a key-value backend.
package store

import (
	"encoding/json"
	"fmt"

	"quiz-extractor/internal/domain"
)

func decodeList(raw []byte) ([]domain.Question, error) {
	if len(raw) == 0 {
		return []domain.Question{}, nil
	}
	var list domain.QuestionList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode stored question list: %w", err)
	}
	if list.Questions == nil {
		return []domain.Question{}, nil
	}
	return list.Questions, nil
}

func encodeList(questions []domain.Question) ([]byte, error) {
	if questions == nil {
		questions = []domain.Question{}
	}
	payload, err := json.Marshal(domain.QuestionList{Questions: questions})
	if err != nil {
		return nil, fmt.Errorf("encode question list: %w", err)
	}
	return payload, nil
}

// applyUpdate decodes the stored value, runs fn and encodes its result.
func applyUpdate(stored []byte, fn domain.UpdateFunc) ([]domain.Question, []byte, error) {
	existing, err := decodeList(stored)
	if err != nil {
		return nil, nil, err
	}
	next, err := fn(existing)
	if err != nil {
		return nil, nil, err
	}
	payload, err := encodeList(next)
	if err != nil {
		return nil, nil, err
	}
	return next, payload, nil
}
