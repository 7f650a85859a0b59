package store

import (
	"errors"
	"testing"

	"quiz-extractor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeList(t *testing.T) {
	questions, err := decodeList(nil)
	require.NoError(t, err)
	assert.NotNil(t, questions)
	assert.Empty(t, questions)

	questions, err = decodeList([]byte(`{"questions":[{"id":4,"question":"Q","options":{"A":"a"},"correct_answer":null,"needs_verification":true}]}`))
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 4, questions[0].ID)
	assert.True(t, questions[0].NeedsVerification)

	_, err = decodeList([]byte(`not json`))
	assert.Error(t, err)
}

func TestEncodeList_EmptyIsArray(t *testing.T) {
	payload, err := encodeList(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"questions":[]}`, string(payload))
}

func TestApplyUpdate(t *testing.T) {
	stored := []byte(`{"questions":[{"id":1,"question":"Q1","options":{},"correct_answer":"A","needs_verification":false}]}`)

	next, payload, err := applyUpdate(stored, func(existing []domain.Question) ([]domain.Question, error) {
		require.Len(t, existing, 1)
		return append(existing, domain.Question{ID: 2, Question: "Q2", Options: map[string]string{}}), nil
	})
	require.NoError(t, err)
	assert.Len(t, next, 2)
	assert.JSONEq(t, `{"questions":[
		{"id":1,"question":"Q1","options":{},"correct_answer":"A","needs_verification":false},
		{"id":2,"question":"Q2","options":{},"correct_answer":null,"needs_verification":false}
	]}`, string(payload))

	fnErr := errors.New("refused")
	_, _, err = applyUpdate(stored, func([]domain.Question) ([]domain.Question, error) { return nil, fnErr })
	assert.ErrorIs(t, err, fnErr)
}
