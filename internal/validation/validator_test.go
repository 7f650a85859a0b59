package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	v := NewValidator(1024)
	head := []byte("%PDF-1.7\n")

	testCases := []struct {
		name      string
		filename  string
		size      int64
		head      []byte
		wantCount int
	}{
		{name: "valid", filename: "quiz.pdf", size: 100, head: head, wantCount: 0},
		{name: "upper case extension", filename: "QUIZ.PDF", size: 100, head: head, wantCount: 0},
		{name: "missing name", filename: " ", size: 100, head: head, wantCount: 1},
		{name: "wrong extension", filename: "quiz.txt", size: 100, head: head, wantCount: 1},
		{name: "empty file", filename: "quiz.pdf", size: 0, head: nil, wantCount: 1},
		{name: "too large", filename: "quiz.pdf", size: 4096, head: head, wantCount: 1},
		{name: "not a pdf", filename: "quiz.pdf", size: 100, head: []byte("PK\x03\x04"), wantCount: 1},
		{name: "wrong extension and not a pdf", filename: "quiz.docx", size: 100, head: []byte("PK"), wantCount: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := v.ValidateUpload(tc.filename, tc.size, tc.head)
			assert.Len(t, errs, tc.wantCount)
			for _, e := range errs {
				assert.Equal(t, "file", e.Field)
			}
		})
	}
}

func TestValidateUpload_NoLimit(t *testing.T) {
	v := NewValidator(0)
	assert.Empty(t, v.ValidateUpload("big.pdf", 1<<40, []byte("%PDF-1.4")))
}

func TestValidateVerifyFlag(t *testing.T) {
	v := NewValidator(0)

	got, errs := v.ValidateVerifyFlag("", true)
	assert.True(t, got)
	assert.Empty(t, errs)

	got, errs = v.ValidateVerifyFlag("FALSE", true)
	assert.False(t, got)
	assert.Empty(t, errs)

	got, errs = v.ValidateVerifyFlag("1", false)
	assert.True(t, got)
	assert.Empty(t, errs)

	_, errs = v.ValidateVerifyFlag("maybe", false)
	assert.Len(t, errs, 1)
	assert.Equal(t, "verify", errs[0].Field)
}
