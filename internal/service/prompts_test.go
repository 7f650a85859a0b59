package service

import (
	"testing"

	"quiz-extractor/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	prompt := BuildExtractionPrompt("1. What is 2+2?\nA) 3\nB) 4")
	assert.Contains(t, prompt, "Content from PDF:\n1. What is 2+2?\nA) 3\nB) 4\n")
	assert.Contains(t, prompt, `"questions": [`)
	assert.Contains(t, prompt, "Respond ONLY with the JSON object, no additional text")
}

func TestBuildVerificationPrompt(t *testing.T) {
	q := domain.Question{
		Question: "Capital of France?",
		Options:  map[string]string{"A": "Paris", "B": "Rome"},
	}
	prompt := BuildVerificationPrompt(q)
	assert.Contains(t, prompt, "Only respond with the option key (A, B, C, or D).")
	assert.Contains(t, prompt, "Question: Capital of France?")
	assert.Contains(t, prompt, "Options: {\n  \"A\": \"Paris\",\n  \"B\": \"Rome\"\n}")
}
