package service

import (
	"encoding/json"
	"fmt"

	"quiz-extractor/internal/domain"
)

const extractionPromptTemplate = `You are an expert at creating and validating quiz questions. Given the following content from a PDF,
extract or generate multiple choice questions with 4 options (A, B, C, D) and their correct answers.

Content from PDF:
%s

Your task is to:
1. Extract all questions, their options, and correct answers
2. If questions are present but correct answers are missing, use your knowledge to determine the correct answer
3. If no questions are present, generate relevant questions based on the content

For each question:
- Ensure it's clear and well-formatted
- Have exactly 4 options (A, B, C, D)
- Have exactly one correct answer
- If you're unsure about the correct answer, mark it as needing verification

Format your response as a JSON object with the following structure:
{
    "questions": [
        {
            "id": number,
            "question": "question text",
            "options": {
                "A": "option A",
                "B": "option B",
                "C": "option C",
                "D": "option D"
            },
            "correct_answer": "correct option key (A, B, C, or D)",
            "needs_verification": boolean
        }
    ]
}

Important:
- Pay attention to the structure of the content
- Handle different question formats (numbered, bulleted, etc.)
- Preserve the original question wording
- Preserve the order of the questions
- If you're unsure about any part of a question, mark it for verification
- Respond ONLY with the JSON object, no additional text`

const verificationPromptTemplate = `Given the following question and options, determine the correct answer.
Only respond with the option key (A, B, C, or D).

Question: %s
Options: %s`

// BuildExtractionPrompt embeds the document text in the extraction template.
func BuildExtractionPrompt(documentText string) string {
	return fmt.Sprintf(extractionPromptTemplate, documentText)
}

// BuildVerificationPrompt asks for the option key of q's correct answer.
func BuildVerificationPrompt(q domain.Question) string {
	options, err := json.MarshalIndent(q.Options, "", "  ")
	if err != nil {
		options = []byte("{}")
	}
	return fmt.Sprintf(verificationPromptTemplate, q.Question, options)
}
