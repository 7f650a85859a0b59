package dto

import "quiz-extractor/internal/domain"

// ExtractResponse is returned after a document has been processed
// @Description Result of extracting questions from an uploaded PDF
type ExtractResponse struct {
	RunID     string            `json:"run_id"`
	Extracted int               `json:"extracted"`
	Verified  bool              `json:"verified"`
	Questions []domain.Question `json:"questions"`
}

// QuestionsResponse wraps the stored question list
// @Description Stored question list
type QuestionsResponse struct {
	Questions []domain.Question `json:"questions"`
	Total     int               `json:"total"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
