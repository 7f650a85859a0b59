package handler

import (
	"quiz-extractor/internal/domain"
	"quiz-extractor/internal/dto"
	"quiz-extractor/internal/logger"
	"quiz-extractor/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuestionHandler handles question extraction HTTP requests
type QuestionHandler struct {
	processor domain.DocumentProcessor
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(processor domain.DocumentProcessor) *QuestionHandler {
	return &QuestionHandler{
		processor: processor,
	}
}

// ExtractQuestions godoc
// @Summary Extract questions from a PDF
// @Description Extracts multiple-choice questions from an uploaded PDF, optionally verifies uncertain answers, and appends them to the stored list
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Param verify query bool false "Verify answers flagged as uncertain"
// @Success 200 {object} dto.ExtractResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /questions/extract [post]
func (h *QuestionHandler) ExtractQuestions(c *fiber.Ctx) error {
	document, ok := c.Locals(middleware.DocumentKey).([]byte)
	if !ok {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}
	verify, _ := c.Locals(middleware.VerifyFlagKey).(bool)

	result, err := h.processor.ProcessDocument(c.UserContext(), document, verify)
	if err != nil {
		logger.Get().Error("Failed to process document",
			zap.Error(err),
			zap.Int("bytes", len(document)),
		)
		return err
	}

	return c.JSON(dto.ExtractResponse{
		RunID:     result.RunID,
		Extracted: result.Extracted,
		Verified:  result.Verified,
		Questions: result.Questions,
	})
}

// ListQuestions godoc
// @Summary List stored questions
// @Description Returns every question stored so far, in id order
// @Tags questions
// @Produce json
// @Success 200 {object} dto.QuestionsResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	questions, err := h.processor.ListQuestions(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to list questions", zap.Error(err))
		return err
	}
	if questions == nil {
		questions = []domain.Question{}
	}

	return c.JSON(dto.QuestionsResponse{
		Questions: questions,
		Total:     len(questions),
	})
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *QuestionHandler) Health(c *fiber.Ctx) error {
	if err := h.processor.Ping(c.UserContext()); err != nil {
		logger.Get().Warn("Storage health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{
			Status:  "degraded",
			Storage: "unavailable",
		})
	}
	return c.JSON(dto.HealthResponse{Status: "ok", Storage: "ok"})
}
