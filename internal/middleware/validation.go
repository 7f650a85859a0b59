package middleware

import (
	"io"

	"quiz-extractor/internal/domain"
	"quiz-extractor/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by ValidateUpload.
const (
	DocumentKey   = "validated_document"
	VerifyFlagKey = "validated_verify"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator     *validation.Validator
	defaultVerify bool
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(maxUploadBytes int64, defaultVerify bool) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator:     validation.NewValidator(maxUploadBytes),
		defaultVerify: defaultVerify,
	}
}

// ValidateUpload reads the multipart "file" field and the verify query
// parameter, storing the document bytes and the flag in Locals.
func (vm *ValidationMiddleware) ValidateUpload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		verify, errs := vm.validator.ValidateVerifyFlag(c.Query("verify"), vm.defaultVerify)
		if len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return domain.ValidationErrors{domain.NewMissingFieldError("file")}
		}

		f, err := fileHeader.Open()
		if err != nil {
			return domain.NewInvalidInputError("could not open uploaded file")
		}
		defer f.Close()

		document, err := io.ReadAll(f)
		if err != nil {
			return domain.NewInvalidInputError("could not read uploaded file")
		}

		if errs := vm.validator.ValidateUpload(fileHeader.Filename, int64(len(document)), document); len(errs) > 0 {
			return errs
		}

		c.Locals(DocumentKey, document)
		c.Locals(VerifyFlagKey, verify)
		return c.Next()
	}
}
