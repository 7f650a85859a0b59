package validation

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"quiz-extractor/internal/domain"
)

// pdfMagic is the header every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// Validator provides request validation functionality
type Validator struct {
	maxUploadBytes int64
}

// NewValidator creates a new validator instance. maxUploadBytes <= 0 means
// no size limit beyond the server's body limit.
func NewValidator(maxUploadBytes int64) *Validator {
	return &Validator{maxUploadBytes: maxUploadBytes}
}

// ValidateUpload checks an uploaded document's name, size and leading bytes.
func (v *Validator) ValidateUpload(filename string, size int64, head []byte) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(filename) == "" {
		errors = append(errors, domain.NewMissingFieldError("file"))
		return errors
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		errors = append(errors, domain.NewInvalidFormatError("file", "must have a .pdf extension"))
	}

	if size == 0 {
		errors = append(errors, domain.NewInvalidFormatError("file", "is empty"))
		return errors
	}
	if v.maxUploadBytes > 0 && size > v.maxUploadBytes {
		errors = append(errors, domain.NewInvalidFormatError("file",
			fmt.Sprintf("exceeds the maximum size of %d bytes", v.maxUploadBytes)))
	}
	if !bytes.HasPrefix(head, pdfMagic) {
		errors = append(errors, domain.NewInvalidFormatError("file", "is not a PDF document"))
	}

	return errors
}

// ValidateVerifyFlag parses the verify query parameter, returning def when
// raw is empty.
func (v *Validator) ValidateVerifyFlag(raw string, def bool) (bool, domain.ValidationErrors) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return def, nil
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return def, domain.ValidationErrors{domain.NewInvalidFormatError("verify", "must be true or false")}
	}
}
