// Package pdftext extracts plain text from PDF documents.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"quiz-extractor/internal/domain"
	"quiz-extractor/internal/logger"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Extractor implements domain.TextSource with github.com/ledongthuc/pdf.
type Extractor struct{}

// NewExtractor creates a new PDF text extractor.
func NewExtractor() domain.TextSource {
	return &Extractor{}
}

// ExtractText returns the text of every page in order, each page followed by
// a newline. Pages that fail to decode are skipped.
func (e *Extractor) ExtractText(ctx context.Context, document []byte) (text string, err error) {
	if len(document) == 0 {
		return "", domain.NewInvalidInputError("PDF document is empty")
	}

	// the pdf package panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = domain.NewError(domain.ErrInvalidInput, "failed to read PDF", fmt.Errorf("%v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return "", domain.NewError(domain.ErrInvalidInput, "failed to read PDF", err)
	}

	l := logger.Get()
	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			l.Warn("Failed to extract text from PDF page", zap.Int("page", i), zap.Error(err))
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	text = sb.String()
	if strings.TrimSpace(text) == "" {
		return "", domain.NewInvalidInputError("no text could be extracted from PDF")
	}

	l.Debug("Extracted PDF text", zap.Int("pages", numPages), zap.Int("chars", len(text)))
	return text, nil
}
