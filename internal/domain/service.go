package domain

import "context"

// TextSource turns a document into its full plain text, pages in order.
type TextSource interface {
	ExtractText(ctx context.Context, document []byte) (string, error)
}

// Completer sends a prompt to a chat-style language model and returns the
// textual reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnswerLookup sends a prompt to a text-generation endpoint and returns the
// generated text.
type AnswerLookup interface {
	Lookup(ctx context.Context, prompt string) (string, error)
}

// UpdateFunc receives the stored list and returns the list to write back.
type UpdateFunc func(existing []Question) ([]Question, error)

// QuestionStore persists the question list under a single storage entry.
type QuestionStore interface {
	// Load returns the stored list, empty when nothing has been stored yet.
	Load(ctx context.Context) ([]Question, error)

	// Update runs fn against the stored list and writes its result back as
	// one atomic read-modify-write. The written list is returned.
	Update(ctx context.Context, fn UpdateFunc) ([]Question, error)

	// Ping checks the health of the storage backend.
	Ping(ctx context.Context) error
}

// ExtractionService turns a PDF into question records.
type ExtractionService interface {
	ExtractQuestions(ctx context.Context, document []byte) ([]Question, error)
}

// VerificationService resolves answers of questions flagged for verification.
type VerificationService interface {
	VerifyQuestions(ctx context.Context, questions []Question) []Question
}

// QuestionStoreService merges new batches into the stored list.
type QuestionStoreService interface {
	SaveQuestions(ctx context.Context, batch []Question) ([]Question, error)
	ListQuestions(ctx context.Context) ([]Question, error)
}

// ProcessResult is the outcome of running one document through extraction,
// optional verification and persistence.
type ProcessResult struct {
	RunID     string     `json:"run_id"`
	Extracted int        `json:"extracted"`
	Verified  bool       `json:"verified"`
	Questions []Question `json:"questions"`
}

// DocumentProcessor runs the whole flow for one uploaded document.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, document []byte, verify bool) (*ProcessResult, error)
	ListQuestions(ctx context.Context) ([]Question, error)
	Ping(ctx context.Context) error
}
