// Package parser converts a language model's raw reply into question records.
package parser

import (
	"encoding/json"
	"errors"
	"strings"

	"quiz-extractor/internal/domain"
)

var errNoPayload = errors.New(`no JSON object with a "questions" field found`)

// ParseResponse returns the question records carried by raw.
//
// When raw contains a '{' followed later by a '}', the reply is expected to
// embed a {"questions": [...]} object: the first syntactically valid JSON
// object starting at any '{' that carries a "questions" field is decoded.
// If the object at the first '{' is valid but has no such field, the reply
// carries no questions and an empty list is returned. A PARSE_FAILURE error
// is returned when the first '{' does not start a valid object and no later
// one carries the field, or when the field does not fit the schema. Replies
// with no such bracket pair go through ParseHeuristic, which never fails.
func ParseResponse(raw string) ([]domain.Question, error) {
	if !hasObjectCandidate(raw) {
		return ParseHeuristic(raw), nil
	}

	payload, err := findQuestionsField(raw)
	if err != nil {
		return nil, domain.NewParseFailureError(err)
	}

	var questions []domain.Question
	if err := json.Unmarshal(payload, &questions); err != nil {
		return nil, domain.NewParseFailureError(err)
	}
	if questions == nil {
		questions = []domain.Question{}
	}
	return questions, nil
}

func hasObjectCandidate(raw string) bool {
	open := strings.Index(raw, "{")
	return open != -1 && strings.LastIndex(raw, "}") > open
}

// findQuestionsField walks every '{' in order, lets the decoder read one
// complete value from that offset and returns the "questions" member of the
// first object that has one. Braces inside prose or string values simply
// fail to decode (or lack the field) and are skipped. When no object has the
// field but the outermost one decoded, a JSON null member is returned.
func findQuestionsField(raw string) (json.RawMessage, error) {
	lastErr := errNoPayload
	outermostValid := false
	for offset := 0; offset < len(raw); {
		i := strings.IndexByte(raw[offset:], '{')
		if i == -1 {
			break
		}
		start := offset + i
		offset = start + 1

		var fields map[string]json.RawMessage
		if err := json.NewDecoder(strings.NewReader(raw[start:])).Decode(&fields); err != nil {
			lastErr = err
			continue
		}
		if questions, ok := fields["questions"]; ok {
			return questions, nil
		}
		if start == strings.IndexByte(raw, '{') {
			outermostValid = true
		}
		lastErr = errNoPayload
	}
	if outermostValid {
		return json.RawMessage("null"), nil
	}
	return nil, lastErr
}
