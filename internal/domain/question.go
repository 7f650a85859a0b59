package domain

import "sort"

// OptionLabels is the fixed option label alphabet, in display order.
var OptionLabels = []string{"A", "B", "C", "D"}

// IsOptionLabel reports whether label is one of OptionLabels.
func IsOptionLabel(label string) bool {
	for _, l := range OptionLabels {
		if l == label {
			return true
		}
	}
	return false
}

// Question is a single multiple-choice question record.
type Question struct {
	ID                int               `json:"id"`
	Question          string            `json:"question"`
	Options           map[string]string `json:"options"`
	CorrectAnswer     *string           `json:"correct_answer"`
	NeedsVerification bool              `json:"needs_verification"`
	Source            string            `json:"source,omitempty"`
}

// QuestionList is the wrapper object used both by the model's structured
// reply and by the stored value.
type QuestionList struct {
	Questions []Question `json:"questions"`
}

// Answer returns the correct answer label or "" when undetermined.
func (q *Question) Answer() string {
	if q.CorrectAnswer == nil {
		return ""
	}
	return *q.CorrectAnswer
}

// SetAnswer records label as the correct answer.
func (q *Question) SetAnswer(label string) {
	q.CorrectAnswer = &label
}

// AnswerInOptions reports whether the correct answer is set and names an
// option present in Options.
func (q *Question) AnswerInOptions() bool {
	if q.CorrectAnswer == nil {
		return false
	}
	_, ok := q.Options[*q.CorrectAnswer]
	return ok
}

// DropUnknownOptions removes options whose key is not in OptionLabels and
// returns the removed keys in sorted order.
func (q *Question) DropUnknownOptions() []string {
	var dropped []string
	for key := range q.Options {
		if !IsOptionLabel(key) {
			dropped = append(dropped, key)
		}
	}
	sort.Strings(dropped)
	for _, key := range dropped {
		delete(q.Options, key)
	}
	return dropped
}

// MaxID returns the highest id in questions, or 0 for an empty slice.
func MaxID(questions []Question) int {
	maxID := 0
	for _, q := range questions {
		if q.ID > maxID {
			maxID = q.ID
		}
	}
	return maxID
}
