package parser

import (
	"regexp"
	"strings"

	"quiz-extractor/internal/domain"
)

var (
	questionLine = regexp.MustCompile(`^\d+[.)]\s*`)
	optionLine   = regexp.MustCompile(`^([A-D])[.)]\s*`)
	answerLine   = regexp.MustCompile(`(?i)^answer:`)
	answerLetter = regexp.MustCompile(`(?i)[A-D]`)
)

// scanState is either noRecord or *activeRecord.
type scanState interface {
	isScanState()
}

type noRecord struct{}

type activeRecord struct {
	question domain.Question
}

func (noRecord) isScanState()      {}
func (*activeRecord) isScanState() {}

// lineScanner is the heuristic parser's state machine. A numbered line always
// flushes the active record before starting the next one; end of input
// flushes whatever is still active.
type lineScanner struct {
	state  scanState
	parsed []domain.Question
}

func newLineScanner() *lineScanner {
	return &lineScanner{state: noRecord{}, parsed: []domain.Question{}}
}

// ParseHeuristic recovers question records from loosely formatted text:
//
//	1. What is 2+2?
//	A. 3
//	B. 4
//	Answer: B
//
// Lines matching none of the numbered-question, lettered-option or
// "Answer:" shapes are dropped. It never fails; the worst case is an empty
// slice.
func ParseHeuristic(text string) []domain.Question {
	s := newLineScanner()
	for _, line := range strings.Split(text, "\n") {
		s.feed(line)
	}
	s.flush()
	return s.parsed
}

func (s *lineScanner) feed(line string) {
	if loc := questionLine.FindStringIndex(line); loc != nil {
		s.flush()
		s.state = &activeRecord{question: domain.Question{
			ID:       len(s.parsed) + 1,
			Question: strings.TrimSpace(line[loc[1]:]),
			Options:  map[string]string{},
		}}
		return
	}

	active, ok := s.state.(*activeRecord)
	if !ok {
		return
	}

	if m := optionLine.FindStringSubmatchIndex(line); m != nil {
		label := line[m[2]:m[3]]
		active.question.Options[label] = strings.TrimSpace(line[m[1]:])
		return
	}

	if loc := answerLine.FindStringIndex(line); loc != nil {
		if letter := answerLetter.FindString(line[loc[1]:]); letter != "" {
			active.question.SetAnswer(strings.ToUpper(letter))
		}
	}
}

func (s *lineScanner) flush() {
	if active, ok := s.state.(*activeRecord); ok {
		q := active.question
		q.NeedsVerification = q.CorrectAnswer == nil
		s.parsed = append(s.parsed, q)
	}
	s.state = noRecord{}
}
