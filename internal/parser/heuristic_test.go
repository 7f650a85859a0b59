package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeuristic_SingleQuestion(t *testing.T) {
	text := "1. What is 2+2?\nA. 3\nB. 4\nC. 5\nD. 6\nAnswer: B"

	questions := ParseHeuristic(text)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, 1, q.ID)
	assert.Equal(t, "What is 2+2?", q.Question)
	assert.Equal(t, map[string]string{"A": "3", "B": "4", "C": "5", "D": "6"}, q.Options)
	require.NotNil(t, q.CorrectAnswer)
	assert.Equal(t, "B", *q.CorrectAnswer)
	assert.False(t, q.NeedsVerification)
}

func TestParseHeuristic_FlushesLastRecord(t *testing.T) {
	questions := ParseHeuristic("1) First?\nA) yes\nB) no\n2. Second?")
	require.Len(t, questions, 2)

	assert.Equal(t, 1, questions[0].ID)
	assert.Equal(t, "First?", questions[0].Question)
	assert.Equal(t, map[string]string{"A": "yes", "B": "no"}, questions[0].Options)

	assert.Equal(t, 2, questions[1].ID)
	assert.Equal(t, "Second?", questions[1].Question)
	assert.Empty(t, questions[1].Options)
	assert.Nil(t, questions[1].CorrectAnswer)
}

func TestParseHeuristic_IgnoresOrphanLines(t *testing.T) {
	assert.Empty(t, ParseHeuristic("A. foo"))
	assert.Empty(t, ParseHeuristic("Answer: C\nB) bar\nsome prose"))
}

func TestParseHeuristic_AnswerLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected *string
	}{
		{name: "uppercase", line: "Answer: C", expected: strPtr("C")},
		{name: "lowercase letter", line: "Answer: d", expected: strPtr("D")},
		{name: "lowercase prefix", line: "answer: (b)", expected: strPtr("B")},
		{name: "first letter after prefix wins", line: "ANSWER: the correct one is B", expected: strPtr("C")},
		{name: "no letter", line: "Answer: unknown", expected: nil},
		{name: "prefix not at start", line: "The Answer: B", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := ParseHeuristic("1. Q?\n" + tt.line)
			require.Len(t, questions, 1)
			assert.Equal(t, tt.expected, questions[0].CorrectAnswer)
		})
	}
}

func TestParseHeuristic_DropsFreeText(t *testing.T) {
	text := "Quiz\n\n1.   Which planet is red?   \nIt is the fourth planet.\nA. Mars\n  B. Venus\nE. Pluto\nanswer: a\n"

	questions := ParseHeuristic(text)
	require.Len(t, questions, 1)
	assert.Equal(t, "Which planet is red?", questions[0].Question)
	assert.Equal(t, map[string]string{"A": "Mars"}, questions[0].Options)
	assert.Equal(t, "A", questions[0].Answer())
}

func TestParseHeuristic_SequentialIDsIgnoreSourceNumbering(t *testing.T) {
	questions := ParseHeuristic("7. Seventh\n3. Third\n3. Third again\r\nA. x\r\n")
	require.Len(t, questions, 3)

	for i, q := range questions {
		assert.Equal(t, i+1, q.ID)
	}
	assert.Equal(t, "Third again", questions[2].Question)
	assert.Equal(t, "x", questions[2].Options["A"])
}

func TestParseHeuristic_FlagsUnansweredRecords(t *testing.T) {
	questions := ParseHeuristic("1. With answer\nAnswer: A\n2. Without answer\nA. x")
	require.Len(t, questions, 2)
	assert.False(t, questions[0].NeedsVerification)
	assert.True(t, questions[1].NeedsVerification)
}

func TestLineScanner_States(t *testing.T) {
	s := newLineScanner()
	assert.IsType(t, noRecord{}, s.state)

	s.feed("B. orphan")
	assert.IsType(t, noRecord{}, s.state)
	assert.Empty(t, s.parsed)

	s.feed("1. Q")
	require.IsType(t, &activeRecord{}, s.state)
	assert.Empty(t, s.parsed, "record stays active until flushed")

	s.feed("2. R")
	assert.Len(t, s.parsed, 1)

	s.flush()
	assert.IsType(t, noRecord{}, s.state)
	assert.Equal(t, []string{"Q", "R"}, []string{s.parsed[0].Question, s.parsed[1].Question})
}
