package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreQuizBrackets(t *testing.T) {
	cases := []struct {
		name     string
		answers  []int
		severity string
	}{
		{"all zero", []int{0, 0, 0, 0, 0, 0, 0}, SeverityLow},
		{"low boundary", []int{2, 2, 1, 1, 2, 0, 0}, SeverityLow},      // 8
		{"medium lower", []int{2, 2, 1, 1, 2, 1, 0}, SeverityMedium},   // 9
		{"medium upper", []int{6, 6, 3, 1, 2, 1, 1}, SeverityMedium},   // 20
		{"high lower", []int{6, 6, 3, 1, 2, 1, 2}, SeverityHigh},       // 21
		{"all max", []int{6, 6, 5, 5, 6, 5, 6}, SeverityHigh},          // 39
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ScoreQuiz(tc.answers)
			assert.Equal(t, tc.severity, result.Severity)
			assert.NotEmpty(t, result.Title)
			assert.NotEmpty(t, result.Description)
			assert.NotEmpty(t, result.Recommendations)
		})
	}
}

func TestQuizQuestionsShape(t *testing.T) {
	questions := QuizQuestions()
	assert.Len(t, questions, 7)
	for _, q := range questions {
		assert.Len(t, q.Options, 4)
		assert.Zero(t, q.Options[0].Points)
	}
}
