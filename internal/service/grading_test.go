package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/questionbank"
)

func answersOf(values ...string) []model.AnswerEntry {
	out := make([]model.AnswerEntry, len(values))
	for i, v := range values {
		out[i] = model.AnswerEntry{Answer: v}
	}
	return out
}

func TestGrade_AllCorrectAnyCase(t *testing.T) {
	questions := model.QuestionSet{
		{Text: "Gold?", Options: []string{"Go", "Gd", "Au", "Ag"}, CorrectAnswer: "Au"},
		{Text: "Planet?", Options: []string{"Venus", "Earth", "Mercury", "Mars"}, CorrectAnswer: "Mercury"},
		{Text: "Cells?", Options: []string{"a", "b", "White blood cells", "d"}, CorrectAnswer: "White blood cells"},
	}

	score, trace := Grade(questions, answersOf("au", "MERCURY", "white BLOOD cells"))

	assert.Equal(t, 3, score)
	require.Len(t, trace, 3)
	for i, e := range trace {
		assert.Equal(t, i, e.QuestionID)
		assert.True(t, e.Correct)
	}
	assert.Equal(t, "au", trace[0].StudentAnswer)
	assert.Equal(t, "Au", trace[0].CorrectAnswer)
}

func TestGrade_MissingAnswersAreWrong(t *testing.T) {
	questions := questionbank.Standard().Lookup("math")[:4]

	score, trace := Grade(questions, answersOf("42", "wrong"))

	assert.Equal(t, 1, score)
	require.Len(t, trace, 4)
	assert.True(t, trace[0].Correct)
	assert.False(t, trace[1].Correct)
	assert.Equal(t, model.EvaluationEntry{QuestionID: 2, Correct: false, CorrectAnswer: "25", StudentAnswer: ""}, trace[2])
	assert.Equal(t, "", trace[3].StudentAnswer)
}

func TestGrade_NoAnswers(t *testing.T) {
	questions := questionbank.Standard().Lookup("history")

	score, trace := Grade(questions, nil)

	assert.Zero(t, score)
	assert.Len(t, trace, len(questions))
}

func TestGrade_ExtraAnswersIgnored(t *testing.T) {
	questions := questionbank.Standard().Lookup("math")[:1]

	score, trace := Grade(questions, answersOf("42", "56", "25"))

	assert.Equal(t, 1, score)
	assert.Len(t, trace, 1)
}

func TestGrade_EmptyQuestionSet(t *testing.T) {
	score, trace := Grade(model.QuestionSet{}, answersOf("x"))

	assert.Zero(t, score)
	assert.NotNil(t, trace)
	assert.Empty(t, trace)
}
