package service

import (
	"strings"

	"github.com/stemsi/lms-backend/internal/model"
)

// Grade scores answers against questions by position. A missing answer
// counts as wrong; comparison ignores case. The trace has one entry per
// question and is never nil.
func Grade(questions model.QuestionSet, answers []model.AnswerEntry) (int, []model.EvaluationEntry) {
	score := 0
	trace := make([]model.EvaluationEntry, 0, len(questions))

	for i, q := range questions {
		studentAnswer := ""
		if i < len(answers) {
			studentAnswer = answers[i].Answer
		}

		correct := strings.EqualFold(q.CorrectAnswer, studentAnswer)
		if correct {
			score++
		}

		trace = append(trace, model.EvaluationEntry{
			QuestionID:    i,
			Correct:       correct,
			CorrectAnswer: q.CorrectAnswer,
			StudentAnswer: studentAnswer,
		})
	}
	return score, trace
}
