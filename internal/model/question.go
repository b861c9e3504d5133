package model

import (
	"encoding/json"
	"errors"
	"strings"
)

// Question is a single multiple-choice item with its answer key.
type Question struct {
	Text          string   `json:"question" binding:"required,notblank"`
	Options       []string `json:"options" binding:"required,len=4,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
}

// OptionCount is the number of choices every question carries.
const OptionCount = 4

// IsWellFormed reports whether q has text, exactly OptionCount options and
// an answer among them.
func (q Question) IsWellFormed() bool {
	return strings.TrimSpace(q.Text) != "" && len(q.Options) == OptionCount && q.HasValidAnswer()
}

// HasValidAnswer reports whether CorrectAnswer is one of Options, ignoring case.
func (q Question) HasValidAnswer() bool {
	for _, opt := range q.Options {
		if strings.EqualFold(opt, q.CorrectAnswer) {
			return true
		}
	}
	return false
}

// QuestionSet is an ordered list of questions. A question's position is its
// index, which is the join key to the answers of a submission.
type QuestionSet []Question

// AnswerEntry is one submitted answer, aligned by position to a QuestionSet.
type AnswerEntry struct {
	Answer string `json:"answer"`
}

// EvaluationEntry records the grading outcome of a single question.
type EvaluationEntry struct {
	QuestionID    int    `json:"questionId"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	StudentAnswer string `json:"studentAnswer"`
}

// ─── Persistence codecs ────────────────────────────────────────────────
// QuestionSet, answers and evaluation traces are stored as encoded text.
// These are the only places that text is produced or parsed.

const emptyArray = "[]"

// EncodeQuestionSet serializes a question set. It never fails: an
// unencodable set is stored as an empty array.
func EncodeQuestionSet(qs QuestionSet) string {
	if len(qs) == 0 {
		return emptyArray
	}
	b, err := json.Marshal(qs)
	if err != nil {
		return emptyArray
	}
	return string(b)
}

// DecodeQuestionSet parses stored question text.
func DecodeQuestionSet(raw string) (QuestionSet, error) {
	var qs QuestionSet
	if err := json.Unmarshal([]byte(raw), &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// ErrNoAnswerSheet is returned for a submission whose answers are absent or null.
var ErrNoAnswerSheet = errors.New("answer sheet is missing")

// DecodeAnswers parses a submitted answer sequence. An empty array is a
// valid sheet with every answer blank; null or no value at all is not.
func DecodeAnswers(raw []byte) ([]AnswerEntry, error) {
	if len(raw) == 0 {
		return nil, ErrNoAnswerSheet
	}
	var answers []AnswerEntry
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, err
	}
	if answers == nil {
		return nil, ErrNoAnswerSheet
	}
	return answers, nil
}

// EncodeEvaluation serializes an evaluation trace. A nil trace means grading
// did not run and is stored as NULL.
func EncodeEvaluation(entries []EvaluationEntry) (*string, error) {
	if entries == nil {
		return nil, nil
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// DecodeEvaluation parses a stored evaluation trace; NULL yields nil.
func DecodeEvaluation(raw *string) ([]EvaluationEntry, error) {
	if raw == nil {
		return nil, nil
	}
	var entries []EvaluationEntry
	if err := json.Unmarshal([]byte(*raw), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
