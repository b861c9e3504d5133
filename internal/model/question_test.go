package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAnswers(t *testing.T) {
	answers, err := DecodeAnswers([]byte(`[{"answer":"42"},{"answer":""}]`))
	require.NoError(t, err)
	assert.Equal(t, []AnswerEntry{{Answer: "42"}, {Answer: ""}}, answers)

	answers, err = DecodeAnswers([]byte(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, answers)
	assert.Empty(t, answers)

	for _, raw := range []string{"", "null", " null\n"} {
		_, err := DecodeAnswers([]byte(raw))
		assert.ErrorIs(t, err, ErrNoAnswerSheet, "raw %q", raw)
	}

	_, err = DecodeAnswers([]byte(`{"answer":"42"}`))
	assert.Error(t, err)
}

func TestQuestion_IsWellFormed(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		want bool
	}{
		{"four options", Question{Text: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "4"}, true},
		{"answer case differs", Question{Text: "Gold?", Options: []string{"Go", "Gd", "Au", "Ag"}, CorrectAnswer: "au"}, true},
		{"blank text", Question{Text: "  ", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "4"}, false},
		{"two options", Question{Text: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4"}, false},
		{"five options", Question{Text: "2+2?", Options: []string{"3", "4", "5", "6", "7"}, CorrectAnswer: "4"}, false},
		{"answer not an option", Question{Text: "2+2?", Options: []string{"3", "5", "6", "7"}, CorrectAnswer: "4"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.IsWellFormed())
		})
	}
}
