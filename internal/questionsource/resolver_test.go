package questionsource

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/lms-backend/internal/questionbank"
)

// MockGenerator is a testify mock for TextGenerator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, topic string, count int) (string, error) {
	args := m.Called(ctx, topic, count)
	return args.String(0), args.Error(1)
}

func newResolver(gen TextGenerator) *Resolver {
	return NewResolver(zerolog.Nop(),
		NewGeneratedSource(gen),
		NewBankSource(questionbank.Standard()),
	)
}

const generated = `[
	{"question":"What is inertia?","options":["A force","Resistance to change in motion","Energy","Mass"],"correctAnswer":"Resistance to change in motion"},
	{"question":"Unit of force?","options":["Joule","Watt","Newton","Pascal"],"correctAnswer":"newton"}
]`

func TestResolve_UsesGeneratorResult(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, "physics", 10).Return(generated, nil)

	qs := newResolver(gen).Resolve(context.Background(), "physics", 10)

	require.Len(t, qs, 2)
	assert.Equal(t, "What is inertia?", qs[0].Text)
	assert.Equal(t, "newton", qs[1].CorrectAnswer)
	gen.AssertExpectations(t)
}

func TestResolve_FallsBackToBank(t *testing.T) {
	math := questionbank.Standard().Lookup("math")

	tests := []struct {
		name string
		text string
		err  error
	}{
		{name: "generator error", err: errors.New("timeout")},
		{name: "empty result"},
		{name: "not json", text: "Sure! Here are your questions:"},
		{name: "empty array", text: "[]"},
		{name: "answers not in options", text: `[{"question":"q","options":["a","b","c","d"],"correctAnswer":"z"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockGenerator)
			gen.On("Generate", mock.Anything, "math", 10).Return(tt.text, tt.err)

			qs := newResolver(gen).Resolve(context.Background(), "math", 10)

			assert.Equal(t, math[:10], qs)
		})
	}
}

func TestResolve_DropsInvalidGeneratedQuestions(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, "x", 3).Return(`[
		{"question":"ok","options":["a","b","c","d"],"correctAnswer":"B"},
		{"question":"bad","options":["a","b","c","d"],"correctAnswer":"e"},
		{"question":"","options":["a","b","c","d"],"correctAnswer":"a"},
		{"question":"two options","options":["a","b"],"correctAnswer":"a"},
		{"question":"six options","options":["a","b","c","d","e","f"],"correctAnswer":"a"}
	]`, nil)

	qs := newResolver(gen).Resolve(context.Background(), "x", 3)

	require.Len(t, qs, 1)
	assert.Equal(t, "ok", qs[0].Text)
}

func TestResolve_UnknownTopicUsesMathList(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("disabled"))
	resolver := newResolver(gen)
	math := questionbank.Standard().Lookup("math")

	for _, topic := range []string{"astronomy", "cooking", ""} {
		assert.Equal(t, math[:5], resolver.Resolve(context.Background(), topic, 5), "topic %q", topic)
	}
}

func TestResolve_TruncatesInBankOrder(t *testing.T) {
	resolver := NewResolver(zerolog.Nop(), NewBankSource(questionbank.Standard()))
	history := questionbank.Standard().Lookup("history")

	for count := 0; count <= len(history); count++ {
		qs := resolver.Resolve(context.Background(), "history", count)
		assert.Len(t, qs, count)
		for i := range qs {
			assert.Equal(t, history[i], qs[i])
		}
	}

	assert.Len(t, resolver.Resolve(context.Background(), "history", 50), len(history))
}

func TestResolve_BankPathIsIdempotent(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("down"))
	resolver := newResolver(gen)

	first := resolver.Resolve(context.Background(), "science", 7)
	second := resolver.Resolve(context.Background(), "science", 7)

	assert.Equal(t, first, second)
}

func TestResolve_MathScenarioWithGeneratorDisabled(t *testing.T) {
	resolver := NewResolver(zerolog.Nop(), NewBankSource(questionbank.Standard()))

	qs := resolver.Resolve(context.Background(), "math", 10)

	require.Len(t, qs, 10)
	assert.Equal(t, "What is 15 + 27?", qs[0].Text)
	assert.Equal(t, "What is the value of π (pi) approximately?", qs[9].Text)
}

func TestResolve_NoSourcesYieldsEmptySet(t *testing.T) {
	qs := NewResolver(zerolog.Nop()).Resolve(context.Background(), "math", 10)

	assert.NotNil(t, qs)
	assert.Empty(t, qs)
}
