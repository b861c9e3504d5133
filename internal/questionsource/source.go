// Package questionsource resolves the question set for a new test. Sources
// are tried in order and the first usable result wins; the built-in bank is
// the last resort and always answers.
package questionsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/questionbank"
)

// ErrNoResult means a source produced nothing usable.
var ErrNoResult = errors.New("question source returned no usable questions")

// Source produces questions for a topic.
type Source interface {
	Name() string
	Questions(ctx context.Context, topic string, count int) (model.QuestionSet, error)
}

// TextGenerator drafts questions as JSON text, e.g. an LLM client.
type TextGenerator interface {
	Generate(ctx context.Context, topic string, count int) (string, error)
}

// ─── Bank ──────────────────────────────────────────────────────────────

// BankSource serves the first count questions of the bank's topic list.
type BankSource struct {
	bank *questionbank.Bank
}

func NewBankSource(bank *questionbank.Bank) *BankSource {
	return &BankSource{bank: bank}
}

func (s *BankSource) Name() string { return "bank" }

// Questions truncates; it never samples, so equal inputs give equal output.
func (s *BankSource) Questions(_ context.Context, topic string, count int) (model.QuestionSet, error) {
	qs := s.bank.Lookup(topic)
	if count < 0 {
		count = 0
	}
	if count < len(qs) {
		qs = qs[:count]
	}
	return qs, nil
}

// ─── Generator ─────────────────────────────────────────────────────────

// GeneratedSource decodes generator output into questions. Questions whose
// answer is not among their options are dropped.
type GeneratedSource struct {
	gen TextGenerator
}

func NewGeneratedSource(gen TextGenerator) *GeneratedSource {
	return &GeneratedSource{gen: gen}
}

func (s *GeneratedSource) Name() string { return "generator" }

func (s *GeneratedSource) Questions(ctx context.Context, topic string, count int) (model.QuestionSet, error) {
	text, err := s.gen.Generate(ctx, topic, count)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrNoResult
	}

	var raw model.QuestionSet
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("decode generated questions: %w", err)
	}

	valid := make(model.QuestionSet, 0, len(raw))
	for _, q := range raw {
		if q.IsWellFormed() {
			valid = append(valid, q)
		}
	}
	if len(valid) == 0 {
		return nil, ErrNoResult
	}
	return valid, nil
}
