// Package questionbank holds the built-in, topic-keyed catalog of
// multiple-choice questions used when no generator is available.
package questionbank

import (
	"slices"
	"sort"
	"strings"

	"github.com/stemsi/lms-backend/internal/model"
)

// DefaultTopic is served for any topic the bank does not know.
const DefaultTopic = "math"

// Bank is an immutable topic → questions catalog. It is safe for concurrent
// use because nothing mutates it after construction.
type Bank struct {
	topics map[string]model.QuestionSet
}

// New builds a bank from topic lists. Keys are matched case-insensitively.
// The map must contain DefaultTopic.
func New(topics map[string]model.QuestionSet) *Bank {
	b := &Bank{topics: make(map[string]model.QuestionSet, len(topics))}
	for k, v := range topics {
		b.topics[strings.ToLower(k)] = cloneSet(v)
	}
	return b
}

var standard = New(standardTopics())

// Standard returns the process-wide built-in bank.
func Standard() *Bank {
	return standard
}

// Lookup returns the questions for topic in bank order. Unknown topics get
// the DefaultTopic list; an unknown topic is never an error. The returned
// slice is a copy.
func (b *Bank) Lookup(topic string) model.QuestionSet {
	qs, ok := b.topics[strings.ToLower(topic)]
	if !ok {
		qs = b.topics[DefaultTopic]
	}
	return cloneSet(qs)
}

// Has reports whether topic has its own list (aliases included).
func (b *Bank) Has(topic string) bool {
	_, ok := b.topics[strings.ToLower(topic)]
	return ok
}

// Topics lists the known topic keys, aliases included, sorted.
func (b *Bank) Topics() []string {
	keys := make([]string, 0, len(b.topics))
	for k := range b.topics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneSet(qs model.QuestionSet) model.QuestionSet {
	out := make(model.QuestionSet, len(qs))
	for i, q := range qs {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out
}
