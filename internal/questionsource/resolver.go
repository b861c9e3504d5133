package questionsource

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stemsi/lms-backend/internal/metrics"
	"github.com/stemsi/lms-backend/internal/model"
)

// Resolver chains sources. A source error or empty result is logged and the
// next source is tried; callers never see a failure.
type Resolver struct {
	sources []Source
	log     zerolog.Logger
}

// NewResolver creates a Resolver trying sources in the given order.
func NewResolver(log zerolog.Logger, sources ...Source) *Resolver {
	return &Resolver{
		sources: sources,
		log:     log.With().Str("component", "question_resolver").Logger(),
	}
}

// Resolve returns questions for topic. It returns an empty set only when
// every source came back empty.
func (r *Resolver) Resolve(ctx context.Context, topic string, count int) model.QuestionSet {
	for _, src := range r.sources {
		qs, err := src.Questions(ctx, topic, count)
		if err != nil {
			r.log.Warn().Err(err).
				Str("source", src.Name()).
				Str("topic", topic).
				Msg("Question source failed, falling back")
			continue
		}
		if len(qs) == 0 {
			continue
		}

		metrics.QuestionSourceUsed(src.Name())
		r.log.Debug().
			Str("source", src.Name()).
			Str("topic", topic).
			Int("count", len(qs)).
			Msg("Questions resolved")
		return qs
	}
	return model.QuestionSet{}
}
