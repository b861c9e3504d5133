// Package event publishes domain events for other services to consume.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Topic suffixes; the configured prefix is prepended.
const (
	EnrollmentCreated       = "enrollment.created"
	EnrollmentStatusChanged = "enrollment.status_changed"
	TestSubmitted           = "test.submitted"
	AssignmentSubmitted     = "assignment.submitted"
)

// Publisher sends an event. Implementations must not block the caller on
// broker availability.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
	Close() error
}

// EnrollmentEvent describes an enrollment state change.
type EnrollmentEvent struct {
	EnrollmentID int64     `json:"enrollmentId"`
	StudentID    int64     `json:"studentId"`
	CourseID     int64     `json:"courseId"`
	Status       string    `json:"status"`
	Progress     float64   `json:"progressPercentage"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// SubmissionEvent describes a recorded test or assignment submission.
type SubmissionEvent struct {
	SubmissionID int64     `json:"submissionId"`
	ParentID     int64     `json:"parentId"`
	StudentID    int64     `json:"studentId"`
	Score        *int      `json:"score,omitempty"`
	TotalMarks   *int      `json:"totalMarks,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// ─── Kafka ─────────────────────────────────────────────────────────────

// KafkaPublisher writes JSON events asynchronously; delivery errors are
// logged from the writer's completion callback.
type KafkaPublisher struct {
	writer *kafka.Writer
	prefix string
	log    zerolog.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers.
func NewKafkaPublisher(brokers []string, prefix string, log zerolog.Logger) *KafkaPublisher {
	log = log.With().Str("component", "event_publisher").Logger()
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warn().Err(err).Int("count", len(messages)).Msg("Event delivery failed")
			}
		},
	}
	return &KafkaPublisher{writer: writer, prefix: prefix, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic(topic),
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) topic(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "." + name
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// ─── No-op ─────────────────────────────────────────────────────────────

// NopPublisher discards events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }
func (NopPublisher) Close() error                                       { return nil }
