// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	questionSource = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_question_source_total",
			Help: "Question sets resolved, by the source that produced them",
		},
		[]string{"source"},
	)

	testSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_test_submissions_total",
			Help: "Test submissions recorded, by grading outcome",
		},
		[]string{"outcome"},
	)

	enrollmentTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_enrollment_transitions_total",
			Help: "Enrollment state writes, by resulting status",
		},
		[]string{"status"},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_notifications_total",
			Help: "Notifications handed to the sink, by delivery path",
		},
		[]string{"result"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lms_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Grading outcomes.
const (
	OutcomeGraded   = "graded"
	OutcomeDegraded = "degraded"
)

// Notification delivery paths.
const (
	NotificationQueued = "queued"
	NotificationDirect = "direct"
	NotificationFailed = "failed"
)

func QuestionSourceUsed(source string) {
	questionSource.WithLabelValues(source).Inc()
}

func TestSubmitted(outcome string) {
	testSubmissions.WithLabelValues(outcome).Inc()
}

func EnrollmentTransition(status string) {
	enrollmentTransitions.WithLabelValues(status).Inc()
}

func NotificationDelivered(result string) {
	notifications.WithLabelValues(result).Inc()
}

// ObserveHTTP records one request's latency in seconds.
func ObserveHTTP(method, route, status string, seconds float64) {
	httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}
