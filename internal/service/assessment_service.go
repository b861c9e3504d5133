package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/lms-backend/internal/event"
	"github.com/stemsi/lms-backend/internal/metrics"
	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/repository"
)

// Domain errors.
var (
	ErrTestNotFound       = errors.New("test not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrStudentNotFound    = errors.New("student not found")
)

// DefaultQuestionCount is used when a test is authored without questions.
const DefaultQuestionCount = 10

// AssessmentService authors tests and assignments and records submissions,
// grading test submissions on the way in.
type AssessmentService struct {
	tests          TestStore
	testSubs       TestSubmissionStore
	assignments    AssignmentStore
	assignmentSubs AssignmentSubmissionStore
	students       StudentStore
	resolver       QuestionResolver
	events         event.Publisher
	questionCount  int
	log            zerolog.Logger
	now            func() time.Time
}

// NewAssessmentService creates a new AssessmentService. A questionCount
// below 1 falls back to DefaultQuestionCount.
func NewAssessmentService(
	tests TestStore,
	testSubs TestSubmissionStore,
	assignments AssignmentStore,
	assignmentSubs AssignmentSubmissionStore,
	students StudentStore,
	resolver QuestionResolver,
	events event.Publisher,
	questionCount int,
	log zerolog.Logger,
) *AssessmentService {
	if questionCount < 1 {
		questionCount = DefaultQuestionCount
	}
	if events == nil {
		events = event.NopPublisher{}
	}
	return &AssessmentService{
		tests:          tests,
		testSubs:       testSubs,
		assignments:    assignments,
		assignmentSubs: assignmentSubs,
		students:       students,
		resolver:       resolver,
		events:         events,
		questionCount:  questionCount,
		log:            log.With().Str("component", "assessment_service").Logger(),
		now:            time.Now,
	}
}

// ─── Authoring ─────────────────────────────────────────────────────────

// CreateTest persists a test. When no questions are supplied they are
// resolved from the topic exactly once, here. A missing TotalMarks
// defaults to the number of questions.
func (s *AssessmentService) CreateTest(ctx context.Context, t *model.Test) error {
	if len(t.Questions) == 0 {
		t.Questions = s.resolver.Resolve(ctx, t.Topic, s.questionCount)
	}
	if t.TotalMarks == nil {
		marks := len(t.Questions)
		t.TotalMarks = &marks
	}

	if err := s.tests.Create(ctx, t); err != nil {
		return fmt.Errorf("create test: %w", err)
	}

	s.log.Info().
		Int64("test_id", t.ID).
		Str("topic", t.Topic).
		Int("questions", len(t.Questions)).
		Msg("Test created")
	return nil
}

// CreateAssignment persists an assignment unchanged.
func (s *AssessmentService) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	if err := s.assignments.Create(ctx, a); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// ─── Submissions ───────────────────────────────────────────────────────

// SubmitTest grades and records a submission. Grading problems (unknown
// test, undecodable questions or answers) never reject the submission: it
// is stored with a zero score, zero total and no evaluation. Only a
// failure to store it is returned.
func (s *AssessmentService) SubmitTest(ctx context.Context, sub *model.TestSubmission) error {
	outcome := metrics.OutcomeGraded
	if err := s.grade(ctx, sub); err != nil {
		outcome = metrics.OutcomeDegraded
		sub.Score, sub.TotalMarks, sub.Evaluation = 0, 0, nil
		s.log.Warn().Err(err).
			Int64("test_id", sub.TestID).
			Int64("student_id", sub.StudentID).
			Msg("Grading failed, recording submission with zero score")
	}
	sub.SubmittedAt = s.now()

	if err := s.testSubs.Create(ctx, sub); err != nil {
		return fmt.Errorf("create test submission: %w", err)
	}
	metrics.TestSubmitted(outcome)

	score, total := sub.Score, sub.TotalMarks
	s.publish(ctx, event.TestSubmitted, sub.TestID, event.SubmissionEvent{
		SubmissionID: sub.ID,
		ParentID:     sub.TestID,
		StudentID:    sub.StudentID,
		Score:        &score,
		TotalMarks:   &total,
		OccurredAt:   sub.SubmittedAt,
	})
	return nil
}

func (s *AssessmentService) grade(ctx context.Context, sub *model.TestSubmission) error {
	test, err := s.tests.GetByID(ctx, sub.TestID)
	if err != nil {
		return fmt.Errorf("load test: %w", err)
	}
	answers, err := model.DecodeAnswers(sub.Answers)
	if err != nil {
		return fmt.Errorf("decode answers: %w", err)
	}

	sub.Score, sub.Evaluation = Grade(test.Questions, answers)
	sub.TotalMarks = len(test.Questions)
	return nil
}

// SubmitAssignment records an assignment submission for manual review.
func (s *AssessmentService) SubmitAssignment(ctx context.Context, sub *model.AssignmentSubmission) error {
	if _, err := s.GetAssignment(ctx, sub.AssignmentID); err != nil {
		return err
	}

	sub.Status = model.SubmissionStatusSubmitted
	sub.Marks = nil
	sub.SubmittedAt = s.now()

	if err := s.assignmentSubs.Create(ctx, sub); err != nil {
		return fmt.Errorf("create assignment submission: %w", err)
	}

	s.publish(ctx, event.AssignmentSubmitted, sub.AssignmentID, event.SubmissionEvent{
		SubmissionID: sub.ID,
		ParentID:     sub.AssignmentID,
		StudentID:    sub.StudentID,
		OccurredAt:   sub.SubmittedAt,
	})
	return nil
}

// ─── Queries ───────────────────────────────────────────────────────────

func (s *AssessmentService) ListTestsByInstructor(ctx context.Context, instructorID int64) ([]model.Test, error) {
	return s.tests.ListByInstructor(ctx, instructorID)
}

func (s *AssessmentService) ListAssignmentsByInstructor(ctx context.Context, instructorID int64) ([]model.Assignment, error) {
	return s.assignments.ListByInstructor(ctx, instructorID)
}

// ListTestsForStudent returns the tests set for the student's class level.
func (s *AssessmentService) ListTestsForStudent(ctx context.Context, studentID int64) ([]model.Test, error) {
	student, err := s.student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.tests.ListByClassLevel(ctx, student.ClassLevel)
}

// ListAssignmentsForStudent returns the assignments set for the student's class level.
func (s *AssessmentService) ListAssignmentsForStudent(ctx context.Context, studentID int64) ([]model.Assignment, error) {
	student, err := s.student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.assignments.ListByClassLevel(ctx, student.ClassLevel)
}

func (s *AssessmentService) ListTestSubmissions(ctx context.Context, testID int64) ([]model.TestSubmission, error) {
	return s.testSubs.ListByTest(ctx, testID)
}

func (s *AssessmentService) ListTestSubmissionsByStudent(ctx context.Context, studentID int64) ([]model.TestSubmission, error) {
	return s.testSubs.ListByStudent(ctx, studentID)
}

func (s *AssessmentService) ListAssignmentSubmissions(ctx context.Context, assignmentID int64) ([]model.AssignmentSubmission, error) {
	return s.assignmentSubs.ListByAssignment(ctx, assignmentID)
}

func (s *AssessmentService) ListAssignmentSubmissionsByStudent(ctx context.Context, studentID int64) ([]model.AssignmentSubmission, error) {
	return s.assignmentSubs.ListByStudent(ctx, studentID)
}

// GetTest retrieves a test by ID.
func (s *AssessmentService) GetTest(ctx context.Context, id int64) (*model.Test, error) {
	t, err := s.tests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("get test: %w", err)
	}
	return t, nil
}

// GetAssignment retrieves an assignment by ID.
func (s *AssessmentService) GetAssignment(ctx context.Context, id int64) (*model.Assignment, error) {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

func (s *AssessmentService) student(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return student, nil
}

func (s *AssessmentService) publish(ctx context.Context, topic string, key int64, payload any) {
	if err := s.events.Publish(ctx, topic, strconv.FormatInt(key, 10), payload); err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Msg("Event publish failed")
	}
}
