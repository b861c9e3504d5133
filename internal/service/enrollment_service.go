package service

import (
	"context"
	"errors"
	"fmt"
	"math"
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
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrAlreadyEnrolled    = errors.New("student is already enrolled in this course")
	ErrInvalidProgress    = errors.New("progress must be between 0 and 100")
)

const (
	minProgress      = 0.0
	maxProgress      = 100.0
	enrollmentNotice = "New student %s has enrolled in your course: %s"
)

// Notifier delivers a notification to a user. Delivery is best-effort.
type Notifier interface {
	Notify(ctx context.Context, to model.Recipient, message, kind string) error
}

// EnrollmentService owns the enrollment lifecycle:
// ENROLLED → COMPLETED | DROPPED.
type EnrollmentService struct {
	enrollments EnrollmentStore
	students    StudentStore
	courses     CourseStore
	notifier    Notifier
	events      event.Publisher
	log         zerolog.Logger
	now         func() time.Time
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	enrollments EnrollmentStore,
	students StudentStore,
	courses CourseStore,
	notifier Notifier,
	events event.Publisher,
	log zerolog.Logger,
) *EnrollmentService {
	if events == nil {
		events = event.NopPublisher{}
	}
	return &EnrollmentService{
		enrollments: enrollments,
		students:    students,
		courses:     courses,
		notifier:    notifier,
		events:      events,
		log:         log.With().Str("component", "enrollment_service").Logger(),
		now:         time.Now,
	}
}

// Enroll creates an ENROLLED enrollment at 0% and tells the course's
// instructor, if any. The notification cannot fail the enrollment.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64) (*model.Enrollment, error) {
	exists, err := s.enrollments.ExistsByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}
	if exists {
		return nil, ErrAlreadyEnrolled
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	e := &model.Enrollment{
		StudentID:          studentID,
		CourseID:           courseID,
		EnrollmentDate:     s.now(),
		ProgressPercentage: 0,
		Status:             model.EnrollmentStatusEnrolled,
	}
	if err := s.enrollments.Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrDuplicateEnrollment) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	metrics.EnrollmentTransition(string(e.Status))

	if course.InstructorID != nil && s.notifier != nil {
		msg := fmt.Sprintf(enrollmentNotice, student.Name, course.Title)
		if err := s.notifier.Notify(ctx, model.Recipient{UserID: *course.InstructorID, Role: model.RoleInstructor}, msg, model.NotificationKindEnrollment); err != nil {
			s.log.Warn().Err(err).
				Int64("enrollment_id", e.ID).
				Int64("instructor_id", *course.InstructorID).
				Msg("Enrollment notification failed")
		}
	}

	s.publish(ctx, event.EnrollmentCreated, e)
	return e, nil
}

// UpdateProgress sets the progress percentage. Exactly 100 completes the
// enrollment; anything lower leaves the status alone.
func (s *EnrollmentService) UpdateProgress(ctx context.Context, id int64, progress float64) (*model.Enrollment, error) {
	if math.IsNaN(progress) || progress < minProgress || progress > maxProgress {
		return nil, ErrInvalidProgress
	}
	return s.mutate(ctx, id, func(e *model.Enrollment) {
		e.ProgressPercentage = progress
		if progress == maxProgress {
			e.Status = model.EnrollmentStatusCompleted
		}
	})
}

// CompleteCourse marks the enrollment COMPLETED at 100%, whatever its state.
func (s *EnrollmentService) CompleteCourse(ctx context.Context, id int64) (*model.Enrollment, error) {
	return s.mutate(ctx, id, func(e *model.Enrollment) {
		e.ProgressPercentage = maxProgress
		e.Status = model.EnrollmentStatusCompleted
	})
}

// DropCourse marks the enrollment DROPPED and keeps its progress.
func (s *EnrollmentService) DropCourse(ctx context.Context, id int64) (*model.Enrollment, error) {
	return s.mutate(ctx, id, func(e *model.Enrollment) {
		e.Status = model.EnrollmentStatusDropped
	})
}

func (s *EnrollmentService) mutate(ctx context.Context, id int64, apply func(*model.Enrollment)) (*model.Enrollment, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := e.Status

	apply(e)

	if err := s.enrollments.UpdateState(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("update enrollment: %w", err)
	}

	if e.Status != before {
		metrics.EnrollmentTransition(string(e.Status))
		s.publish(ctx, event.EnrollmentStatusChanged, e)
	}
	return e, nil
}

// ─── Queries ───────────────────────────────────────────────────────────

// GetByID retrieves an enrollment by ID.
func (s *EnrollmentService) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	e, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	return e, nil
}

func (s *EnrollmentService) List(ctx context.Context) ([]model.Enrollment, error) {
	return s.enrollments.List(ctx)
}

// ListByStudent fails with ErrStudentNotFound for an unknown student.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID int64) ([]model.Enrollment, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return s.enrollments.ListByStudent(ctx, studentID)
}

// ListByCourse fails with ErrCourseNotFound for an unknown course.
func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID int64) ([]model.Enrollment, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return s.enrollments.ListByCourse(ctx, courseID)
}

func (s *EnrollmentService) publish(ctx context.Context, topic string, e *model.Enrollment) {
	err := s.events.Publish(ctx, topic, strconv.FormatInt(e.ID, 10), event.EnrollmentEvent{
		EnrollmentID: e.ID,
		StudentID:    e.StudentID,
		CourseID:     e.CourseID,
		Status:       string(e.Status),
		Progress:     e.ProgressPercentage,
		OccurredAt:   s.now(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Int64("enrollment_id", e.ID).Msg("Event publish failed")
	}
}
