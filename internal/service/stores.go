package service

import (
	"context"
	"time"

	"github.com/stemsi/lms-backend/internal/model"
)

// Persistence ports. The pgx repositories in internal/repository satisfy
// these; tests substitute fakes.

type TestStore interface {
	Create(ctx context.Context, t *model.Test) error
	GetByID(ctx context.Context, id int64) (*model.Test, error)
	ListByClassLevel(ctx context.Context, classLevel string) ([]model.Test, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]model.Test, error)
}

type TestSubmissionStore interface {
	Create(ctx context.Context, s *model.TestSubmission) error
	ListByTest(ctx context.Context, testID int64) ([]model.TestSubmission, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.TestSubmission, error)
}

type AssignmentStore interface {
	Create(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id int64) (*model.Assignment, error)
	ListByClassLevel(ctx context.Context, classLevel string) ([]model.Assignment, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]model.Assignment, error)
}

type AssignmentSubmissionStore interface {
	Create(ctx context.Context, s *model.AssignmentSubmission) error
	ListByAssignment(ctx context.Context, assignmentID int64) ([]model.AssignmentSubmission, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.AssignmentSubmission, error)
}

type EnrollmentStore interface {
	ExistsByStudentAndCourse(ctx context.Context, studentID, courseID int64) (bool, error)
	Create(ctx context.Context, e *model.Enrollment) error
	GetByID(ctx context.Context, id int64) (*model.Enrollment, error)
	UpdateState(ctx context.Context, e *model.Enrollment) error
	List(ctx context.Context) ([]model.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]model.Enrollment, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, to model.Recipient) ([]model.Notification, error)
	CountUnread(ctx context.Context, to model.Recipient) (int64, error)
	MarkRead(ctx context.Context, id int64, owner *model.Recipient) (*model.Notification, error)
	MarkAllRead(ctx context.Context, to model.Recipient) (int64, error)
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type StudentStore interface {
	GetByID(ctx context.Context, id int64) (*model.Student, error)
}

type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*model.Course, error)
}

// QuestionResolver supplies questions for tests authored without any.
type QuestionResolver interface {
	Resolve(ctx context.Context, topic string, count int) model.QuestionSet
}
