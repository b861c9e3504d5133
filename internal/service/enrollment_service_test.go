package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/lms-backend/internal/event"
	"github.com/stemsi/lms-backend/internal/model"
)

var instructor99 = model.Recipient{UserID: 99, Role: model.RoleInstructor}

type enrollmentFixture struct {
	svc         *EnrollmentService
	enrollments *fakeEnrollmentStore
	notifier    *MockNotifier
	events      *MockPublisher
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()

	instructor := int64(99)
	students := fakeStudentStore{
		7: {ID: 7, Name: "Ayu", ClassLevel: "10"},
		8: {ID: 8, Name: "Budi", ClassLevel: "10"},
	}
	courses := fakeCourseStore{
		3: {ID: 3, Title: "Physics 101", InstructorID: &instructor},
		4: {ID: 4, Title: "Unassigned"},
	}

	f := &enrollmentFixture{
		enrollments: newFakeEnrollmentStore(),
		notifier:    &MockNotifier{},
		events:      &MockPublisher{},
	}
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.svc = NewEnrollmentService(f.enrollments, students, courses, f.notifier, f.events, zerolog.Nop())
	return f
}

func (f *enrollmentFixture) enroll(t *testing.T) *model.Enrollment {
	t.Helper()
	f.notifier.On("Notify", mock.Anything, instructor99, mock.Anything, model.NotificationKindEnrollment).Return(nil).Maybe()
	e, err := f.svc.Enroll(context.Background(), 7, 3)
	require.NoError(t, err)
	return e
}

// ─── Enroll ────────────────────────────────────────────────────────────

func TestEnroll_NotifiesInstructor(t *testing.T) {
	f := newEnrollmentFixture(t)
	f.notifier.On("Notify", mock.Anything, instructor99,
		"New student Ayu has enrolled in your course: Physics 101",
		model.NotificationKindEnrollment,
	).Return(nil).Once()

	e, err := f.svc.Enroll(context.Background(), 7, 3)

	require.NoError(t, err)
	assert.NotZero(t, e.ID)
	assert.Equal(t, model.EnrollmentStatusEnrolled, e.Status)
	assert.Zero(t, e.ProgressPercentage)
	assert.False(t, e.EnrollmentDate.IsZero())
	f.notifier.AssertNumberOfCalls(t, "Notify", 1)
	f.events.AssertCalled(t, "Publish", mock.Anything, event.EnrollmentCreated, "1", mock.Anything)
}

func TestEnroll_CourseWithoutInstructor(t *testing.T) {
	f := newEnrollmentFixture(t)

	_, err := f.svc.Enroll(context.Background(), 7, 4)

	require.NoError(t, err)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEnroll_NotifierFailureDoesNotBlock(t *testing.T) {
	f := newEnrollmentFixture(t)
	f.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("inbox down"))

	e, err := f.svc.Enroll(context.Background(), 7, 3)

	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentStatusEnrolled, e.Status)
	assert.Len(t, f.enrollments.enrollments, 1)
}

func TestEnroll_Duplicate(t *testing.T) {
	f := newEnrollmentFixture(t)
	f.enroll(t)

	_, err := f.svc.Enroll(context.Background(), 7, 3)

	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	assert.Len(t, f.enrollments.enrollments, 1)
	f.notifier.AssertNumberOfCalls(t, "Notify", 1)
}

func TestEnroll_DuplicateRaceAtStorage(t *testing.T) {
	f := newEnrollmentFixture(t)
	f.enrollments.raceOnCreate = true

	_, err := f.svc.Enroll(context.Background(), 7, 3)

	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEnroll_NotFound(t *testing.T) {
	tests := []struct {
		name      string
		studentID int64
		courseID  int64
		want      error
	}{
		{"unknown student", 404, 3, ErrStudentNotFound},
		{"unknown course", 7, 404, ErrCourseNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEnrollmentFixture(t)

			_, err := f.svc.Enroll(context.Background(), tt.studentID, tt.courseID)

			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.enrollments.enrollments)
		})
	}
}

// ─── Progress ──────────────────────────────────────────────────────────

func TestUpdateProgress(t *testing.T) {
	tests := []struct {
		name       string
		progress   float64
		wantStatus model.EnrollmentStatus
	}{
		{"zero", 0, model.EnrollmentStatusEnrolled},
		{"midway", 42.5, model.EnrollmentStatusEnrolled},
		{"just below complete", 99.999, model.EnrollmentStatusEnrolled},
		{"exactly complete", 100, model.EnrollmentStatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEnrollmentFixture(t)
			e := f.enroll(t)

			got, err := f.svc.UpdateProgress(context.Background(), e.ID, tt.progress)

			require.NoError(t, err)
			assert.Equal(t, tt.progress, got.ProgressPercentage)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.True(t, got.UpdatedAt.After(e.UpdatedAt))
		})
	}
}

func TestUpdateProgress_OutOfRange(t *testing.T) {
	for _, p := range []float64{-1, -0.001, 100.001, 101, math.NaN(), math.Inf(1)} {
		f := newEnrollmentFixture(t)
		e := f.enroll(t)

		_, err := f.svc.UpdateProgress(context.Background(), e.ID, p)

		assert.ErrorIs(t, err, ErrInvalidProgress, "progress %v", p)
		assert.Zero(t, f.enrollments.updates)
		stored := f.enrollments.enrollments[e.ID]
		assert.Zero(t, stored.ProgressPercentage)
		assert.Equal(t, model.EnrollmentStatusEnrolled, stored.Status)
	}
}

func TestUpdateProgress_NotFound(t *testing.T) {
	f := newEnrollmentFixture(t)

	_, err := f.svc.UpdateProgress(context.Background(), 77, 50)

	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestUpdateProgress_DoesNotReviveTerminalStatus(t *testing.T) {
	f := newEnrollmentFixture(t)
	e := f.enroll(t)
	_, err := f.svc.DropCourse(context.Background(), e.ID)
	require.NoError(t, err)

	got, err := f.svc.UpdateProgress(context.Background(), e.ID, 30)

	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentStatusDropped, got.Status)
	assert.Equal(t, 30.0, got.ProgressPercentage)
}

// ─── Complete & drop ───────────────────────────────────────────────────

func TestCompleteCourse(t *testing.T) {
	f := newEnrollmentFixture(t)
	e := f.enroll(t)
	_, err := f.svc.UpdateProgress(context.Background(), e.ID, 35)
	require.NoError(t, err)

	got, err := f.svc.CompleteCourse(context.Background(), e.ID)

	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentStatusCompleted, got.Status)
	assert.Equal(t, 100.0, got.ProgressPercentage)
	f.events.AssertCalled(t, "Publish", mock.Anything, event.EnrollmentStatusChanged, "1", mock.Anything)
}

func TestDropCourse_KeepsProgress(t *testing.T) {
	f := newEnrollmentFixture(t)
	e := f.enroll(t)
	_, err := f.svc.UpdateProgress(context.Background(), e.ID, 35)
	require.NoError(t, err)

	got, err := f.svc.DropCourse(context.Background(), e.ID)

	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentStatusDropped, got.Status)
	assert.Equal(t, 35.0, got.ProgressPercentage)
}

func TestCompleteAndDrop_NotFound(t *testing.T) {
	f := newEnrollmentFixture(t)

	_, err := f.svc.CompleteCourse(context.Background(), 5)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)

	_, err = f.svc.DropCourse(context.Background(), 5)
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

// ─── Queries ───────────────────────────────────────────────────────────

func TestListByStudentAndCourse(t *testing.T) {
	f := newEnrollmentFixture(t)
	f.enroll(t)
	_, err := f.svc.Enroll(context.Background(), 8, 4)
	require.NoError(t, err)

	byStudent, err := f.svc.ListByStudent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, byStudent, 1)
	assert.Equal(t, int64(3), byStudent[0].CourseID)

	byCourse, err := f.svc.ListByCourse(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, byCourse, 1)
	assert.Equal(t, int64(8), byCourse[0].StudentID)

	all, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.ListByStudent(context.Background(), 404)
	assert.ErrorIs(t, err, ErrStudentNotFound)
	_, err = f.svc.ListByCourse(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
