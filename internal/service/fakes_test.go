package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/repository"
)

var errStorageDown = errors.New("storage down")

// ─── Tests & submissions ───────────────────────────────────────────────

type fakeTestStore struct {
	tests  map[int64]*model.Test
	nextID int64
	getErr error
}

func newFakeTestStore() *fakeTestStore {
	return &fakeTestStore{tests: map[int64]*model.Test{}}
}

func (f *fakeTestStore) Create(_ context.Context, t *model.Test) error {
	f.nextID++
	t.ID = f.nextID
	t.CreatedAt = time.Now()
	cp := *t
	f.tests[t.ID] = &cp
	return nil
}

func (f *fakeTestStore) GetByID(_ context.Context, id int64) (*model.Test, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	t, ok := f.tests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTestStore) ListByClassLevel(_ context.Context, classLevel string) ([]model.Test, error) {
	out := []model.Test{}
	for _, id := range sortedKeys(f.tests) {
		if f.tests[id].ClassLevel == classLevel {
			out = append(out, *f.tests[id])
		}
	}
	return out, nil
}

func (f *fakeTestStore) ListByInstructor(_ context.Context, instructorID int64) ([]model.Test, error) {
	out := []model.Test{}
	for _, id := range sortedKeys(f.tests) {
		if f.tests[id].InstructorID == instructorID {
			out = append(out, *f.tests[id])
		}
	}
	return out, nil
}

type fakeTestSubmissionStore struct {
	subs      []model.TestSubmission
	createErr error
}

func (f *fakeTestSubmissionStore) Create(_ context.Context, s *model.TestSubmission) error {
	if f.createErr != nil {
		return f.createErr
	}
	s.ID = int64(len(f.subs) + 1)
	f.subs = append(f.subs, *s)
	return nil
}

func (f *fakeTestSubmissionStore) ListByTest(_ context.Context, testID int64) ([]model.TestSubmission, error) {
	out := []model.TestSubmission{}
	for _, s := range f.subs {
		if s.TestID == testID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeTestSubmissionStore) ListByStudent(_ context.Context, studentID int64) ([]model.TestSubmission, error) {
	out := []model.TestSubmission{}
	for _, s := range f.subs {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

// ─── Assignments & submissions ─────────────────────────────────────────

type fakeAssignmentStore struct {
	assignments map[int64]*model.Assignment
	nextID      int64
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{assignments: map[int64]*model.Assignment{}}
}

func (f *fakeAssignmentStore) Create(_ context.Context, a *model.Assignment) error {
	f.nextID++
	a.ID = f.nextID
	cp := *a
	f.assignments[a.ID] = &cp
	return nil
}

func (f *fakeAssignmentStore) GetByID(_ context.Context, id int64) (*model.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAssignmentStore) ListByClassLevel(_ context.Context, classLevel string) ([]model.Assignment, error) {
	out := []model.Assignment{}
	for _, id := range sortedKeys(f.assignments) {
		if f.assignments[id].ClassLevel == classLevel {
			out = append(out, *f.assignments[id])
		}
	}
	return out, nil
}

func (f *fakeAssignmentStore) ListByInstructor(_ context.Context, instructorID int64) ([]model.Assignment, error) {
	out := []model.Assignment{}
	for _, id := range sortedKeys(f.assignments) {
		if f.assignments[id].InstructorID == instructorID {
			out = append(out, *f.assignments[id])
		}
	}
	return out, nil
}

type fakeAssignmentSubmissionStore struct {
	subs []model.AssignmentSubmission
}

func (f *fakeAssignmentSubmissionStore) Create(_ context.Context, s *model.AssignmentSubmission) error {
	s.ID = int64(len(f.subs) + 1)
	f.subs = append(f.subs, *s)
	return nil
}

func (f *fakeAssignmentSubmissionStore) ListByAssignment(_ context.Context, assignmentID int64) ([]model.AssignmentSubmission, error) {
	out := []model.AssignmentSubmission{}
	for _, s := range f.subs {
		if s.AssignmentID == assignmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAssignmentSubmissionStore) ListByStudent(_ context.Context, studentID int64) ([]model.AssignmentSubmission, error) {
	out := []model.AssignmentSubmission{}
	for _, s := range f.subs {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

// ─── Enrollments ───────────────────────────────────────────────────────

type fakeEnrollmentStore struct {
	enrollments map[int64]*model.Enrollment
	nextID      int64
	// raceOnCreate simulates a concurrent insert slipping past the existence check.
	raceOnCreate bool
	updates      int
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{enrollments: map[int64]*model.Enrollment{}}
}

func (f *fakeEnrollmentStore) ExistsByStudentAndCourse(_ context.Context, studentID, courseID int64) (bool, error) {
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentStore) Create(_ context.Context, e *model.Enrollment) error {
	if f.raceOnCreate {
		return repository.ErrDuplicateEnrollment
	}
	f.nextID++
	e.ID = f.nextID
	e.UpdatedAt = e.EnrollmentDate
	cp := *e
	f.enrollments[e.ID] = &cp
	return nil
}

func (f *fakeEnrollmentStore) GetByID(_ context.Context, id int64) (*model.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEnrollmentStore) UpdateState(_ context.Context, e *model.Enrollment) error {
	stored, ok := f.enrollments[e.ID]
	if !ok {
		return repository.ErrNotFound
	}
	f.updates++
	e.UpdatedAt = stored.UpdatedAt.Add(time.Second)
	cp := *e
	f.enrollments[e.ID] = &cp
	return nil
}

func (f *fakeEnrollmentStore) List(_ context.Context) ([]model.Enrollment, error) {
	out := []model.Enrollment{}
	for _, id := range sortedKeys(f.enrollments) {
		out = append(out, *f.enrollments[id])
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID int64) ([]model.Enrollment, error) {
	out := []model.Enrollment{}
	for _, id := range sortedKeys(f.enrollments) {
		if f.enrollments[id].StudentID == studentID {
			out = append(out, *f.enrollments[id])
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListByCourse(_ context.Context, courseID int64) ([]model.Enrollment, error) {
	out := []model.Enrollment{}
	for _, id := range sortedKeys(f.enrollments) {
		if f.enrollments[id].CourseID == courseID {
			out = append(out, *f.enrollments[id])
		}
	}
	return out, nil
}

// ─── Students & courses ────────────────────────────────────────────────

type fakeStudentStore map[int64]*model.Student

func (f fakeStudentStore) GetByID(_ context.Context, id int64) (*model.Student, error) {
	s, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

type fakeCourseStore map[int64]*model.Course

func (f fakeCourseStore) GetByID(_ context.Context, id int64) (*model.Course, error) {
	c, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

// ─── Notifications ─────────────────────────────────────────────────────

// MockNotifier is a testify mock for Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, to model.Recipient, message, kind string) error {
	args := m.Called(ctx, to, message, kind)
	return args.Error(0)
}

// MockPublisher is a testify mock for event.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

func (m *MockPublisher) Close() error { return nil }

type fakeNotificationStore struct {
	mu            sync.Mutex
	notifications []model.Notification
	createErr     error
}

func (f *fakeNotificationStore) Create(_ context.Context, n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	n.ID = int64(len(f.notifications) + 1)
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationStore) ListByUser(_ context.Context, to model.Recipient) ([]model.Notification, error) {
	out := []model.Notification{}
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].Recipient() == to {
			out = append(out, f.notifications[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) CountUnread(_ context.Context, to model.Recipient) (int64, error) {
	var n int64
	for _, x := range f.notifications {
		if x.Recipient() == to && !x.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id int64, owner *model.Recipient) (*model.Notification, error) {
	for i := range f.notifications {
		if f.notifications[i].ID == id && (owner == nil || f.notifications[i].Recipient() == *owner) {
			f.notifications[i].IsRead = true
			cp := f.notifications[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeNotificationStore) MarkAllRead(_ context.Context, to model.Recipient) (int64, error) {
	var n int64
	for i := range f.notifications {
		if f.notifications[i].Recipient() == to && !f.notifications[i].IsRead {
			f.notifications[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationStore) DeleteReadBefore(_ context.Context, cutoff time.Time) (int64, error) {
	kept := f.notifications[:0]
	var n int64
	for _, x := range f.notifications {
		if x.IsRead && x.CreatedAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, x)
	}
	f.notifications = kept
	return n, nil
}

type fakeQueue struct {
	queued []model.Notification
	err    error
}

func (f *fakeQueue) Enqueue(_ context.Context, n model.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.queued = append(f.queued, n)
	return nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
