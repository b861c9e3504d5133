package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/lms-backend/internal/model"
)

// EnrollmentRepository handles enrollment data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

const enrollmentColumns = `id, student_id, course_id, enrollment_date, updated_at, progress_percentage, status`

// ExistsByStudentAndCourse reports whether the pair is already enrolled.
func (r *EnrollmentRepository) ExistsByStudentAndCourse(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new enrollment. The unique (student_id, course_id) index
// closes the race left open by ExistsByStudentAndCourse.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, course_id, enrollment_date, updated_at, progress_percentage, status)
		 VALUES ($1, $2, $3, $3, $4, $5)
		 RETURNING id, updated_at`,
		e.StudentID, e.CourseID, e.EnrollmentDate, e.ProgressPercentage, e.Status,
	).Scan(&e.ID, &e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEnrollment
		}
		return err
	}
	return nil
}

// GetByID retrieves an enrollment by ID.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1`, id,
	).Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrollmentDate, &e.UpdatedAt, &e.ProgressPercentage, &e.Status)
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// UpdateState writes progress and status and bumps updated_at.
func (r *EnrollmentRepository) UpdateState(ctx context.Context, e *model.Enrollment) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE enrollments SET progress_percentage = $1, status = $2, updated_at = NOW()
		 WHERE id = $3
		 RETURNING updated_at`,
		e.ProgressPercentage, e.Status, e.ID,
	).Scan(&e.UpdatedAt)
	return notFound(err)
}

// List retrieves every enrollment.
func (r *EnrollmentRepository) List(ctx context.Context) ([]model.Enrollment, error) {
	return r.list(ctx, `SELECT `+enrollmentColumns+` FROM enrollments ORDER BY id`)
}

// ListByStudent retrieves a student's enrollments.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]model.Enrollment, error) {
	return r.list(ctx, `SELECT `+enrollmentColumns+` FROM enrollments WHERE student_id = $1 ORDER BY id`, studentID)
}

// ListByCourse retrieves a course's enrollments.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]model.Enrollment, error) {
	return r.list(ctx, `SELECT `+enrollmentColumns+` FROM enrollments WHERE course_id = $1 ORDER BY id`, courseID)
}

func (r *EnrollmentRepository) list(ctx context.Context, query string, args ...any) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := []model.Enrollment{}
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrollmentDate, &e.UpdatedAt, &e.ProgressPercentage, &e.Status); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}
