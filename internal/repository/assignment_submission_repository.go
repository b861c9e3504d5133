package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/lms-backend/internal/model"
)

// AssignmentSubmissionRepository handles assignment submission data access.
type AssignmentSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentSubmissionRepository creates a new AssignmentSubmissionRepository.
func NewAssignmentSubmissionRepository(pool *pgxpool.Pool) *AssignmentSubmissionRepository {
	return &AssignmentSubmissionRepository{pool: pool}
}

// Create inserts a new submission.
func (r *AssignmentSubmissionRepository) Create(ctx context.Context, s *model.AssignmentSubmission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO assignment_submissions (assignment_id, student_id, content, status, marks, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		s.AssignmentID, s.StudentID, s.Content, s.Status, s.Marks, s.SubmittedAt,
	).Scan(&s.ID)
}

// ListByAssignment retrieves all submissions for an assignment.
func (r *AssignmentSubmissionRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]model.AssignmentSubmission, error) {
	return r.list(ctx,
		`SELECT id, assignment_id, student_id, content, status, marks, submitted_at
		 FROM assignment_submissions WHERE assignment_id = $1 ORDER BY submitted_at DESC`, assignmentID)
}

// ListByStudent retrieves all assignment submissions made by a student.
func (r *AssignmentSubmissionRepository) ListByStudent(ctx context.Context, studentID int64) ([]model.AssignmentSubmission, error) {
	return r.list(ctx,
		`SELECT id, assignment_id, student_id, content, status, marks, submitted_at
		 FROM assignment_submissions WHERE student_id = $1 ORDER BY submitted_at DESC`, studentID)
}

func (r *AssignmentSubmissionRepository) list(ctx context.Context, query string, arg any) ([]model.AssignmentSubmission, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []model.AssignmentSubmission{}
	for rows.Next() {
		var s model.AssignmentSubmission
		if err := rows.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.Content, &s.Status, &s.Marks, &s.SubmittedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
