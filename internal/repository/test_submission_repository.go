package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/lms-backend/internal/model"
)

// TestSubmissionRepository handles test submission data access.
type TestSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewTestSubmissionRepository creates a new TestSubmissionRepository.
func NewTestSubmissionRepository(pool *pgxpool.Pool) *TestSubmissionRepository {
	return &TestSubmissionRepository{pool: pool}
}

const testSubmissionColumns = `id, test_id, student_id, answers, score, total_marks, evaluation, submitted_at`

// Create inserts a graded (or zero-scored) submission.
func (r *TestSubmissionRepository) Create(ctx context.Context, s *model.TestSubmission) error {
	evaluation, err := model.EncodeEvaluation(s.Evaluation)
	if err != nil {
		return fmt.Errorf("encode evaluation: %w", err)
	}

	var answers *string
	if len(s.Answers) > 0 {
		a := string(s.Answers)
		answers = &a
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO test_submissions (test_id, student_id, answers, score, total_marks, evaluation, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		s.TestID, s.StudentID, answers, s.Score, s.TotalMarks, evaluation, s.SubmittedAt,
	).Scan(&s.ID)
}

// ListByTest retrieves all submissions for a test.
func (r *TestSubmissionRepository) ListByTest(ctx context.Context, testID int64) ([]model.TestSubmission, error) {
	return r.list(ctx, `SELECT `+testSubmissionColumns+` FROM test_submissions WHERE test_id = $1 ORDER BY submitted_at DESC`, testID)
}

// ListByStudent retrieves all submissions made by a student.
func (r *TestSubmissionRepository) ListByStudent(ctx context.Context, studentID int64) ([]model.TestSubmission, error) {
	return r.list(ctx, `SELECT `+testSubmissionColumns+` FROM test_submissions WHERE student_id = $1 ORDER BY submitted_at DESC`, studentID)
}

func (r *TestSubmissionRepository) list(ctx context.Context, query string, arg any) ([]model.TestSubmission, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []model.TestSubmission{}
	for rows.Next() {
		s, err := scanTestSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}

func scanTestSubmission(row pgx.Row) (*model.TestSubmission, error) {
	var (
		s          model.TestSubmission
		answers    *string
		evaluation *string
	)
	if err := row.Scan(&s.ID, &s.TestID, &s.StudentID, &answers, &s.Score, &s.TotalMarks, &evaluation, &s.SubmittedAt); err != nil {
		return nil, err
	}
	if answers != nil && json.Valid([]byte(*answers)) {
		s.Answers = json.RawMessage(*answers)
	}
	entries, err := model.DecodeEvaluation(evaluation)
	if err != nil {
		return nil, fmt.Errorf("decode evaluation of submission %d: %w", s.ID, err)
	}
	s.Evaluation = entries
	return &s, nil
}
