package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/lms-backend/internal/model"
)

// TestRepository handles test data access.
type TestRepository struct {
	pool *pgxpool.Pool
}

// NewTestRepository creates a new TestRepository.
func NewTestRepository(pool *pgxpool.Pool) *TestRepository {
	return &TestRepository{pool: pool}
}

const testColumns = `id, title, topic, class_level, instructor_id, questions, total_marks, due_date, created_at`

// Create inserts a new test. Questions are stored as encoded text.
func (r *TestRepository) Create(ctx context.Context, t *model.Test) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO tests (title, topic, class_level, instructor_id, questions, total_marks, due_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		t.Title, t.Topic, t.ClassLevel, t.InstructorID, model.EncodeQuestionSet(t.Questions), t.TotalMarks, t.DueDate,
	).Scan(&t.ID, &t.CreatedAt)
}

// GetByID retrieves a test by ID. A stored question set that cannot be
// decoded is reported as an error.
func (r *TestRepository) GetByID(ctx context.Context, id int64) (*model.Test, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+testColumns+` FROM tests WHERE id = $1`, id)
	t, err := scanTest(row)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// ListByClassLevel retrieves the tests assigned to a class level.
func (r *TestRepository) ListByClassLevel(ctx context.Context, classLevel string) ([]model.Test, error) {
	return r.list(ctx, `SELECT `+testColumns+` FROM tests WHERE class_level = $1 ORDER BY created_at DESC`, classLevel)
}

// ListByInstructor retrieves the tests authored by an instructor.
func (r *TestRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]model.Test, error) {
	return r.list(ctx, `SELECT `+testColumns+` FROM tests WHERE instructor_id = $1 ORDER BY created_at DESC`, instructorID)
}

func (r *TestRepository) list(ctx context.Context, query string, arg any) ([]model.Test, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tests := []model.Test{}
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, err
		}
		tests = append(tests, *t)
	}
	return tests, rows.Err()
}

func scanTest(row pgx.Row) (*model.Test, error) {
	var (
		t         model.Test
		questions *string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Topic, &t.ClassLevel, &t.InstructorID, &questions, &t.TotalMarks, &t.DueDate, &t.CreatedAt); err != nil {
		return nil, err
	}
	if questions != nil {
		qs, err := model.DecodeQuestionSet(*questions)
		if err != nil {
			return nil, fmt.Errorf("decode questions of test %d: %w", t.ID, err)
		}
		t.Questions = qs
	}
	return &t, nil
}
