package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/lms-backend/internal/model"
)

// AssignmentRepository handles assignment data access.
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO assignments (title, description, class_level, instructor_id, due_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		a.Title, a.Description, a.ClassLevel, a.InstructorID, a.DueDate,
	).Scan(&a.ID, &a.CreatedAt)
}

// GetByID retrieves an assignment by ID.
func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*model.Assignment, error) {
	a := &model.Assignment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, class_level, instructor_id, due_date, created_at
		 FROM assignments WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Description, &a.ClassLevel, &a.InstructorID, &a.DueDate, &a.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// ListByClassLevel retrieves the assignments set for a class level.
func (r *AssignmentRepository) ListByClassLevel(ctx context.Context, classLevel string) ([]model.Assignment, error) {
	return r.list(ctx,
		`SELECT id, title, description, class_level, instructor_id, due_date, created_at
		 FROM assignments WHERE class_level = $1 ORDER BY created_at DESC`, classLevel)
}

// ListByInstructor retrieves the assignments created by an instructor.
func (r *AssignmentRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]model.Assignment, error) {
	return r.list(ctx,
		`SELECT id, title, description, class_level, instructor_id, due_date, created_at
		 FROM assignments WHERE instructor_id = $1 ORDER BY created_at DESC`, instructorID)
}

func (r *AssignmentRepository) list(ctx context.Context, query string, arg any) ([]model.Assignment, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []model.Assignment{}
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.ClassLevel, &a.InstructorID, &a.DueDate, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
