package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/lms-backend/internal/model"
)

// InstructorRepository handles instructor data access.
type InstructorRepository struct {
	pool *pgxpool.Pool
}

// NewInstructorRepository creates a new InstructorRepository.
func NewInstructorRepository(pool *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{pool: pool}
}

// GetByEmail retrieves an instructor by their unique email.
func (r *InstructorRepository) GetByEmail(ctx context.Context, email string) (*model.Instructor, error) {
	i := &model.Instructor{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, created_at FROM instructors WHERE email = $1`, email,
	).Scan(&i.ID, &i.Name, &i.Email, &i.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return i, nil
}

// Create inserts a new instructor. Emails are unique.
func (r *InstructorRepository) Create(ctx context.Context, i *model.Instructor) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO instructors (name, email)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		i.Name, i.Email,
	).Scan(&i.ID, &i.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}
