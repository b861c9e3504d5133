package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/lms-backend/internal/model"
)

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// GetByID retrieves a course by ID.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, class_level, category, status, instructor_id, created_at, updated_at
		 FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Description, &c.ClassLevel, &c.Category, &c.Status, &c.InstructorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// Create inserts a new course. An empty status defaults to Draft.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	if c.Status == "" {
		c.Status = model.CourseStatusDraft
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (title, description, class_level, category, status, instructor_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Title, c.Description, c.ClassLevel, c.Category, c.Status, c.InstructorID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}
