package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/lms-backend/internal/middleware"
	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/response"
	"github.com/stemsi/lms-backend/internal/service"
	"github.com/stemsi/lms-backend/internal/validator"
)

// Enrollments is the enrollment state machine.
type Enrollments interface {
	Enroll(ctx context.Context, studentID, courseID int64) (*model.Enrollment, error)
	UpdateProgress(ctx context.Context, id int64, progress float64) (*model.Enrollment, error)
	CompleteCourse(ctx context.Context, id int64) (*model.Enrollment, error)
	DropCourse(ctx context.Context, id int64) (*model.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*model.Enrollment, error)
	List(ctx context.Context) ([]model.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]model.Enrollment, error)
}

// EnrollmentHandler handles enrollment lifecycle endpoints.
type EnrollmentHandler struct {
	enrollments Enrollments
	log         zerolog.Logger
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollments Enrollments, log zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollments: enrollments,
		log:         log.With().Str("component", "enrollment_handler").Logger(),
	}
}

// Enroll godoc
// POST /api/v1/enrollments/enroll
// Enrolls a student in a course. Students may only enroll themselves.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req model.EnrollRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if !canViewStudent(c, req.StudentID) {
		return
	}

	e, err := h.enrollments.Enroll(c.Request.Context(), req.StudentID, req.CourseID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

// UpdateProgress godoc
// PUT /api/v1/enrollments/:id/progress
// Body is a bare JSON number, e.g. 75.5.
func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	var progress float64
	if err := json.Unmarshal(body, &progress); err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, map[string]string{
			"progress": "body must be a number",
		})
		return
	}

	if !h.ownsEnrollment(c, id) {
		return
	}

	e, err := h.enrollments.UpdateProgress(c.Request.Context(), id, progress)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

// CompleteCourse godoc
// PUT /api/v1/enrollments/:id/complete
func (h *EnrollmentHandler) CompleteCourse(c *gin.Context) {
	h.transition(c, h.enrollments.CompleteCourse)
}

// DropCourse godoc
// PUT /api/v1/enrollments/:id/drop
func (h *EnrollmentHandler) DropCourse(c *gin.Context) {
	h.transition(c, h.enrollments.DropCourse)
}

func (h *EnrollmentHandler) transition(c *gin.Context, apply func(context.Context, int64) (*model.Enrollment, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !h.ownsEnrollment(c, id) {
		return
	}

	e, err := apply(c.Request.Context(), id)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

// GetEnrollment godoc
// GET /api/v1/enrollments/:id
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	e, err := h.enrollments.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	if !canViewStudent(c, e.StudentID) {
		return
	}
	response.Success(c, http.StatusOK, e)
}

// ListEnrollments godoc
// GET /api/v1/enrollments
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	list, err := h.enrollments.List(c.Request.Context())
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// ListByStudent godoc
// GET /api/v1/enrollments/student/:studentId
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	studentID, ok := parseID(c, "studentId")
	if !ok {
		return
	}
	if !canViewStudent(c, studentID) {
		return
	}

	list, err := h.enrollments.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// ListByCourse godoc
// GET /api/v1/enrollments/course/:courseId
func (h *EnrollmentHandler) ListByCourse(c *gin.Context) {
	courseID, ok := parseID(c, "courseId")
	if !ok {
		return
	}

	list, err := h.enrollments.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// ownsEnrollment stops a student from changing someone else's enrollment.
// A missing enrollment passes through so the service reports it.
func (h *EnrollmentHandler) ownsEnrollment(c *gin.Context, id int64) bool {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.Role != model.RoleStudent {
		return true
	}

	e, err := h.enrollments.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEnrollmentNotFound) {
			return true
		}
		failFromService(c, h.log, err)
		return false
	}
	return canViewStudent(c, e.StudentID)
}

// canViewStudent lets staff through and holds students to their own id.
func canViewStudent(c *gin.Context, studentID int64) bool {
	claims := middleware.GetClaims(c)
	if claims != nil && claims.Role != model.RoleStudent {
		return true
	}
	return requireSelf(c, model.Recipient{UserID: studentID, Role: model.RoleStudent})
}
