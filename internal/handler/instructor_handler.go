package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/lms-backend/internal/middleware"
	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/response"
	"github.com/stemsi/lms-backend/internal/validator"
)

// InstructorAssessments is the authoring side of the assessment service.
type InstructorAssessments interface {
	CreateTest(ctx context.Context, t *model.Test) error
	CreateAssignment(ctx context.Context, a *model.Assignment) error
	GetTest(ctx context.Context, id int64) (*model.Test, error)
	GetAssignment(ctx context.Context, id int64) (*model.Assignment, error)
	ListTestsByInstructor(ctx context.Context, instructorID int64) ([]model.Test, error)
	ListAssignmentsByInstructor(ctx context.Context, instructorID int64) ([]model.Assignment, error)
	ListTestSubmissions(ctx context.Context, testID int64) ([]model.TestSubmission, error)
	ListAssignmentSubmissions(ctx context.Context, assignmentID int64) ([]model.AssignmentSubmission, error)
}

// InstructorHandler handles test and assignment authoring endpoints.
type InstructorHandler struct {
	assessments InstructorAssessments
	log         zerolog.Logger
}

// NewInstructorHandler creates a new InstructorHandler.
func NewInstructorHandler(assessments InstructorAssessments, log zerolog.Logger) *InstructorHandler {
	return &InstructorHandler{
		assessments: assessments,
		log:         log.With().Str("component", "instructor_handler").Logger(),
	}
}

// CreateTest godoc
// POST /api/v1/instructor/tests
// Creates a test. Without questions, they are generated from the topic.
func (h *InstructorHandler) CreateTest(c *gin.Context) {
	var req model.CreateTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	instructorID, ok := h.instructorFor(c, req.InstructorID)
	if !ok {
		return
	}

	test := &model.Test{
		Title:        req.Title,
		Topic:        req.Topic,
		ClassLevel:   req.ClassLevel,
		InstructorID: instructorID,
		Questions:    req.Questions,
		TotalMarks:   req.TotalMarks,
		DueDate:      req.DueDate,
	}
	if err := h.assessments.CreateTest(c.Request.Context(), test); err != nil {
		failFromService(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, test)
}

// ListTests godoc
// GET /api/v1/instructor/tests?instructorId=
// Lists tests authored by an instructor, the caller by default.
func (h *InstructorHandler) ListTests(c *gin.Context) {
	requested, ok := parseOptionalQueryID(c, "instructorId")
	if !ok {
		return
	}
	instructorID, ok := h.instructorFor(c, requested)
	if !ok {
		return
	}

	tests, err := h.assessments.ListTestsByInstructor(c.Request.Context(), instructorID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, tests)
}

// ListTestSubmissions godoc
// GET /api/v1/instructor/tests/:id/submissions
func (h *InstructorHandler) ListTestSubmissions(c *gin.Context) {
	testID, ok := parseID(c, "id")
	if !ok {
		return
	}

	test, err := h.assessments.GetTest(c.Request.Context(), testID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	if !requireSelf(c, model.Recipient{UserID: test.InstructorID, Role: model.RoleInstructor}) {
		return
	}

	subs, err := h.assessments.ListTestSubmissions(c.Request.Context(), testID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, subs)
}

// CreateAssignment godoc
// POST /api/v1/instructor/assignments
func (h *InstructorHandler) CreateAssignment(c *gin.Context) {
	var req model.CreateAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	instructorID, ok := h.instructorFor(c, req.InstructorID)
	if !ok {
		return
	}

	assignment := &model.Assignment{
		Title:        req.Title,
		Description:  req.Description,
		ClassLevel:   req.ClassLevel,
		InstructorID: instructorID,
		DueDate:      req.DueDate,
	}
	if err := h.assessments.CreateAssignment(c.Request.Context(), assignment); err != nil {
		failFromService(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, assignment)
}

// ListAssignments godoc
// GET /api/v1/instructor/assignments?instructorId=
func (h *InstructorHandler) ListAssignments(c *gin.Context) {
	requested, ok := parseOptionalQueryID(c, "instructorId")
	if !ok {
		return
	}
	instructorID, ok := h.instructorFor(c, requested)
	if !ok {
		return
	}

	assignments, err := h.assessments.ListAssignmentsByInstructor(c.Request.Context(), instructorID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, assignments)
}

// ListAssignmentSubmissions godoc
// GET /api/v1/instructor/assignments/:id/submissions
func (h *InstructorHandler) ListAssignmentSubmissions(c *gin.Context) {
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assessments.GetAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	if !requireSelf(c, model.Recipient{UserID: assignment.InstructorID, Role: model.RoleInstructor}) {
		return
	}

	subs, err := h.assessments.ListAssignmentSubmissions(c.Request.Context(), assignmentID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, subs)
}

// instructorFor resolves the instructor a request acts for: the requested
// id if the caller may act for it, the caller when none is given.
func (h *InstructorHandler) instructorFor(c *gin.Context, requested int64) (int64, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return 0, false
	}
	if requested == 0 {
		return claims.UserID, true
	}
	if !requireSelf(c, model.Recipient{UserID: requested, Role: model.RoleInstructor}) {
		return 0, false
	}
	return requested, true
}
