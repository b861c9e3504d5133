package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/response"
	"github.com/stemsi/lms-backend/internal/validator"
)

// StudentAssessments is the student-facing side of the assessment service.
type StudentAssessments interface {
	ListTestsForStudent(ctx context.Context, studentID int64) ([]model.Test, error)
	ListAssignmentsForStudent(ctx context.Context, studentID int64) ([]model.Assignment, error)
	SubmitTest(ctx context.Context, sub *model.TestSubmission) error
	SubmitAssignment(ctx context.Context, sub *model.AssignmentSubmission) error
	ListTestSubmissionsByStudent(ctx context.Context, studentID int64) ([]model.TestSubmission, error)
	ListAssignmentSubmissionsByStudent(ctx context.Context, studentID int64) ([]model.AssignmentSubmission, error)
}

// StudentHandler handles the student assessment portal.
type StudentHandler struct {
	assessments StudentAssessments
	log         zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(assessments StudentAssessments, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		assessments: assessments,
		log:         log.With().Str("component", "student_handler").Logger(),
	}
}

// ListTests godoc
// GET /api/v1/student/:studentId/tests
// Lists the tests set for the student's class level.
func (h *StudentHandler) ListTests(c *gin.Context) {
	studentID, ok := h.student(c)
	if !ok {
		return
	}

	tests, err := h.assessments.ListTestsForStudent(c.Request.Context(), studentID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, tests)
}

// ListAssignments godoc
// GET /api/v1/student/:studentId/assignments
func (h *StudentHandler) ListAssignments(c *gin.Context) {
	studentID, ok := h.student(c)
	if !ok {
		return
	}

	assignments, err := h.assessments.ListAssignmentsForStudent(c.Request.Context(), studentID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, assignments)
}

// SubmitTest godoc
// POST /api/v1/student/tests/submit
// Grades and records a test submission. A submission that cannot be graded
// is still recorded, with a zero score.
func (h *StudentHandler) SubmitTest(c *gin.Context) {
	var req model.SubmitTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if !requireSelf(c, model.Recipient{UserID: req.StudentID, Role: model.RoleStudent}) {
		return
	}

	sub := &model.TestSubmission{
		TestID:    req.TestID,
		StudentID: req.StudentID,
		Answers:   req.Answers,
	}
	if err := h.assessments.SubmitTest(c.Request.Context(), sub); err != nil {
		failFromService(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, sub)
}

// SubmitAssignment godoc
// POST /api/v1/student/assignments/submit
func (h *StudentHandler) SubmitAssignment(c *gin.Context) {
	var req model.SubmitAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if !requireSelf(c, model.Recipient{UserID: req.StudentID, Role: model.RoleStudent}) {
		return
	}

	sub := &model.AssignmentSubmission{
		AssignmentID: req.AssignmentID,
		StudentID:    req.StudentID,
		Content:      req.Content,
	}
	if err := h.assessments.SubmitAssignment(c.Request.Context(), sub); err != nil {
		failFromService(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, sub)
}

// ListTestSubmissions godoc
// GET /api/v1/student/:studentId/test-submissions
func (h *StudentHandler) ListTestSubmissions(c *gin.Context) {
	studentID, ok := h.student(c)
	if !ok {
		return
	}

	subs, err := h.assessments.ListTestSubmissionsByStudent(c.Request.Context(), studentID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, subs)
}

// ListAssignmentSubmissions godoc
// GET /api/v1/student/:studentId/assignment-submissions
func (h *StudentHandler) ListAssignmentSubmissions(c *gin.Context) {
	studentID, ok := h.student(c)
	if !ok {
		return
	}

	subs, err := h.assessments.ListAssignmentSubmissionsByStudent(c.Request.Context(), studentID)
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, subs)
}

func (h *StudentHandler) student(c *gin.Context) (int64, bool) {
	studentID, ok := parseID(c, "studentId")
	if !ok {
		return 0, false
	}
	if !requireSelf(c, model.Recipient{UserID: studentID, Role: model.RoleStudent}) {
		return 0, false
	}
	return studentID, true
}
