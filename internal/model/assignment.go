package model

import "time"

// SubmissionStatus is the review state of an assignment submission.
type SubmissionStatus string

const (
	SubmissionStatusSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionStatusGraded    SubmissionStatus = "GRADED"
)

// Assignment is free-form coursework that is reviewed manually.
type Assignment struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ClassLevel   string     `json:"classLevel"`
	InstructorID int64      `json:"instructorId"`
	DueDate      *time.Time `json:"dueDate"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// AssignmentSubmission is a student's answer to an assignment.
type AssignmentSubmission struct {
	ID           int64            `json:"id"`
	AssignmentID int64            `json:"assignmentId"`
	StudentID    int64            `json:"studentId"`
	Content      string           `json:"content"`
	Status       SubmissionStatus `json:"status"`
	Marks        *int             `json:"marks"`
	SubmittedAt  time.Time        `json:"submittedAt"`
}

type CreateAssignmentRequest struct {
	Title        string     `json:"title" binding:"required,notblank,max=255"`
	Description  string     `json:"description" binding:"max=10000"`
	ClassLevel   string     `json:"classLevel" binding:"required,notblank,max=50"`
	InstructorID int64      `json:"instructorId" binding:"omitempty,min=1"`
	DueDate      *time.Time `json:"dueDate"`
}

type SubmitAssignmentRequest struct {
	AssignmentID int64  `json:"assignmentId" binding:"required,min=1"`
	StudentID    int64  `json:"studentId" binding:"required,min=1"`
	Content      string `json:"content" binding:"required"`
}
