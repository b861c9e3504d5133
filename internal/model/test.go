package model

import (
	"encoding/json"
	"time"
)

// Test is a graded, auto-evaluated assessment scoped to a class level.
type Test struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Topic        string      `json:"topic"`
	ClassLevel   string      `json:"classLevel"`
	InstructorID int64       `json:"instructorId"`
	Questions    QuestionSet `json:"questions"`
	TotalMarks   *int        `json:"totalMarks"`
	DueDate      *time.Time  `json:"dueDate"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// TestSubmission is a student's answer sheet together with its grading result.
// Evaluation is nil when grading could not run.
type TestSubmission struct {
	ID          int64             `json:"id"`
	TestID      int64             `json:"testId"`
	StudentID   int64             `json:"studentId"`
	Answers     json.RawMessage   `json:"answers"`
	Score       int               `json:"score"`
	TotalMarks  int               `json:"totalMarks"`
	Evaluation  []EvaluationEntry `json:"evaluation"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// CreateTestRequest is the payload for authoring a test.
// Questions may be omitted; they are then generated from Topic.
type CreateTestRequest struct {
	Title        string      `json:"title" binding:"required,notblank,max=255"`
	Topic        string      `json:"topic" binding:"max=100"`
	ClassLevel   string      `json:"classLevel" binding:"required,notblank,max=50"`
	InstructorID int64       `json:"instructorId" binding:"omitempty,min=1"`
	Questions    QuestionSet `json:"questions" binding:"omitempty,dive"`
	TotalMarks   *int        `json:"totalMarks" binding:"omitempty,min=0"`
	DueDate      *time.Time  `json:"dueDate"`
}

// SubmitTestRequest is the payload for a test submission. Answers are kept
// raw so that a malformed answer sheet is still recorded.
type SubmitTestRequest struct {
	TestID    int64           `json:"testId" binding:"required,min=1"`
	StudentID int64           `json:"studentId" binding:"required,min=1"`
	Answers   json.RawMessage `json:"answers"`
}
