package model

import "time"

// EnrollmentStatus enumerates the lifecycle states of an enrollment.
// ENROLLED is initial; COMPLETED and DROPPED are terminal.
type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentStatusDropped   EnrollmentStatus = "DROPPED"
)

// Enrollment links a student to a course and tracks progress through it.
type Enrollment struct {
	ID                 int64            `json:"id"`
	StudentID          int64            `json:"studentId"`
	CourseID           int64            `json:"courseId"`
	EnrollmentDate     time.Time        `json:"enrollmentDate"`
	UpdatedAt          time.Time        `json:"updatedAt"`
	ProgressPercentage float64          `json:"progressPercentage"`
	Status             EnrollmentStatus `json:"status"`
}

type EnrollRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1"`
	CourseID  int64 `json:"courseId" binding:"required,min=1"`
}
