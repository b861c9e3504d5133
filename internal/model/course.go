package model

import "time"

// Course is the catalog entry a student enrolls in.
type Course struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ClassLevel   string    `json:"classLevel"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	InstructorID *int64    `json:"instructorId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CourseStatusDraft is the status of a newly created course.
const CourseStatusDraft = "Draft"
