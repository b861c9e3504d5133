package model

import "time"

// Student is a learner account. Only the fields the assessment and
// enrollment flows read are mapped.
type Student struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ClassLevel string    `json:"classLevel"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Instructor owns courses, tests and assignments.
type Instructor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
