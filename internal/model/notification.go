package model

import "time"

// NotificationKindEnrollment marks notifications sent when a student enrolls.
const NotificationKindEnrollment = "ENROLLMENT"

// Recipient addresses an inbox. Student, instructor and admin ids come from
// separate sequences, so an id alone does not identify a user.
type Recipient struct {
	UserID int64
	Role   Role
}

// Notification is an inbox message addressed to a user.
type Notification struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	RecipientRole Role      `json:"recipientRole"`
	Message       string    `json:"message"`
	Kind          string    `json:"type"`
	IsRead        bool      `json:"isRead"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Recipient returns the inbox this notification belongs to.
func (n Notification) Recipient() Recipient {
	return Recipient{UserID: n.UserID, Role: n.RecipientRole}
}
