package model

import "time"

const (
	NotificationTypeStatusChange = "status_change"
	NotificationTypeMessage      = "message"
	NotificationTypeAppointment  = "appointment"
	NotificationTypeDocument     = "document"
)

// Notification is the durable record; the realtime push of the same
// data is a convenience layer on top of it. The owner is implied by the
// endpoint, so user_id never leaves the server.
type Notification struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	Type          string    `json:"type"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
	ApplicationID string    `json:"application_id,omitempty"`
}
