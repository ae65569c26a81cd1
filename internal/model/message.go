package model

import "time"

// Message is one applicant↔officer chat message tied to an application.
type Message struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	SenderID      string    `json:"sender_id"`
	RecipientID   string    `json:"recipient_id"`
	Content       string    `json:"content"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}
