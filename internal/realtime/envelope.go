package realtime

import (
	"time"

	"github.com/borderlesste/cavb-visa-sub001/internal/model"
)

// EventType is the closed set of discriminants a client can receive.
type EventType string

const (
	EventConnectionEstablished EventType = "connection-established"
	EventApplicationUpdated    EventType = "application-updated"
	EventNewMessage            EventType = "new-message"
	EventNewNotification       EventType = "new-notification"
	EventNotificationUpdated   EventType = "notification-updated"
	EventNotificationDeleted   EventType = "notification-deleted"
)

// Envelope is the wire format of every server→client frame. Envelopes
// are built, serialized, written and forgotten; nothing stores them.
type Envelope struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// MessagePayload is the chat message shape the frontend consumes. The
// sender name and role come from the sender's token, not from a join.
type MessagePayload struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	SenderID      string    `json:"senderId"`
	SenderName    string    `json:"senderName"`
	SenderRole    string    `json:"senderRole"`
	Timestamp     time.Time `json:"timestamp"`
	IsRead        bool      `json:"isRead"`
	ApplicationID string    `json:"applicationId,omitempty"`
}

type applicationUpdatedPayload struct {
	Application model.Application `json:"application"`
}

type newMessagePayload struct {
	Message MessagePayload `json:"message"`
}

type notificationDeletedPayload struct {
	ID string `json:"id"`
}

func ConnectionEstablished() Envelope {
	return Envelope{Type: EventConnectionEstablished, Payload: struct{}{}}
}

func ApplicationUpdated(app model.Application) Envelope {
	return Envelope{Type: EventApplicationUpdated, Payload: applicationUpdatedPayload{Application: app}}
}

func NewMessage(msg MessagePayload) Envelope {
	return Envelope{Type: EventNewMessage, Payload: newMessagePayload{Message: msg}}
}

func NewNotification(n model.Notification) Envelope {
	return Envelope{Type: EventNewNotification, Payload: n}
}

func NotificationUpdated(n model.Notification) Envelope {
	return Envelope{Type: EventNotificationUpdated, Payload: n}
}

func NotificationDeleted(notificationID string) Envelope {
	return Envelope{Type: EventNotificationDeleted, Payload: notificationDeletedPayload{ID: notificationID}}
}
