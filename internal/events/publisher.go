package events

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TypeApplicationSubmitted     = "application.submitted"
	TypeApplicationStatusChanged = "application.status_changed"
	TypeMessageSent              = "message.sent"
	TypeNotificationCreated      = "notification.created"
	TypeNotificationRead         = "notification.read"
	TypeNotificationDeleted      = "notification.deleted"
	TypeAppointmentScheduled     = "appointment.scheduled"
	TypeAppointmentCancelled     = "appointment.cancelled"
	TypeDocumentReviewed         = "document.reviewed"
)

// Event is the post-commit audit record published for a mutating case
// operation. Consumers downstream (reporting, mail) read the topic.
type Event struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id,omitempty"`
	EntityID   string    `json:"entity_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

type Publisher struct {
	writer *kafkago.Writer
	log    *zap.SugaredLogger
}

// NewPublisher returns a no-op publisher when no brokers are configured.
func NewPublisher(brokers []string, topic string, log *zap.SugaredLogger) *Publisher {
	if len(brokers) == 0 || topic == "" {
		return &Publisher{log: log}
	}
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, log: log}
}

// Publish is fire-and-forget: the owning transaction has already
// committed, so a broker outage only costs the audit record.
func (p *Publisher) Publish(ctx context.Context, ev Event) {
	if p == nil || p.writer == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC()
	b, err := json.Marshal(ev)
	if err != nil {
		p.log.Errorw("marshal domain event", "type", ev.Type, "err", err)
		return
	}
	msg := kafkago.Message{
		Key:   []byte(ev.EntityID),
		Value: b,
		Time:  ev.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warnw("publish domain event", "type", ev.Type, "err", err)
	}
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
