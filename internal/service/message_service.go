package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/borderlesste/cavb-visa-sub001/internal/auth"
	"github.com/borderlesste/cavb-visa-sub001/internal/events"
	"github.com/borderlesste/cavb-visa-sub001/internal/model"
	"github.com/borderlesste/cavb-visa-sub001/internal/realtime"
	"github.com/borderlesste/cavb-visa-sub001/internal/repository"
)

type MessageService struct {
	msgs   repository.Messages
	push   Notifier
	events *events.Publisher
	log    *zap.SugaredLogger
}

func NewMessageService(msgs repository.Messages, push Notifier, ev *events.Publisher, log *zap.SugaredLogger) *MessageService {
	return &MessageService{msgs: msgs, push: push, events: ev, log: log}
}

// Send persists the message and then pushes it to the recipient's live
// connection, if any. The sender's display name and role come from the
// verified token so no user lookup is needed on this path.
func (s *MessageService) Send(ctx context.Context, sender auth.Identity, recipientID, applicationID, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if recipientID == "" {
		return nil, fmt.Errorf("%w: recipient_id is required", ErrInvalidInput)
	}
	if recipientID == sender.UserID {
		return nil, fmt.Errorf("%w: cannot message yourself", ErrInvalidInput)
	}

	m := &model.Message{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		SenderID:      sender.UserID,
		RecipientID:   recipientID,
		Content:       content,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.msgs.Create(ctx, m); err != nil {
		return nil, err
	}

	s.push.NewMessage(recipientID, realtime.MessagePayload{
		ID:            m.ID,
		Content:       m.Content,
		SenderID:      sender.UserID,
		SenderName:    sender.Name,
		SenderRole:    sender.Role,
		Timestamp:     m.CreatedAt,
		IsRead:        m.IsRead,
		ApplicationID: m.ApplicationID,
	})
	s.events.Publish(ctx, events.Event{Type: events.TypeMessageSent, UserID: sender.UserID, EntityID: m.ID})
	return m, nil
}

func (s *MessageService) ListByApplication(ctx context.Context, applicationID string) ([]model.Message, error) {
	return s.msgs.ListByApplication(ctx, applicationID)
}
